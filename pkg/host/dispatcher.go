package host

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/paperandsoap/icingaweb2/pkg/httputil"
	"github.com/sirupsen/logrus"
)

// Params are the route defaults merged with the matched path variables
type Params map[string]string

// ActionHandler serves one controller action
type ActionHandler func(w http.ResponseWriter, r *http.Request, params Params)

type actionKey struct {
	module     string
	controller string
	action     string
}

// Dispatcher maps routes onto action handlers. Handlers registered without
// a module are shared by all modules.
type Dispatcher struct {
	directories map[string]string
	handlers    map[actionKey]ActionHandler
	log         *logrus.Logger
	mu          sync.RWMutex
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(log *logrus.Logger) *Dispatcher {
	if log == nil {
		log = logrus.New()
	}
	return &Dispatcher{
		directories: make(map[string]string),
		handlers:    make(map[actionKey]ActionHandler),
		log:         log,
	}
}

// AddControllerDirectory records the controller directory of module
func (d *Dispatcher) AddControllerDirectory(directory, module string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.directories[module] = directory
	d.log.Debugf("Added controller directory %s for module %s", directory, module)
}

// ControllerDirectory returns the controller directory of module
func (d *Dispatcher) ControllerDirectory(module string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	dir, ok := d.directories[module]
	return dir, ok
}

// ControllerModules returns the modules with a controller directory
func (d *Dispatcher) ControllerModules() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.directories))
	for name := range d.directories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle registers h for an action. An empty module makes the handler
// available to every module.
func (d *Dispatcher) Handle(module, controller, action string, h ActionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[actionKey{module, controller, action}] = h
}

// Lookup finds the handler for an action, preferring a module's own
// handler over a shared one
func (d *Dispatcher) Lookup(module, controller, action string) (ActionHandler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if h, ok := d.handlers[actionKey{module, controller, action}]; ok {
		return h, true
	}
	h, ok := d.handlers[actionKey{"", controller, action}]
	return h, ok
}

// Dispatch serves an action, answering 404 if nothing handles it
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request, module, controller, action string, params Params) {
	h, ok := d.Lookup(module, controller, action)
	if !ok {
		httputil.WriteNotFoundError(w, fmt.Sprintf("no handler for %s/%s/%s", module, controller, action))
		return
	}
	h(w, r, params)
}
