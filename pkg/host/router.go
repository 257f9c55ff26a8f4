package host

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/paperandsoap/icingaweb2/pkg/contextkeys"
	"github.com/paperandsoap/icingaweb2/pkg/modules"
	"github.com/sirupsen/logrus"
)

// Router is the host's route table. Requests are served by a mux router
// built from the table; adding a route publishes a new mux so requests in
// flight keep matching against the previous one.
type Router struct {
	mux        atomic.Pointer[mux.Router]
	dispatcher *Dispatcher
	routes     []modules.NamedRoute
	index      map[string]int
	log        *logrus.Logger
	mu         sync.RWMutex
}

// NewRouter creates an empty router dispatching to dispatcher
func NewRouter(dispatcher *Dispatcher, log *logrus.Logger) *Router {
	if log == nil {
		log = logrus.New()
	}
	r := &Router{
		dispatcher: dispatcher,
		index:      make(map[string]int),
		log:        log,
	}
	r.mux.Store(mux.NewRouter())
	return r
}

// AddRoute adds a named route. The first route with a name wins; later
// ones are logged and ignored.
func (r *Router) AddRoute(name string, route modules.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[name]; exists {
		r.log.Warnf("Route %s already exists, ignoring route for module %s", name, route.Module)
		return
	}

	r.index[name] = len(r.routes)
	r.routes = append(r.routes, modules.NamedRoute{Name: name, Route: route})

	r.mux.Store(r.buildMux())
	r.log.Debugf("Added route %s: %s", name, route.Path)
}

// Routes returns all routes in the order they were added
func (r *Router) Routes() []modules.NamedRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.routes)
}

// Route returns the route called name
func (r *Router) Route(name string) (modules.NamedRoute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return modules.NamedRoute{}, false
	}
	return r.routes[i], true
}

// URL builds the path of a named route from its parameters
func (r *Router) URL(name string, params map[string]string) (string, error) {
	route := r.mux.Load().Get(name)
	if route == nil {
		return "", fmt.Errorf("route %s not found", name)
	}

	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, k, v)
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("failed to build url for route %s: %w", name, err)
	}
	return u.Path, nil
}

// Mux returns the mux router currently serving requests. It must not be
// modified; use AddRoute.
func (r *Router) Mux() *mux.Router {
	return r.mux.Load()
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.Load().ServeHTTP(w, req)
}

// buildMux creates a mux router serving all routes in table order. The
// caller holds r.mu.
func (r *Router) buildMux() *mux.Router {
	m := mux.NewRouter()
	for _, nr := range r.routes {
		m.Handle(muxPath(nr.Route.Path), r.handler(nr.Name, nr.Route)).Name(nr.Name)
	}
	return m
}

func (r *Router) handler(name string, route modules.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		params := make(Params, len(route.Defaults)+2)
		for k, v := range route.Defaults {
			params[k] = v
		}
		for k, v := range mux.Vars(req) {
			params[k] = v
		}

		req = req.WithContext(contextkeys.WithRouteName(req.Context(), name))
		r.dispatcher.Dispatch(w, req, route.Module, route.Controller, route.Action, params)
	}
}

// muxPath turns "js/monitoring/:file" into "/js/monitoring/{file}"
func muxPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
