package host

import (
	"github.com/paperandsoap/icingaweb2/pkg/modules"
	"github.com/sirupsen/logrus"
)

// Host is the application modules are registered with
type Host struct {
	web        bool
	loader     *ClassLoader
	dispatcher *Dispatcher
	router     *Router
	translator *Translator
	hooks      *Hooks
}

// New creates a host. Modules only contribute controllers, translations
// and routes to hosts serving HTTP.
func New(web bool, log *logrus.Logger) *Host {
	if log == nil {
		log = logrus.New()
	}

	dispatcher := NewDispatcher(log)
	return &Host{
		web:        web,
		loader:     NewClassLoader(),
		dispatcher: dispatcher,
		router:     NewRouter(dispatcher, log),
		translator: NewTranslator(),
		hooks:      NewHooks(),
	}
}

// UseStaticAssets installs the static controller serving module assets.
// dirs resolves a module name to its base directory.
func (h *Host) UseStaticAssets(dirs AssetDirs) {
	NewStaticController(dirs).Register(h.dispatcher)
}

func (h *Host) IsWeb() bool {
	return h.web
}

func (h *Host) ClassLoader() modules.ClassLoader {
	return h.loader
}

func (h *Host) Dispatcher() modules.Dispatcher {
	return h.dispatcher
}

func (h *Host) Router() modules.Router {
	return h.router
}

func (h *Host) Translator() modules.Translator {
	return h.translator
}

func (h *Host) Hooks() modules.HookRegistry {
	return h.hooks
}

// Loader returns the concrete class loader
func (h *Host) Loader() *ClassLoader {
	return h.loader
}

// ControllerDispatcher returns the concrete dispatcher
func (h *Host) ControllerDispatcher() *Dispatcher {
	return h.dispatcher
}

// RouteTable returns the concrete router, which is also the host's http.Handler
func (h *Host) RouteTable() *Router {
	return h.router
}

// Translations returns the concrete translation registry
func (h *Host) Translations() *Translator {
	return h.translator
}

// HookRegistry returns the concrete hook registry
func (h *Host) HookRegistry() *Hooks {
	return h.hooks
}
