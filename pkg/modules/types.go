package modules

// Capability is a named, described token a module declares for the host's
// authorization layer. Permissions and restrictions share this shape.
type Capability struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// CapabilityKind distinguishes permissions from restrictions
type CapabilityKind string

const (
	KindPermission  CapabilityKind = "permission"
	KindRestriction CapabilityKind = "restriction"
)

// Route describes a URL pattern contributed by a module.
// Path segments of the form ":name" are route parameters.
type Route struct {
	Path       string            `json:"path"`
	Controller string            `json:"controller"`
	Action     string            `json:"action"`
	Module     string            `json:"module,omitempty"`
	Defaults   map[string]string `json:"defaults,omitempty"`
}

// NamedRoute pairs a route with the name it was registered under
type NamedRoute struct {
	Name  string `json:"name"`
	Route Route  `json:"route"`
}

// ClassLoader maps namespaces onto library directories
type ClassLoader interface {
	RegisterNamespace(namespace, directory string)
}

// Dispatcher knows where a module's controllers live
type Dispatcher interface {
	AddControllerDirectory(directory, moduleName string)
}

// Router is the host's route table
type Router interface {
	AddRoute(name string, route Route)
}

// Translator binds translation domains to locale directories
type Translator interface {
	RegisterDomain(name, directory string)
}

// HookRegistry stores hook implementations provided by modules
type HookRegistry interface {
	Register(hookName, key, implementation string)
}

// Host is the application a module is registered with. Every accessor
// may return nil when the host does not provide that collaborator.
type Host interface {
	// IsWeb reports whether the host serves HTTP requests
	IsWeb() bool
	ClassLoader() ClassLoader
	Dispatcher() Dispatcher
	Router() Router
	Translator() Translator
	Hooks() HookRegistry
}

// State is the position of a descriptor in the registration sequence
type State int

const (
	StateUnregistered State = iota
	StateAutoloaderBound
	StateWebIntegrated
	StateRunScriptAttempted
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateAutoloaderBound:
		return "autoloader-bound"
	case StateWebIntegrated:
		return "web-integrated"
	case StateRunScriptAttempted:
		return "run-script-attempted"
	default:
		return "unknown"
	}
}
