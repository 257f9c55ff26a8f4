package modules

import (
	"fmt"
	"sort"
	"sync"
)

// Hooks are the compiled-in counterparts of a module's configuration.lua
// and run.lua. Either function may be nil.
type Hooks struct {
	// Configure declares permissions, restrictions, routes and hooks.
	// It runs at most once per descriptor.
	Configure func(d *Descriptor) error

	// Run activates the module during Register.
	Run func(d *Descriptor) error
}

var (
	// hooks is the package-level map of compiled-in module hooks
	hooks = make(map[string]Hooks)
	// hooksMu protects concurrent access to hooks
	hooksMu sync.RWMutex
)

// RegisterHooks makes Go hooks available to the module named name. It is
// meant to be called from the init function of the package implementing
// the module.
func RegisterHooks(name string, h Hooks) error {
	if name == "" {
		return fmt.Errorf("cannot register hooks without a module name")
	}

	hooksMu.Lock()
	defer hooksMu.Unlock()

	if _, exists := hooks[name]; exists {
		return fmt.Errorf("%w: %s", ErrHooksAlreadyRegistered, name)
	}

	hooks[name] = h
	return nil
}

// MustRegisterHooks is like RegisterHooks but panics on error
func MustRegisterHooks(name string, h Hooks) {
	if err := RegisterHooks(name, h); err != nil {
		panic(err)
	}
}

// UnregisterHooks removes the hooks of a module, reporting whether any existed
func UnregisterHooks(name string) bool {
	hooksMu.Lock()
	defer hooksMu.Unlock()

	_, exists := hooks[name]
	delete(hooks, name)
	return exists
}

// LookupHooks returns the hooks registered for a module
func LookupHooks(name string) (Hooks, bool) {
	hooksMu.RLock()
	defer hooksMu.RUnlock()

	h, exists := hooks[name]
	return h, exists
}

// HookedModules returns the names of all modules with compiled-in hooks
func HookedModules() []string {
	hooksMu.RLock()
	defer hooksMu.RUnlock()

	names := make([]string, 0, len(hooks))
	for name := range hooks {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
