package host

import (
	"sort"
	"sync"
)

// Hooks stores hook implementations by hook name and key
type Hooks struct {
	hooks map[string]map[string]string
	mu    sync.RWMutex
}

// NewHooks creates an empty hook registry
func NewHooks() *Hooks {
	return &Hooks{
		hooks: make(map[string]map[string]string),
	}
}

// Register stores implementation under hookName and key
func (h *Hooks) Register(hookName, key, implementation string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hooks[hookName] == nil {
		h.hooks[hookName] = make(map[string]string)
	}
	h.hooks[hookName][key] = implementation
}

// Has reports whether any implementation exists for hookName
func (h *Hooks) Has(hookName string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.hooks[hookName]) > 0
}

// Get returns a copy of the implementations of hookName by key
func (h *Hooks) Get(hookName string) map[string]string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make(map[string]string, len(h.hooks[hookName]))
	for key, impl := range h.hooks[hookName] {
		result[key] = impl
	}
	return result
}

// Names returns all hook names with at least one implementation
func (h *Hooks) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.hooks))
	for name := range h.hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
