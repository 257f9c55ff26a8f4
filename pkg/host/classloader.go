package host

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ClassLoader maps namespaces onto directories
type ClassLoader struct {
	namespaces map[string]string
	mu         sync.RWMutex
}

// NewClassLoader creates an empty class loader
func NewClassLoader() *ClassLoader {
	return &ClassLoader{
		namespaces: make(map[string]string),
	}
}

// RegisterNamespace maps namespace to directory, replacing an earlier mapping
func (c *ClassLoader) RegisterNamespace(namespace, directory string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.namespaces[strings.Trim(namespace, `\`)] = directory
}

// Namespaces returns a copy of all registered mappings
func (c *ClassLoader) Namespaces() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]string, len(c.namespaces))
	for ns, dir := range c.namespaces {
		result[ns] = dir
	}
	return result
}

// Resolve returns the file path for a fully qualified class name, using the
// longest registered namespace prefix. The path has no extension.
func (c *ClassLoader) Resolve(class string) (string, bool) {
	class = strings.Trim(class, `\`)

	c.mu.RLock()
	defer c.mu.RUnlock()

	prefixes := make([]string, 0, len(c.namespaces))
	for ns := range c.namespaces {
		prefixes = append(prefixes, ns)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		return len(prefixes[i]) > len(prefixes[j])
	})

	for _, ns := range prefixes {
		if !strings.HasPrefix(class, ns+`\`) {
			continue
		}
		rest := strings.TrimPrefix(class, ns+`\`)
		parts := strings.Split(rest, `\`)
		return filepath.Join(append([]string{c.namespaces[ns]}, parts...)...), true
	}

	return "", false
}
