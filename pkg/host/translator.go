package host

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator keeps the translation domains of modules. A domain directory
// holds one subdirectory per locale, e.g. de_DE or fr.
type Translator struct {
	domains map[string]string
	mu      sync.RWMutex
}

// NewTranslator creates an empty translator
func NewTranslator() *Translator {
	return &Translator{
		domains: make(map[string]string),
	}
}

// RegisterDomain maps a translation domain onto a locale directory
func (t *Translator) RegisterDomain(name, directory string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.domains[name] = directory
}

// Domain returns the directory of a translation domain
func (t *Translator) Domain(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	dir, ok := t.domains[name]
	return dir, ok
}

// Domains returns all registered domain names
func (t *Translator) Domains() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.domains))
	for name := range t.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locales lists the locales a domain has translations for. Directory
// entries which are not language tags are skipped.
func (t *Translator) Locales(domain string) ([]language.Tag, error) {
	dir, ok := t.Domain(domain)
	if !ok {
		return nil, fmt.Errorf("translation domain %s not registered", domain)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory: %w", err)
	}

	var tags []language.Tag
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(entry.Name(), "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Match picks the domain locale best matching an Accept-Language header.
// It returns false if the domain has no locales or none is acceptable.
func (t *Translator) Match(domain, acceptLanguage string) (language.Tag, bool) {
	tags, err := t.Locales(domain)
	if err != nil || len(tags) == 0 {
		return language.Und, false
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return language.Und, false
	}

	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return language.Und, false
	}
	return tags[index], true
}
