package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// fakeHost records everything modules register with it
type fakeHost struct {
	web            bool
	namespaces     map[string]string
	controllerDirs map[string]string
	routes         []NamedRoute
	domains        map[string]string
	hookImpls      map[string]string
}

func newFakeHost(web bool) *fakeHost {
	return &fakeHost{
		web:            web,
		namespaces:     make(map[string]string),
		controllerDirs: make(map[string]string),
		domains:        make(map[string]string),
		hookImpls:      make(map[string]string),
	}
}

func (f *fakeHost) IsWeb() bool { return f.web }
func (f *fakeHost) ClassLoader() ClassLoader { return f }
func (f *fakeHost) Dispatcher() Dispatcher { return f }
func (f *fakeHost) Router() Router { return f }
func (f *fakeHost) Translator() Translator { return f }
func (f *fakeHost) Hooks() HookRegistry { return f }

func (f *fakeHost) RegisterNamespace(namespace, directory string) {
	f.namespaces[namespace] = directory
}

func (f *fakeHost) AddControllerDirectory(directory, module string) {
	f.controllerDirs[module] = directory
}

func (f *fakeHost) AddRoute(name string, route Route) {
	f.routes = append(f.routes, NamedRoute{Name: name, Route: route})
}

func (f *fakeHost) RegisterDomain(name, directory string) {
	f.domains[name] = directory
}

func (f *fakeHost) Register(hookName, key, implementation string) {
	f.hookImpls[hookName+"/"+key] = implementation
}

func (f *fakeHost) routeNames() []string {
	names := make([]string, 0, len(f.routes))
	for _, r := range f.routes {
		names = append(names, r.Name)
	}
	return names
}

// writeFiles creates files below dir; names ending in "/" become directories
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// newModule creates a module directory and its descriptor
func newModule(t *testing.T, host Host, name string, files map[string]string) (*Descriptor, *test.Hook) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeFiles(t, dir, files)

	logger, hook := test.NewNullLogger()
	return NewDescriptor(host, name, dir, logger), hook
}

func warnings(hook *test.Hook) []string {
	var messages []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			messages = append(messages, e.Message)
		}
	}
	return messages
}
