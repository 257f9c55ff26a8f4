package host

import (
	"testing"

	"github.com/paperandsoap/icingaweb2/pkg/modules"
	"github.com/stretchr/testify/assert"
)

func TestHostImplementsModulesHost(t *testing.T) {
	var h modules.Host = New(true, nil)

	assert.True(t, h.IsWeb())
	assert.NotNil(t, h.ClassLoader())
	assert.NotNil(t, h.Dispatcher())
	assert.NotNil(t, h.Router())
	assert.NotNil(t, h.Translator())
	assert.NotNil(t, h.Hooks())
}

func TestHostConcreteAccessors(t *testing.T) {
	h := New(false, nil)

	assert.False(t, h.IsWeb())
	assert.Same(t, h.Loader(), h.ClassLoader())
	assert.Same(t, h.ControllerDispatcher(), h.Dispatcher())
	assert.Same(t, h.RouteTable(), h.Router())
	assert.Same(t, h.Translations(), h.Translator())
	assert.Same(t, h.HookRegistry(), h.Hooks())
}

func TestClassLoaderResolve(t *testing.T) {
	loader := NewClassLoader()
	loader.RegisterNamespace(`Module\Monitoring`, "/mods/monitoring/library/Monitoring")
	loader.RegisterNamespace(`Module\Monitoring\Form`, "/mods/monitoring/application/forms")

	tests := []struct {
		class    string
		expected string
		found    bool
	}{
		{`Module\Monitoring\Backend\Ido`, "/mods/monitoring/library/Monitoring/Backend/Ido", true},
		{`\Module\Monitoring\Form\Command\Ack`, "/mods/monitoring/application/forms/Command/Ack", true},
		{`Module\Monitoring`, "", false},
		{`Module\Graphite\Graph`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			path, ok := loader.Resolve(tt.class)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, path)
		})
	}

	assert.Len(t, loader.Namespaces(), 2)
}

func TestHooks(t *testing.T) {
	hooks := NewHooks()
	assert.False(t, hooks.Has("ticket"))

	hooks.Register("ticket", "jira", "Jira")
	hooks.Register("ticket", "rt", "RequestTracker")
	hooks.Register("grapher", "graphite", "Graphite")
	hooks.Register("ticket", "rt", "RT")

	assert.True(t, hooks.Has("ticket"))
	assert.Equal(t, map[string]string{"jira": "Jira", "rt": "RT"}, hooks.Get("ticket"))
	assert.Equal(t, []string{"grapher", "ticket"}, hooks.Names())
	assert.Empty(t, hooks.Get("missing"))
}
