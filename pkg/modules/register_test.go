package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("without run script", func(t *testing.T) {
		d, hook := newModule(t, newFakeHost(true), "plain", nil)
		assert.Equal(t, StateUnregistered, d.State())

		assert.True(t, d.Register())
		assert.Equal(t, StateRunScriptAttempted, d.State())
		assert.Empty(t, warnings(hook))
	})

	t.Run("failing run script", func(t *testing.T) {
		d, hook := newModule(t, newFakeHost(true), "broken", map[string]string{
			RunScriptName: `error("broken on purpose")`,
		})

		assert.False(t, d.Register())
		assert.Equal(t, StateRunScriptAttempted, d.State())

		msgs := warnings(hook)
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "Cannot load module broken: script "+d.RunScript()+" failed")
		assert.Contains(t, msgs[0], "broken on purpose")
	})

	t.Run("run script sees configuration", func(t *testing.T) {
		d, hook := newModule(t, newFakeHost(false), "ordered", map[string]string{
			ConfigScriptName: `module.providePermission("ordered/x")`,
			RunScriptName:    `if not module.providesPermission("ordered/x") then error("not configured") end`,
		})

		assert.True(t, d.Register(), warnings(hook))
	})

	t.Run("host without collaborators", func(t *testing.T) {
		d, hook := newModule(t, nil, "lonely", map[string]string{
			"library/Lonely/":          "",
			"application/controllers/": "",
			ConfigScriptName:           `module.provideHook("ticket", "lonely", "Lonely\\Ticket")`,
		})

		assert.True(t, d.Register())
		assert.Empty(t, warnings(hook))
	})
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateUnregistered:       "unregistered",
		StateAutoloaderBound:    "autoloader-bound",
		StateWebIntegrated:      "web-integrated",
		StateRunScriptAttempted: "run-script-attempted",
		State(42):               "unknown",
	}

	for state, expected := range tests {
		assert.Equal(t, expected, state.String())
	}
}
