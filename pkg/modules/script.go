package modules

import (
	"github.com/paperandsoap/icingaweb2/pkg/observability"
)

type scriptUnit int

const (
	unitConfigure scriptUnit = iota
	unitRun
)

// LaunchConfigScript runs the module's configuration unit: the Configure
// hook and configuration.lua. Only the first call does anything, whatever
// its outcome, so the unit may itself query permissions without running
// again. Failures are logged; declarations made before a failure are kept.
func (d *Descriptor) LaunchConfigScript() {
	if d.configScriptLaunched {
		return
	}
	d.configScriptLaunched = true

	if err := d.launch(unitConfigure); err != nil {
		d.log.Warnf("Cannot configure module %s: %v", d.name, err)
	}
}

// LaunchRunScript runs the module's Run hook and run.lua. A module without
// either succeeds trivially.
func (d *Descriptor) LaunchRunScript() error {
	return d.launch(unitRun)
}

func (d *Descriptor) launch(unit scriptUnit) error {
	h, _ := LookupHooks(d.name)

	fn, hookName, script := h.Run, "Run hook", d.runScript
	if unit == unitConfigure {
		fn, hookName, script = h.Configure, "Configure hook", d.configScript
	}

	if fn != nil {
		if err := callHook(d, fn); err != nil {
			return &ScriptError{Module: d.name, Script: hookName, Err: err}
		}
	}

	if !isReadable(script) {
		return nil
	}

	d.log.Debugf("Executing %s", script)
	if err := runLuaScript(d, script); err != nil {
		return &ScriptError{Module: d.name, Script: script, Err: err}
	}

	return nil
}

// callHook runs fn, turning a panic into an error
func callHook(d *Descriptor, fn func(*Descriptor) error) (err error) {
	defer func() {
		if rerr := observability.MustRecover(recover()); rerr != nil {
			err = rerr
		}
	}()

	return fn(d)
}
