package modules

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
)

// Register binds the module to its host: library namespaces first, then
// controllers, translations and routes, and finally the run unit.
//
// Register reports false only when the run unit failed; the failure is
// logged once. Deciding what to do with a failed module is left to the
// caller.
func (d *Descriptor) Register() bool {
	return d.RegisterContext(context.Background())
}

// RegisterContext is Register recording a span under the trace of ctx
func (d *Descriptor) RegisterContext(ctx context.Context) bool {
	_, span := startSpan(ctx, "modules.Register", d.name)

	d.RegisterAutoloader()
	d.state = StateAutoloaderBound

	d.RegisterWebIntegration()
	d.state = StateWebIntegrated

	err := d.LaunchRunScript()
	d.state = StateRunScriptAttempted

	span.SetAttributes(attribute.Int("module.routes", len(d.routes)))
	endSpan(span, err)

	if err != nil {
		var scriptErr *ScriptError
		if errors.As(err, &scriptErr) {
			d.log.Warnf("Cannot load module %s: script %s failed: %v", d.name, scriptErr.Script, scriptErr.Err)
		} else {
			d.log.Warnf("Cannot load module %s: %v", d.name, err)
		}
		return false
	}

	return true
}
