package modules

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateCapability is wrapped by DuplicateCapabilityError
	ErrDuplicateCapability = errors.New("duplicate capability")

	// ErrInvalidCapabilityName is returned for empty permission or restriction names
	ErrInvalidCapabilityName = errors.New("invalid capability name")

	ErrInvalidModuleName    = errors.New("invalid module name")
	ErrModuleNotInstalled   = errors.New("module not installed")
	ErrModuleAlreadyEnabled = errors.New("module already enabled")
	ErrModuleNotEnabled     = errors.New("module not enabled")
	ErrModuleAlreadyLoaded  = errors.New("module already loaded")
	ErrRegistrationFailed   = errors.New("module registration failed")

	// ErrHooksAlreadyRegistered is returned by RegisterHooks for a name that already has hooks
	ErrHooksAlreadyRegistered = errors.New("hooks already registered")
)

// DuplicateCapabilityError reports a permission or restriction that a
// module tried to declare twice.
type DuplicateCapabilityError struct {
	Module string
	Kind   CapabilityKind
	Name   string
}

func (e *DuplicateCapabilityError) Error() string {
	return fmt.Sprintf("module %s: cannot provide %s %q twice", e.Module, e.Kind, e.Name)
}

func (e *DuplicateCapabilityError) Unwrap() error {
	return ErrDuplicateCapability
}

// ScriptError wraps a failure raised while executing a module's run or
// configuration unit.
type ScriptError struct {
	Module string
	Script string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("module %s: script %s failed: %v", e.Module, e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
