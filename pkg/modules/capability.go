package modules

import (
	"fmt"
	"maps"
	"strings"
)

// ProvidePermission declares a permission understood by this module.
// Declaring the same name twice fails and keeps the first declaration.
func (d *Descriptor) ProvidePermission(name, description string) error {
	d.LaunchConfigScript()
	return d.provide(KindPermission, d.permissions, name, description)
}

// ProvideRestriction declares a restriction understood by this module.
// Declaring the same name twice fails and keeps the first declaration.
func (d *Descriptor) ProvideRestriction(name, description string) error {
	d.LaunchConfigScript()
	return d.provide(KindRestriction, d.restrictions, name, description)
}

// ProvidesPermission reports whether the module declared the permission
func (d *Descriptor) ProvidesPermission(name string) bool {
	d.LaunchConfigScript()
	_, exists := d.permissions[name]
	return exists
}

// ProvidesRestriction reports whether the module declared the restriction
func (d *Descriptor) ProvidesRestriction(name string) bool {
	d.LaunchConfigScript()
	_, exists := d.restrictions[name]
	return exists
}

// ProvidedPermissions returns a copy of all declared permissions
func (d *Descriptor) ProvidedPermissions() map[string]Capability {
	d.LaunchConfigScript()
	return maps.Clone(d.permissions)
}

// ProvidedRestrictions returns a copy of all declared restrictions
func (d *Descriptor) ProvidedRestrictions() map[string]Capability {
	d.LaunchConfigScript()
	return maps.Clone(d.restrictions)
}

func (d *Descriptor) provide(kind CapabilityKind, registry map[string]Capability, name, description string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: module %s: empty %s name", ErrInvalidCapabilityName, d.name, kind)
	}

	if _, exists := registry[name]; exists {
		return &DuplicateCapabilityError{Module: d.name, Kind: kind, Name: name}
	}

	registry[name] = Capability{Name: name, Description: description}
	return nil
}
