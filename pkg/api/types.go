package api

import "github.com/paperandsoap/icingaweb2/pkg/modules"

// ModuleSummary is one entry of the module list
type ModuleSummary struct {
	Name             string `json:"name"`
	Path             string `json:"path,omitempty"`
	Version          string `json:"version,omitempty"`
	ShortDescription string `json:"short_description,omitempty"`
	Enabled          bool   `json:"enabled"`
	Loaded           bool   `json:"loaded"`
}

// RouteInfo is one entry of the host route table
type RouteInfo struct {
	Name string `json:"name"`
	modules.Route
}

// CapabilityList holds the permissions or restrictions of one module
type CapabilityList struct {
	Module       string                 `json:"module"`
	Kind         modules.CapabilityKind `json:"kind"`
	Capabilities []modules.Capability   `json:"capabilities"`
}
