package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/paperandsoap/icingaweb2/pkg/httputil"
	"github.com/paperandsoap/icingaweb2/pkg/modules"
)

// listModules handles GET /api/v1/modules
//
// Installed, enabled and loaded modules are merged into one list. With
// ?loaded=true only loaded modules are returned.
func (s *Server) listModules(w http.ResponseWriter, r *http.Request) {
	onlyLoaded, err := httputil.ParseQueryBool(r, "loaded", false)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	enabled, err := s.manager.ListEnabledModules()
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	summaries := make(map[string]*ModuleSummary)
	var order []string
	summary := func(name string) *ModuleSummary {
		if sum, ok := summaries[name]; ok {
			return sum
		}
		sum := &ModuleSummary{Name: name}
		summaries[name] = sum
		order = append(order, name)
		return sum
	}

	for _, name := range s.manager.ListInstalledModules() {
		path, _ := s.manager.InstalledModulePath(name)
		summary(name).Path = path
	}
	for _, name := range enabled {
		summary(name).Enabled = true
	}
	for _, d := range s.manager.LoadedModules() {
		sum := summary(d.Name())
		sum.Loaded = true
		sum.Path = d.BaseDir()
	}

	sort.Strings(order)
	result := make([]ModuleSummary, 0, len(order))
	for _, name := range order {
		sum := summaries[name]
		if onlyLoaded && !sum.Loaded {
			continue
		}

		if metadata, err := s.manager.InstalledModuleMetadata(name); err == nil {
			sum.Version = metadata.Version
			sum.ShortDescription = metadata.ShortDescription
		} else if !errors.Is(err, modules.ErrModuleNotInstalled) {
			s.log.Warnf("Cannot read metadata of module %s: %v", name, err)
		}

		result = append(result, *sum)
	}

	httputil.WriteSuccess(w, result)
}

// getModule handles GET /api/v1/modules/{name}
func (s *Server) getModule(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	info, ok := s.manager.ModuleInfo(name)
	if !ok {
		httputil.WriteNotFoundError(w, "module not loaded: "+name)
		return
	}

	httputil.WriteSuccess(w, info)
}

// getModuleMetadata handles GET /api/v1/modules/{name}/metadata
//
// Unlike getModule it also answers for modules which are only installed.
func (s *Server) getModuleMetadata(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	metadata, err := s.manager.InstalledModuleMetadata(name)
	if err != nil {
		writeManagerError(w, err)
		return
	}

	httputil.WriteSuccess(w, metadata)
}

// getPermissions handles GET /api/v1/modules/{name}/permissions
func (s *Server) getPermissions(w http.ResponseWriter, r *http.Request) {
	s.writeCapabilities(w, r, modules.KindPermission)
}

// getRestrictions handles GET /api/v1/modules/{name}/restrictions
func (s *Server) getRestrictions(w http.ResponseWriter, r *http.Request) {
	s.writeCapabilities(w, r, modules.KindRestriction)
}

func (s *Server) writeCapabilities(w http.ResponseWriter, r *http.Request, kind modules.CapabilityKind) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	caps, ok := s.manager.ModuleCapabilities(name)
	if !ok {
		httputil.WriteNotFoundError(w, "module not loaded: "+name)
		return
	}

	list := CapabilityList{Module: name, Kind: kind, Capabilities: caps.Permissions}
	if kind == modules.KindRestriction {
		list.Capabilities = caps.Restrictions
	}

	httputil.WriteSuccess(w, list)
}

// enableModule handles POST /api/v1/modules/{name}/enable
func (s *Server) enableModule(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	if err := s.manager.EnableModule(name); err != nil {
		writeManagerError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// disableModule handles POST /api/v1/modules/{name}/disable
func (s *Server) disableModule(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	if err := s.manager.DisableModule(name); err != nil {
		writeManagerError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// loadModule handles POST /api/v1/modules/{name}/load
func (s *Server) loadModule(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}

	if err := s.manager.LoadModuleContext(r.Context(), name, ""); err != nil {
		writeManagerError(w, err)
		return
	}

	info, _ := s.manager.ModuleInfo(name)
	httputil.WriteSuccess(w, info)
}

// listCapabilities handles GET /api/v1/capabilities
func (s *Server) listCapabilities(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, s.manager.Capabilities())
}

// listRoutes handles GET /api/v1/routes
func (s *Server) listRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.host.RouteTable().Routes()

	result := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		result = append(result, RouteInfo{Name: route.Name, Route: route.Route})
	}

	httputil.WriteSuccess(w, result)
}

// listHooks handles GET /api/v1/hooks
func (s *Server) listHooks(w http.ResponseWriter, r *http.Request) {
	registry := s.host.HookRegistry()

	result := make(map[string]map[string]string)
	for _, name := range registry.Names() {
		result[name] = registry.Get(name)
	}

	httputil.WriteSuccess(w, result)
}

// writeManagerError maps manager errors onto status codes
func writeManagerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modules.ErrInvalidModuleName):
		httputil.WriteBadRequest(w, err.Error())
	case errors.Is(err, modules.ErrModuleNotInstalled), errors.Is(err, modules.ErrModuleNotEnabled):
		httputil.WriteNotFoundError(w, err.Error())
	case errors.Is(err, modules.ErrModuleAlreadyEnabled), errors.Is(err, modules.ErrModuleAlreadyLoaded):
		httputil.WriteConflict(w, err.Error())
	case errors.Is(err, modules.ErrRegistrationFailed):
		httputil.WriteUnprocessable(w, err.Error())
	default:
		httputil.WriteInternalError(w, err)
	}
}
