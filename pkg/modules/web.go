package modules

import (
	"path/filepath"
	"slices"
)

const (
	// StaticController serves module assets for the implicit asset routes
	StaticController = "static"
	// JavascriptAction serves files below a module's public/js
	JavascriptAction = "javascript"
	// ImageAction serves files below a module's public/img
	ImageAction = "img"

	// NamespacePrefix is prepended to the capitalized module name when
	// registering library namespaces
	NamespacePrefix = `Module\`

	// ModuleNameParam carries the module name in the implicit asset routes
	ModuleNameParam = "module_name"
)

// AddRoute contributes a route to be added to the host's route table when
// the module is registered. Routes keep the order in which they were added.
// It is meant to be called from a module's own configuration unit; routes
// added once the module is web integrated never reach the host router.
func (d *Descriptor) AddRoute(name string, route Route) {
	if route.Module == "" {
		route.Module = d.name
	}
	if d.state >= StateWebIntegrated && d.host.IsWeb() && d.host.Router() != nil {
		d.log.Warnf("Route %s of module %s was added after web integration and is not served", name, d.name)
	}
	d.routes = append(d.routes, NamedRoute{Name: name, Route: route})
}

// Routes returns the routes added so far
func (d *Descriptor) Routes() []NamedRoute {
	return slices.Clone(d.routes)
}

// ProvideHook registers an implementation of a host hook. It is a no-op if
// the host has no hook registry.
func (d *Descriptor) ProvideHook(hookName, key, implementation string) {
	if registry := d.host.Hooks(); registry != nil {
		registry.Register(hookName, key, implementation)
	}
}

// RegisterAutoloader maps the module's library namespaces onto its library
// directory. Nothing happens unless library/<Name> exists.
func (d *Descriptor) RegisterAutoloader() {
	loader := d.host.ClassLoader()
	if loader == nil {
		return
	}

	moduleName := upperFirst(d.name)
	moduleLibraryDir := filepath.Join(d.libDir, moduleName)

	if !isDir(d.baseDir) || !isDir(d.libDir) || !isDir(moduleLibraryDir) {
		return
	}

	namespace := NamespacePrefix + moduleName
	loader.RegisterNamespace(namespace, moduleLibraryDir)

	if isDir(d.formDir) {
		loader.RegisterNamespace(namespace+`\Form`, d.formDir)
	}
}

// RegisterWebIntegration makes the module's controllers, translations and
// routes known to a web host. Hosts which are not serving HTTP are left
// untouched.
func (d *Descriptor) RegisterWebIntegration() {
	if !d.host.IsWeb() {
		return
	}

	if dispatcher := d.host.Dispatcher(); dispatcher != nil && isDir(d.controllerDir) {
		dispatcher.AddControllerDirectory(d.controllerDir, d.name)
	}

	if translator := d.host.Translator(); translator != nil && isDir(d.localeDir) {
		translator.RegisterDomain(d.name, d.localeDir)
	}

	d.registerRoutes()
}

func (d *Descriptor) registerRoutes() {
	router := d.host.Router()
	if router == nil {
		return
	}

	// configuration units declare their routes
	d.LaunchConfigScript()

	for _, r := range d.routes {
		router.AddRoute(r.Name, r.Route)
	}

	for _, r := range d.assetRoutes() {
		router.AddRoute(r.Name, r.Route)
	}
}

// assetRoutes are the routes through which the shared static controller
// serves public/js and public/img of the module
func (d *Descriptor) assetRoutes() []NamedRoute {
	return []NamedRoute{
		{
			Name: d.name + "_jsprovider",
			Route: Route{
				Path:       "js/" + d.name + "/:file",
				Controller: StaticController,
				Action:     JavascriptAction,
				Module:     d.name,
				Defaults:   map[string]string{ModuleNameParam: d.name},
			},
		},
		{
			Name: d.name + "_img",
			Route: Route{
				Path:       "img/" + d.name + "/:file",
				Controller: StaticController,
				Action:     ImageAction,
				Module:     d.name,
				Defaults:   map[string]string{ModuleNameParam: d.name},
			},
		},
	}
}
