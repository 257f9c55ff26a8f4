// Package modules describes and activates the extension modules of the host application.
//
// # Overview
//
// A module is a directory contributing controllers, routes, static assets,
// translations, permissions, restrictions and hooks to the host:
//
//	monitoring/
//	    module.info                 metadata (name, version, description, depends)
//	    configuration.lua           declares permissions, restrictions, routes
//	    run.lua                     activates the module
//	    library/Monitoring/         library namespace Module\Monitoring
//	    application/controllers/
//	    application/forms/          library namespace Module\Monitoring\Form
//	    application/locale/         translation domain "monitoring"
//	    public/css/module.less
//	    public/js/module.js
//	    config/*.toml
//
// Descriptor: One module, its derived paths and lazily computed state
// Manager: Discovers, enables, disables and loads modules
// Watcher: Loads modules as they get enabled
//
// # Metadata
//
// module.info is a line-oriented "Key: value" file:
//
//	Name: monitoring
//	Version: 2.1.0
//	Depends: ido (>=1.0), graphite (2.0)
//	Description: Monitoring frontend
//	  Shows hosts and services.
//
// Metadata is read once, on first access. Manager.InstalledModuleMetadata
// also answers for modules that are installed but not loaded, caching the
// parsed files until they change.
//
// # Configuration and run units
//
// Modules compiled into the host register Go hooks:
//
//	func init() {
//		modules.MustRegisterHooks("monitoring", modules.Hooks{
//			Configure: func(d *modules.Descriptor) error {
//				return d.ProvidePermission("monitoring/command/*", "Allow all commands")
//			},
//		})
//	}
//
// Modules installed on disk use Lua scripts which reach their descriptor
// through the global module table:
//
//	module.providePermission("monitoring/command/*", "Allow all commands")
//	module.provideRestriction("monitoring/filter/objects", "Restrict visible objects")
//	module.addRoute("monitoring_overview", "monitoring/overview/:view",
//		{controller = "overview", action = "show"})
//
// The configuration unit runs at most once per descriptor, the first time
// capabilities or routes are needed. The run unit runs during Register.
//
// # Usage Example
//
//	manager := modules.NewManager(host, modules.ManagerConfig{
//		ModulePaths: []string{"/usr/share/icingaweb2/modules"},
//		EnabledDir:  "/etc/icingaweb2/enabledModules",
//	}, logger, metrics)
//
//	failed, err := manager.LoadEnabledModules(ctx)
//
// # Related Packages
//
//   - pkg/host: Concrete class loader, dispatcher, router, translator and hook registry
//   - pkg/api: HTTP introspection of loaded modules
package modules
