// Package api provides the HTTP server of the module host.
//
// # Overview
//
// The server exposes the state of the module manager as JSON and passes
// every other request on to the host route table, where module routes and
// the static asset controller live.
//
// # Endpoints
//
//	GET  /api/v1/modules                      installed, enabled and loaded modules
//	GET  /api/v1/modules/{name}               descriptor snapshot of a loaded module
//	GET  /api/v1/modules/{name}/metadata      module.info of an installed module
//	GET  /api/v1/modules/{name}/permissions   permissions a module provides
//	GET  /api/v1/modules/{name}/restrictions  restrictions a module provides
//	POST /api/v1/modules/{name}/enable        link an installed module
//	POST /api/v1/modules/{name}/disable       unlink an enabled module
//	POST /api/v1/modules/{name}/load          register a module right away
//	GET  /api/v1/capabilities                 capabilities of all loaded modules
//	GET  /api/v1/routes                       host route table
//	GET  /api/v1/hooks                        hook implementations by hook name
//	GET  /health, /health/live, /health/ready
//	GET  /metrics
//
// # Usage Example
//
//	server := api.NewServer(manager, h, metrics, health, logger)
//	http.ListenAndServe(":8080", server)
//
// # Related Packages
//
//   - pkg/modules: Module manager and descriptors
//   - pkg/host: Route table and static assets
package api
