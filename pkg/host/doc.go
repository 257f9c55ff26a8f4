// Package host provides the collaborators modules are registered with.
//
// Host bundles a ClassLoader (namespace to library directory), a Dispatcher
// (controller directories and action handlers), a Router (named routes on a
// gorilla/mux router), a Translator (translation domains and their locales)
// and a hook registry. It implements modules.Host:
//
//	h := host.New(true, logger)
//	h.UseStaticAssets(func(name string) (string, bool) {
//		d, ok := manager.GetModule(name)
//		if !ok {
//			return "", false
//		}
//		return d.BaseDir(), true
//	})
//	http.ListenAndServe(":8080", h.RouteTable())
//
// Route paths use ":name" segments for parameters; they become mux path
// variables and are passed to action handlers together with the route's
// defaults.
package host
