package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paperandsoap/icingaweb2/pkg/host"
	"github.com/paperandsoap/icingaweb2/pkg/modules"
	"github.com/paperandsoap/icingaweb2/pkg/observability"
	"github.com/sirupsen/logrus"
)

// Server serves the module introspection API in front of the host's own
// route table
type Server struct {
	manager *modules.Manager
	host    *host.Host
	metrics *observability.Metrics
	health  *observability.HealthChecker
	router  *mux.Router
	log     *logrus.Logger
}

// NewServer creates the API server. metrics and health may be nil, which
// leaves out /metrics and the health endpoints.
func NewServer(manager *modules.Manager, h *host.Host, metrics *observability.Metrics, health *observability.HealthChecker, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	s := &Server{
		manager: manager,
		host:    h,
		metrics: metrics,
		health:  health,
		router:  mux.NewRouter(),
		log:     log,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}

	if s.health != nil {
		observability.RegisterHealthRoutes(s.router, s.health)
	}

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Module routes
	api.HandleFunc("/modules", s.listModules).Methods("GET")
	api.HandleFunc("/modules/{name}", s.getModule).Methods("GET")
	api.HandleFunc("/modules/{name}/metadata", s.getModuleMetadata).Methods("GET")
	api.HandleFunc("/modules/{name}/permissions", s.getPermissions).Methods("GET")
	api.HandleFunc("/modules/{name}/restrictions", s.getRestrictions).Methods("GET")
	api.HandleFunc("/modules/{name}/enable", s.enableModule).Methods("POST")
	api.HandleFunc("/modules/{name}/disable", s.disableModule).Methods("POST")
	api.HandleFunc("/modules/{name}/load", s.loadModule).Methods("POST")

	// Host routes
	api.HandleFunc("/capabilities", s.listCapabilities).Methods("GET")
	api.HandleFunc("/routes", s.listRoutes).Methods("GET")
	api.HandleFunc("/hooks", s.listHooks).Methods("GET")

	// Everything else belongs to the modules
	s.router.PathPrefix("/").Handler(s.host.RouteTable())
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router returns the underlying router
func (s *Server) Router() *mux.Router {
	return s.router
}
