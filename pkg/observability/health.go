package observability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// ModuleStatus is implemented by the module manager
type ModuleStatus interface {
	ListLoadedModules() []string
	ListEnabledModules() ([]string, error)
}

// HealthChecker provides health check functionality
type HealthChecker struct {
	modules ModuleStatus
	version string
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(modules ModuleStatus, version string) *HealthChecker {
	return &HealthChecker{
		modules: modules,
		version: version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version,omitempty"`
	LoadedModules []string  `json:"loaded_modules"`
	FailedModules []string  `json:"failed_modules,omitempty"`
	Message       string    `json:"message,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness answers liveness checks (always returns 200 if server is running)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness reports degraded when an enabled module failed to load and
// unhealthy when the enabled modules cannot be listed
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	w.Header().Set("Content-Type", "application/json")
	if status.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(status)
}

// Check compares enabled and loaded modules
func (h *HealthChecker) Check() HealthStatus {
	status := HealthStatus{
		Status:        StatusHealthy,
		Timestamp:     time.Now(),
		Version:       h.version,
		LoadedModules: []string{},
	}
	if h.modules == nil {
		return status
	}

	if loaded := h.modules.ListLoadedModules(); loaded != nil {
		status.LoadedModules = loaded
	}

	enabled, err := h.modules.ListEnabledModules()
	if err != nil {
		status.Status = StatusUnhealthy
		status.Message = err.Error()
		return status
	}

	loaded := make(map[string]bool, len(status.LoadedModules))
	for _, name := range status.LoadedModules {
		loaded[name] = true
	}
	for _, name := range enabled {
		if !loaded[name] {
			status.FailedModules = append(status.FailedModules, name)
		}
	}
	if len(status.FailedModules) > 0 {
		status.Status = StatusDegraded
	}

	return status
}

// RegisterHealthRoutes registers health check endpoints
func RegisterHealthRoutes(router *mux.Router, checker *HealthChecker) {
	router.HandleFunc("/health", checker.Readiness).Methods(http.MethodGet)
	router.HandleFunc("/health/live", checker.Liveness).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", checker.Readiness).Methods(http.MethodGet)
}
