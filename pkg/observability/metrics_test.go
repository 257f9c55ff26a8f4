package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.RecordRegistration("monitoring", true)
	m.SetModulesLoaded(1)
	m.HTTPRequestsTotal.WithLabelValues("GET", "/", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/").Observe(0.1)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"icingaweb_module_registrations_total",
		"icingaweb_modules_loaded",
		"icingaweb_http_requests_total",
		"icingaweb_http_request_duration_seconds",
	}, names)
}

func TestNewMetricsWithoutRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(nil)
		NewMetrics(nil)
	})
}

func TestMetrics_RecordRegistration(t *testing.T) {
	m := NewMetrics(nil)

	m.RecordRegistration("monitoring", true)
	m.RecordRegistration("graphite", false)
	m.RecordRegistration("graphite", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ModuleRegistrationsTotal.WithLabelValues("monitoring", OutcomeSuccess)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ModuleRegistrationsTotal.WithLabelValues("graphite", OutcomeFailure)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ModuleRegistrationsTotal.WithLabelValues("graphite", OutcomeSuccess)))
}

func TestMetrics_SetModulesLoaded(t *testing.T) {
	m := NewMetrics(nil)

	m.SetModulesLoaded(3)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.ModulesLoaded))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRegistration("monitoring", true)
		m.SetModulesLoaded(1)
	})
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	m := NewMetrics(nil)

	router := mux.NewRouter()
	router.Use(HTTPMetricsMiddleware(m))
	router.HandleFunc("/api/v1/modules/{name}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["name"] == "ghost" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/v1/modules/monitoring", "/api/v1/modules/doc", "/api/v1/modules/ghost"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	route := "/api/v1/modules/{name}"
	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", route, "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", route, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestHTTPMetricsMiddleware_NilMetrics(t *testing.T) {
	called := false
	handler := HTTPMetricsMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(nil)
	m.SetModulesLoaded(2)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "icingaweb_modules_loaded 2"))
}
