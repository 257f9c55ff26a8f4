// Package observability provides logging, Prometheus metrics, tracing and health checks.
//
// # Logging
//
// Loggers are plain logrus loggers with a full-timestamp text formatter:
//
//	logger := observability.NewLogger("debug", os.Stderr)
//	logger.WithField("module", "monitoring").Warn("Cannot load module")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordRegistration("monitoring", true)
//	router.Handle("/metrics", metrics.Handler())
//
// All Metrics methods accept a nil receiver so components can run without metrics.
//
// # Tracing
//
//	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
//		Enabled:  true,
//		Endpoint: "localhost:4317",
//		Insecure: true,
//	}, logger)
//	defer observability.ShutdownTracing(context.Background(), tp, logger)
//
// InitTracing returns a nil provider when tracing is disabled.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(manager, version)
//	observability.RegisterHealthRoutes(router, checker)
//
// Readiness is degraded while an enabled module is not loaded.
//
// # Shutdown
//
//	<-ctx.Done()
//	err := observability.Shutdown(logger, server, 30*time.Second)
package observability
