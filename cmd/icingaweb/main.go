package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/paperandsoap/icingaweb2/pkg/api"
	"github.com/paperandsoap/icingaweb2/pkg/config"
	"github.com/paperandsoap/icingaweb2/pkg/host"
	"github.com/paperandsoap/icingaweb2/pkg/httputil"
	"github.com/paperandsoap/icingaweb2/pkg/modules"
	"github.com/paperandsoap/icingaweb2/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var version = "dev"

// Options holds the command-line flags
type Options struct {
	ConfigPath  string
	LogLevel    string
	ShowVersion bool
}

func main() {
	opts := parseFlags()
	if opts.ShowVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if opts.LogLevel != "" {
		cfg.Observability.LogLevel = opts.LogLevel
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stderr)
	logger.Infof("Starting icingaweb %s", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Fatalf("icingaweb failed: %v", err)
	}
}

func parseFlags() *Options {
	opts := &Options{}

	flag.StringVar(&opts.ConfigPath, "config", getEnv("ICINGAWEB_CONFIG", "/etc/icingaweb2/icingaweb.yaml"), "Path to the configuration file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error), overrides the configuration")
	flag.BoolVar(&opts.ShowVersion, "version", false, "Print the version and exit")

	flag.Parse()

	return opts
}

// run loads the enabled modules and serves them until ctx is done. A host
// which neither serves HTTP nor watches for modules prints the capabilities
// of the loaded modules to out and returns.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) error {
	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:        cfg.Observability.TracingEnabled,
		Endpoint:       cfg.Observability.OTLPEndpoint,
		ServiceName:    "icingaweb",
		ServiceVersion: version,
		Insecure:       cfg.Observability.OTLPInsecure,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := observability.ShutdownTracing(shutdownCtx, tp, logger); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracing")
		}
	}()

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	h := host.New(cfg.Server.Web, logger)
	manager := modules.NewManager(h, modules.ManagerConfig{
		ModulePaths:       cfg.Modules.Paths,
		EnabledDir:        cfg.Modules.EnabledDir,
		MetadataCacheSize: cfg.Modules.MetadataCacheSize,
		MetadataCacheTTL:  cfg.Modules.MetadataCacheTTL,
	}, logger, metrics)
	h.UseStaticAssets(moduleDirs(manager))

	failed, err := manager.LoadEnabledModules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load enabled modules: %w", err)
	}
	if len(failed) > 0 {
		logger.Warnf("%d enabled modules failed to load: %s", len(failed), strings.Join(failed, ", "))
	}
	logger.Infof("Loaded %d modules", len(manager.ListLoadedModules()))

	if !cfg.Server.Web && !cfg.Modules.Watch {
		return printCapabilities(out, manager)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Modules.Watch {
		watcher := modules.NewWatcher(manager, logger)
		g.Go(func() error {
			defer observability.RecoverPanic(logger, "module watcher")
			return watcher.Run(ctx)
		})
	}

	if cfg.Server.Web {
		health := observability.NewHealthChecker(manager, version)
		server := api.NewServer(manager, h, metrics, health, logger)

		var handler http.Handler = httputil.Chain(
			httputil.RequestIDMiddleware,
			httputil.LoggingMiddleware(logger),
			httputil.RecoveryMiddleware(logger),
		)(server)
		if cfg.Observability.TracingEnabled {
			handler = otelhttp.NewHandler(handler, "icingaweb")
		}

		srv := &http.Server{
			Addr:              cfg.Server.Listen,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Go(func() error {
			logger.Infof("Listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server failed: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			return observability.Shutdown(logger, srv, cfg.Server.ShutdownTimeout)
		})
	}

	return g.Wait()
}

// moduleDirs lets the static controller find the assets of loaded modules
func moduleDirs(manager *modules.Manager) host.AssetDirs {
	return func(name string) (string, bool) {
		d, ok := manager.GetModule(name)
		if !ok {
			return "", false
		}
		return d.BaseDir(), true
	}
}

func printCapabilities(out io.Writer, manager *modules.Manager) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()

	if err := enc.Encode(manager.Capabilities()); err != nil {
		return fmt.Errorf("failed to print capabilities: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
