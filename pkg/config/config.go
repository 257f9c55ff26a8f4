package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Module discovery and activation
	Modules ModulesConfig `yaml:"modules"`

	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability"`
}

// ModulesConfig holds module discovery settings
type ModulesConfig struct {
	// Paths are searched in order; the first directory with a given name wins
	Paths []string `yaml:"paths"`

	// EnabledDir holds one symlink per enabled module
	EnabledDir string `yaml:"enabled_dir"`

	// Watch loads modules as soon as they appear in EnabledDir
	Watch bool `yaml:"watch"`

	// Metadata of installed but not loaded modules is cached
	MetadataCacheSize int           `yaml:"metadata_cache_size"`
	MetadataCacheTTL  time.Duration `yaml:"metadata_cache_ttl"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Web makes modules contribute controllers, translations and routes
	Web             bool          `yaml:"web"`
	Listen          string        `yaml:"listen"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`

	// Spans are exported over OTLP/gRPC when tracing is enabled
	TracingEnabled bool   `yaml:"tracing_enabled"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Modules: ModulesConfig{
			Paths:             []string{"/usr/share/icingaweb2/modules"},
			EnabledDir:        "/etc/icingaweb2/enabledModules",
			MetadataCacheSize: 256,
			MetadataCacheTTL:  5 * time.Minute,
		},
		Server: ServerConfig{
			Web:             true,
			Listen:          ":8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			MetricsEnabled: true,
			OTLPEndpoint:   "localhost:4317",
			OTLPInsecure:   true,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is set and the file exists) and ICINGAWEB_* environment variables,
// in that order of precedence, and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides settings from the environment
func (c *Config) applyEnv() {
	c.Modules.Paths = getEnvList("ICINGAWEB_MODULE_PATH", c.Modules.Paths)
	c.Modules.EnabledDir = getEnv("ICINGAWEB_ENABLED_MODULES_DIR", c.Modules.EnabledDir)
	c.Modules.Watch = getEnvBool("ICINGAWEB_WATCH_MODULES", c.Modules.Watch)
	c.Modules.MetadataCacheSize = getEnvInt("ICINGAWEB_METADATA_CACHE_SIZE", c.Modules.MetadataCacheSize)
	c.Modules.MetadataCacheTTL = getEnvDuration("ICINGAWEB_METADATA_CACHE_TTL", c.Modules.MetadataCacheTTL)

	c.Server.Web = getEnvBool("ICINGAWEB_WEB", c.Server.Web)
	c.Server.Listen = getEnv("ICINGAWEB_LISTEN", c.Server.Listen)
	c.Server.ShutdownTimeout = getEnvDuration("ICINGAWEB_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Observability.LogLevel = getEnv("ICINGAWEB_LOG_LEVEL", c.Observability.LogLevel)
	c.Observability.MetricsEnabled = getEnvBool("ICINGAWEB_METRICS_ENABLED", c.Observability.MetricsEnabled)
	c.Observability.TracingEnabled = getEnvBool("ICINGAWEB_TRACING_ENABLED", c.Observability.TracingEnabled)
	c.Observability.OTLPEndpoint = getEnv("ICINGAWEB_OTLP_ENDPOINT", c.Observability.OTLPEndpoint)
	c.Observability.OTLPInsecure = getEnvBool("ICINGAWEB_OTLP_INSECURE", c.Observability.OTLPInsecure)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Modules.Paths) == 0 {
		return fmt.Errorf("at least one module path is required")
	}
	for _, p := range c.Modules.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("module paths must not be empty")
		}
	}
	if c.Modules.EnabledDir == "" {
		return fmt.Errorf("enabled modules directory is required")
	}
	if c.Modules.MetadataCacheSize <= 0 {
		return fmt.Errorf("metadata cache size must be positive")
	}
	if c.Modules.MetadataCacheTTL <= 0 {
		return fmt.Errorf("metadata cache ttl must be positive")
	}

	if c.Server.Web && c.Server.Listen == "" {
		return fmt.Errorf("listen address is required for web hosts")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Observability.LogLevel)
	}
	if c.Observability.TracingEnabled && c.Observability.OTLPEndpoint == "" {
		return fmt.Errorf("otlp endpoint is required when tracing is enabled")
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvList splits a colon-separated environment variable, like PATH
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var list []string
	for _, item := range strings.Split(value, ":") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
