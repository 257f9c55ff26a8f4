// Package config provides application configuration from a YAML file and
// environment variables.
//
// # Overview
//
// Settings start from DefaultConfig, are overridden by an optional YAML file
// and then by environment variables, and are validated last.
//
// # Configuration File
//
//	modules:
//	  paths:
//	    - /usr/share/icingaweb2/modules
//	    - /opt/icingaweb2/modules
//	  enabled_dir: /etc/icingaweb2/enabledModules
//	  watch: true
//	server:
//	  web: true
//	  listen: ":8080"
//	  shutdown_timeout: 30s
//	observability:
//	  log_level: info
//	  metrics_enabled: true
//
// # Environment
//
//	ICINGAWEB_MODULE_PATH="/usr/share/icingaweb2/modules:/opt/icingaweb2/modules"
//	ICINGAWEB_ENABLED_MODULES_DIR="/etc/icingaweb2/enabledModules"
//	ICINGAWEB_WATCH_MODULES="true"
//	ICINGAWEB_WEB="true"
//	ICINGAWEB_LISTEN=":8080"
//	ICINGAWEB_SHUTDOWN_TIMEOUT="30s"
//	ICINGAWEB_LOG_LEVEL="info"  # debug, info, warn, error
//	ICINGAWEB_METRICS_ENABLED="true"
//
// # Usage Example
//
//	cfg, err := config.Load("/etc/icingaweb2/icingaweb.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/modules: Consumes module paths and the enabled directory
//   - pkg/observability: Consumes the log level
package config
