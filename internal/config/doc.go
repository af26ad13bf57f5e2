// Package config handles configuration loading for relaygate.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion
// and validated before the server starts.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from RELAYGATE_CONFIG environment variable
//  2. ~/.config/relaygate/relaygate.yaml (or $XDG_CONFIG_HOME/relaygate/)
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	admin:
//	  api_token: "${RELAYGATE_API_TOKEN}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "127.0.0.1:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/relaygate/relaygate.db"
//
// Admin authentication:
//
//	admin:
//	  api_token: "${RELAYGATE_API_TOKEN}"  # Required; hashed at startup
//	  verify_workers: 4                    # Concurrent bcrypt comparisons
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() requires server.http_addr, database.path, and admin.api_token, and
// rejects a negative admin.verify_workers.
package config
