// Package config provides centralized configuration management for the PCN
// portal. It handles loading configuration from multiple sources, validation,
// and provides a type-safe API for accessing configuration values throughout
// the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PCN_* for namespacing:
//
//	PCN_SERVER_PORT=8080
//	PCN_DATABASE_DSN=postgres://...
//	PCN_STORAGE_CONNECTION_STRING=DefaultEndpointsProtocol=https;...
//	PCN_STORAGE_CONTAINER=uploads
//	PCN_LOGGING_LEVEL=info
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	addr := fmt.Sprintf(":%d", cfg.Server.Port)
package config
