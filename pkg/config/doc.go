// Package config provides configuration management for Gatehouse.
//
// This package handles loading and validating Gatehouse server configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from:
//
//   - Environment variables (primary)
//   - Configuration files (optional)
//
// # Key Configuration Options
//
//   - GATEHOUSE_DATA_KEY: Credential encryption key
//   - GATEHOUSE_LOG_LEVEL: Logging verbosity
//   - GATEHOUSE_BIND_ADDRESS: Server listen address
//   - DATABASE_URL: Database connection
package config
