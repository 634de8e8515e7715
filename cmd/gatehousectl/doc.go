// Package main implements gatehousectl, the CLI for the Gatehouse
// attribute-based permission and token-rotation service.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/middleware: token authentication and permission checks
//   - pkg/access: signup, login, token rotation and OTP flows
//   - pkg/grants: role/grant registry and the method-to-action table
//   - pkg/token: RS256 token issuing and verification
//   - pkg/keypair: RSA key pairs and the symmetric data-key cipher
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/outbox: transactional signup-sync dispatcher
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the gatehousectl CLI:
//
//	# Generate a data key for encryption
//	export GATEHOUSE_DATA_KEY="$(gatehousectl data-key generate)"
//
//	# Run database migrations
//	gatehousectl db migrate
//
//	# Seed the built-in roles and grants
//	gatehousectl role seed
//
//	# Start the server
//	gatehousectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - GATEHOUSE_DATA_KEY: Base64-encoded 256-bit key encrypting signing keys at rest
//   - GATEHOUSE_CONFIG_PATH: Directory holding gatehouse.yml (default: /etc/gatehouse/config)
//   - GATEHOUSE_LOG_LEVEL: Log level (debug, info, warn, error)
//   - GATEHOUSE_SYNC_URL: Downstream endpoint for signup-sync outbox delivery
package main
