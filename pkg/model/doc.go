// Package model defines the database models for Gatehouse.
//
// This package contains GORM models that map to the Gatehouse PostgreSQL
// schema.
//
// # Core Models
//
//   - User: identity principals with a single role and an owners list
//   - Role: named roles carrying an ordered list of grants
//   - Grant: (resource, actions, attributes) tuples attached to a role
//   - Credential: per-user signing key pair, refresh-token state and OTP state
//   - UsedRefreshToken: consumed refresh tokens kept for replay detection
//   - OutboxEntry: pending downstream sync intents recorded at signup
//   - Profile, Resource: owned entities protected by the permission middleware
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - users, roles, grants
//   - credentials: key pairs (private half encrypted) and token state
//   - used_refresh_tokens: rotation history
//   - outbox: signup sync outbox
//   - profiles, resources: sample protected entities
package model
