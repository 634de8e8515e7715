// Package store provides storage abstractions for the Gatehouse server.
//
// This package defines interfaces for database operations, allowing the
// access service, the permission middleware and the endpoints to be
// decoupled from the specific database implementation. This enables easier
// testing with mocks and potential support for different storage backends.
//
// # Available Stores
//
//   - UsersStore: user lifecycle, including the transactional signup write
//   - RolesStore: roles with their grants, plus grant appends
//   - CredentialsStore: key pairs, refresh-token rotation state, OTP state
//   - OutboxStore: pending downstream sync intents
//   - ProfilesStore / ResourcesStore: owned entities behind the middleware
//   - HealthStore: connectivity checks
//
// # Usage
//
//	users := gorm.NewUsersStore(db)
//	user, err := users.FetchUserByEmail("a@example.com", model.ProviderLocal)
//	if err != nil { ... }
//	if user == nil { // absent, not an error
//	}
package store
