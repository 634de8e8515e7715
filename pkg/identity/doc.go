// Package identity provides authenticated identity management for Gatehouse
// requests.
//
// An Identity carries the caller's user id and role name, established
// upstream by the access-token middleware. The permission middleware and the
// endpoint handlers read it back from the request context.
//
// # Basic Usage
//
//	// Store in request context after token verification
//	ctx = identity.Set(ctx, &identity.Identity{UserID: sub, Role: role})
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
package identity
