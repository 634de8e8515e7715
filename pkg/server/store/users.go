package store

import "github.com/gatehouse-io/gatehouse/pkg/model"

// UsersStore abstracts user storage operations.
//
// Fetch methods return (nil, nil) when the row is absent; errors are
// reserved for storage failures.
type UsersStore interface {
	// FetchUserByEmail retrieves a user by email and login provider.
	FetchUserByEmail(email, provider string) (*model.User, error)

	// FetchUserByID retrieves a user by id.
	FetchUserByID(id string) (*model.User, error)

	// EmailTaken checks whether any user holds the email, regardless of
	// provider.
	EmailTaken(email string) (bool, error)

	// CreateSignup writes the user, its credential and the outbox entry in
	// one transaction so the sync intent cannot be lost.
	CreateSignup(user *model.User, credential *model.Credential, entry *model.OutboxEntry) error

	// SetOwners replaces the user's owners list.
	SetOwners(userID string, owners []string) error

	// SetEmailVerified marks the user's email as verified.
	SetEmailVerified(userID string) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(userID string, hash []byte) error

	// DeleteUser removes the user; the credential row cascades.
	DeleteUser(userID string) error
}
