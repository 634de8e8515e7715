package store

import "github.com/gatehouse-io/gatehouse/pkg/model"

// OutboxStore abstracts the signup sync outbox. Entries are enqueued
// through UsersStore.CreateSignup; this interface serves the dispatcher.
type OutboxStore interface {
	// FetchPending returns up to limit pending entries, oldest first.
	FetchPending(limit int) ([]model.OutboxEntry, error)

	// MarkDispatched flags an entry as delivered.
	MarkDispatched(id string) error

	// MarkFailed records a delivery failure; the entry stays pending until
	// maxAttempts, then moves to failed.
	MarkFailed(id string, lastError string, maxAttempts int) error
}
