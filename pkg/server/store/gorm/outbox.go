package gorm

import (
	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Ensure OutboxStore implements store.OutboxStore
var _ store.OutboxStore = (*OutboxStore)(nil)

// OutboxStore implements store.OutboxStore using GORM
type OutboxStore struct {
	db *gorm.DB
}

// NewOutboxStore creates a new OutboxStore
func NewOutboxStore(db *gorm.DB) *OutboxStore {
	return &OutboxStore{db: db}
}

// FetchPending returns up to limit pending entries, oldest first
func (s *OutboxStore) FetchPending(limit int) ([]model.OutboxEntry, error) {
	var entries []model.OutboxEntry
	tx := s.db.Where("status = ?", model.OutboxPending).
		Order("created_at").
		Limit(limit).
		Find(&entries)
	return entries, tx.Error
}

// MarkDispatched flags an entry as delivered
func (s *OutboxStore) MarkDispatched(id string) error {
	return s.db.Exec(`
		UPDATE outbox
		SET status = ?, dispatched_at = NOW(), attempts = attempts + 1
		WHERE id = ?
	`, model.OutboxDispatched, id).Error
}

// MarkFailed records a delivery failure. Entries past maxAttempts move to
// the failed status and stop being retried.
func (s *OutboxStore) MarkFailed(id string, lastError string, maxAttempts int) error {
	return s.db.Exec(`
		UPDATE outbox
		SET attempts = attempts + 1,
		    last_error = ?,
		    status = CASE WHEN attempts + 1 >= ? THEN ? ELSE status END
		WHERE id = ?
	`, lastError, maxAttempts, model.OutboxFailed, id).Error
}
