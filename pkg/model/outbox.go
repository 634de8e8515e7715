package model

import "time"

// Outbox entry statuses.
const (
	OutboxPending    = "pending"
	OutboxDispatched = "dispatched"
	OutboxFailed     = "failed"
)

// Outbox entry kinds.
const (
	OutboxKindSignup = "signup"
)

// OutboxEntry records a downstream sync intent, written in the same
// transaction as the state change it announces. The user id doubles as the
// idempotency key for the downstream consumer.
type OutboxEntry struct {
	ID           string     `gorm:"column:id;primaryKey"`
	UserID       string     `gorm:"column:user_id;not null;uniqueIndex"`
	Kind         string     `gorm:"column:kind;not null"`
	Payload      []byte     `gorm:"column:payload;not null"`
	Status       string     `gorm:"column:status;not null;default:pending"`
	Attempts     int        `gorm:"column:attempts;not null;default:0"`
	LastError    string     `gorm:"column:last_error"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	DispatchedAt *time.Time `gorm:"column:dispatched_at"`
}

func (OutboxEntry) TableName() string {
	return "outbox"
}
