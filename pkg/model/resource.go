package model

import (
	"time"

	"github.com/lib/pq"
)

// Resource represents a generic protected entity. Any entity guarded by
// own-scoped actions must expose an owners list; entities without one can
// only be reached through Any-scoped grants.
type Resource struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Kind      string         `gorm:"column:kind;not null"`
	Owners    pq.StringArray `gorm:"column:owners;type:text[];not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (Resource) TableName() string {
	return "resources"
}
