package model

import (
	"time"

	"github.com/lib/pq"
)

// Profile is an owned entity protected by own-scoped permission actions.
type Profile struct {
	ID          string         `gorm:"column:id;primaryKey"`
	DisplayName string         `gorm:"column:display_name"`
	Bio         string         `gorm:"column:bio"`
	Owners      pq.StringArray `gorm:"column:owners;type:text[];not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
