package model

import "time"

// Role statuses.
const (
	RoleStatusActive  = "active"
	RoleStatusBlocked = "blocked"
	RoleStatusPending = "pending"
)

// Role represents a named role with its grants.
type Role struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;not null;default:active"`
	Grants      []Grant   `gorm:"foreignKey:RoleID"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}
