package model

import (
	"time"

	"github.com/lib/pq"
)

// Grant attaches a set of permission actions on one resource type to a role.
// Actions follow the {read,create,update,delete} x {Own,Any} vocabulary.
// Grants are created with their role and appended via "add grant"; they are
// never deleted independently.
type Grant struct {
	ID         string         `gorm:"column:id;primaryKey"`
	RoleID     string         `gorm:"column:role_id;not null;index"`
	Resource   string         `gorm:"column:resource;not null"`
	Actions    pq.StringArray `gorm:"column:actions;type:text[];not null"`
	Attributes string         `gorm:"column:attributes;not null;default:*"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (Grant) TableName() string {
	return "grants"
}

// HasAction reports whether the grant carries the given action string.
func (g Grant) HasAction(action string) bool {
	for _, a := range g.Actions {
		if a == action {
			return true
		}
	}
	return false
}
