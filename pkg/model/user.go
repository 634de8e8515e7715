package model

import (
	"time"

	"github.com/lib/pq"
)

// Login providers. Only local logins carry a password hash.
const (
	ProviderLocal    = "local"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// User represents an identity principal in Gatehouse.
type User struct {
	ID            string         `gorm:"column:id;primaryKey"`
	Email         string         `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash  []byte         `gorm:"column:password_hash"`
	FirstName     string         `gorm:"column:first_name"`
	LastName      string         `gorm:"column:last_name"`
	Provider      string         `gorm:"column:provider;not null;default:local"`
	RoleID        string         `gorm:"column:role_id;not null"`
	Owners        pq.StringArray `gorm:"column:owners;type:text[]"`
	EmailVerified bool           `gorm:"column:email_verified;not null;default:false"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// OwnedBy reports whether the given user id appears in the owners list.
func (u User) OwnedBy(userID string) bool {
	for _, owner := range u.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}
