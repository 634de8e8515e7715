package model

import "time"

// UsedRefreshToken records a refresh token consumed by a successful rotation.
// Presence in this table makes any later use of the token a replay.
type UsedRefreshToken struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	Token     string    `gorm:"column:token;not null"`
	IssuedAt  time.Time `gorm:"column:issued_at;not null"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null"`
}

func (UsedRefreshToken) TableName() string {
	return "used_refresh_tokens"
}
