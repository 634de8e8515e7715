package gorm

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// FetchUserByEmail retrieves a user by email and login provider
func (s *UsersStore) FetchUserByEmail(email, provider string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("email = ? AND provider = ?", email, provider).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FetchUserByID retrieves a user by id
func (s *UsersStore) FetchUserByID(id string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("id = ?", id).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &user, nil
}

// EmailTaken checks whether any user holds the email
func (s *UsersStore) EmailTaken(email string) (bool, error) {
	var exists bool
	tx := s.db.Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	return exists, tx.Error
}

// CreateSignup writes the user, credential and outbox entry atomically
func (s *UsersStore) CreateSignup(user *model.User, credential *model.Credential, entry *model.OutboxEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(credential).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// SetOwners replaces the user's owners list
func (s *UsersStore) SetOwners(userID string, owners []string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("owners", pq.StringArray(owners)).Error
}

// SetEmailVerified marks the user's email as verified
func (s *UsersStore) SetEmailVerified(userID string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}

// UpdatePassword replaces the stored password hash
func (s *UsersStore) UpdatePassword(userID string, hash []byte) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}

// DeleteUser removes the user and its dependent rows
func (s *UsersStore) DeleteUser(userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM used_refresh_tokens WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM credentials WHERE user_id = ?`, userID).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM users WHERE id = ?`, userID).Error
	})
}
