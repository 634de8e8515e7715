package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Ensure CredentialsStore implements store.CredentialsStore
var _ store.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore implements store.CredentialsStore using GORM
type CredentialsStore struct {
	db *gorm.DB
}

// NewCredentialsStore creates a new CredentialsStore
func NewCredentialsStore(db *gorm.DB) *CredentialsStore {
	return &CredentialsStore{db: db}
}

// FetchCredential retrieves a user's credential row
func (s *CredentialsStore) FetchCredential(userID string) (*model.Credential, error) {
	var credential model.Credential
	tx := s.db.Where("user_id = ?", userID).First(&credential)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &credential, nil
}

// SetRefreshToken stores a new refresh token unconditionally
func (s *CredentialsStore) SetRefreshToken(userID, tok string) error {
	return s.db.Model(&model.Credential{}).
		Where("user_id = ?", userID).
		Update("refresh_token", tok).Error
}

// SwapRefreshToken replaces the stored refresh token only if it still
// equals old. The conditional update makes concurrent rotations for the
// same user safe: exactly one writer sees RowsAffected == 1.
func (s *CredentialsStore) SwapRefreshToken(userID, oldTok, newTok string) (bool, error) {
	tx := s.db.Model(&model.Credential{}).
		Where("user_id = ? AND refresh_token = ?", userID, oldTok).
		Update("refresh_token", newTok)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// ArchiveUsedToken records a consumed refresh token
func (s *CredentialsStore) ArchiveUsedToken(used *model.UsedRefreshToken) error {
	return s.db.Create(used).Error
}

// IsTokenUsed checks the replay history
func (s *CredentialsStore) IsTokenUsed(userID, tok string) (bool, error) {
	var exists bool
	tx := s.db.Raw(
		`SELECT EXISTS(SELECT 1 FROM used_refresh_tokens WHERE user_id = ? AND token = ?)`,
		userID, tok,
	).Scan(&exists)
	return exists, tx.Error
}

// ClearTokens removes the stored refresh token and the replay history
func (s *CredentialsStore) ClearTokens(userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Credential{}).
			Where("user_id = ?", userID).
			Update("refresh_token", "").Error
		if err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM used_refresh_tokens WHERE user_id = ?`, userID).Error
	})
}

// SaveVerifyOTP persists the email-verification OTP state
func (s *CredentialsStore) SaveVerifyOTP(userID string, state model.OTPState) error {
	return s.db.Model(&model.Credential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"verify_otp_code":         state.Code,
			"verify_otp_expires_at":   state.ExpiresAt,
			"verify_otp_send_count":   state.SendCount,
			"verify_otp_window_start": state.WindowStart,
			"verify_otp_last_sent_at": state.LastSentAt,
		}).Error
}

// SaveResetOTP persists the password-reset OTP state
func (s *CredentialsStore) SaveResetOTP(userID string, state model.OTPState) error {
	return s.db.Model(&model.Credential{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"reset_otp_code":         state.Code,
			"reset_otp_expires_at":   state.ExpiresAt,
			"reset_otp_send_count":   state.SendCount,
			"reset_otp_window_start": state.WindowStart,
			"reset_otp_last_sent_at": state.LastSentAt,
		}).Error
}

// SetResetToken stores the single-use reset-password token
func (s *CredentialsStore) SetResetToken(userID, tok string) error {
	return s.db.Model(&model.Credential{}).
		Where("user_id = ?", userID).
		Update("reset_token", tok).Error
}
