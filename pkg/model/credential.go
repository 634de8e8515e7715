package model

import "time"

// Credential holds the per-user signing key pair and token state.
// It is created at signup and deleted with its user. The private key is
// encrypted at rest with the service data key (AAD is the user id).
type Credential struct {
	UserID       string `gorm:"column:user_id;primaryKey"`
	PublicKey    []byte `gorm:"column:public_key;not null"`
	PrivateKey   []byte `gorm:"column:private_key;not null"`
	RefreshToken string `gorm:"column:refresh_token"`

	// Email-verification OTP state.
	VerifyOTPCode        string     `gorm:"column:verify_otp_code"`
	VerifyOTPExpiresAt   *time.Time `gorm:"column:verify_otp_expires_at"`
	VerifyOTPSendCount   int        `gorm:"column:verify_otp_send_count;not null;default:0"`
	VerifyOTPWindowStart *time.Time `gorm:"column:verify_otp_window_start"`
	VerifyOTPLastSentAt  *time.Time `gorm:"column:verify_otp_last_sent_at"`

	// Password-reset OTP state. Same shape, independent counters.
	ResetOTPCode        string     `gorm:"column:reset_otp_code"`
	ResetOTPExpiresAt   *time.Time `gorm:"column:reset_otp_expires_at"`
	ResetOTPSendCount   int        `gorm:"column:reset_otp_send_count;not null;default:0"`
	ResetOTPWindowStart *time.Time `gorm:"column:reset_otp_window_start"`
	ResetOTPLastSentAt  *time.Time `gorm:"column:reset_otp_last_sent_at"`

	// Single-use reset-password token issued after OTP confirmation.
	ResetToken string `gorm:"column:reset_token"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}

// OTPState is a view over one of the two OTP records on a credential.
type OTPState struct {
	Code        string
	ExpiresAt   *time.Time
	SendCount   int
	WindowStart *time.Time
	LastSentAt  *time.Time
}

// VerifyOTP returns the email-verification OTP state.
func (c Credential) VerifyOTP() OTPState {
	return OTPState{
		Code:        c.VerifyOTPCode,
		ExpiresAt:   c.VerifyOTPExpiresAt,
		SendCount:   c.VerifyOTPSendCount,
		WindowStart: c.VerifyOTPWindowStart,
		LastSentAt:  c.VerifyOTPLastSentAt,
	}
}

// ResetOTP returns the password-reset OTP state.
func (c Credential) ResetOTP() OTPState {
	return OTPState{
		Code:        c.ResetOTPCode,
		ExpiresAt:   c.ResetOTPExpiresAt,
		SendCount:   c.ResetOTPSendCount,
		WindowStart: c.ResetOTPWindowStart,
		LastSentAt:  c.ResetOTPLastSentAt,
	}
}
