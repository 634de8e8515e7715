package store

import "github.com/gatehouse-io/gatehouse/pkg/model"

// CredentialsStore abstracts credential storage.
//
// Refresh-token state transitions go through SwapRefreshToken, a conditional
// update, so concurrent rotations for the same user cannot both win.
type CredentialsStore interface {
	// FetchCredential retrieves a user's credential row, or nil if absent.
	FetchCredential(userID string) (*model.Credential, error)

	// SetRefreshToken stores a new refresh token unconditionally. Used at
	// login, where the previous session is invalidated by design.
	SetRefreshToken(userID, tok string) error

	// SwapRefreshToken replaces the stored refresh token only if it still
	// equals oldTok. Returns false when another writer got there first.
	SwapRefreshToken(userID, oldTok, newTok string) (bool, error)

	// ArchiveUsedToken records a consumed refresh token for replay
	// detection.
	ArchiveUsedToken(used *model.UsedRefreshToken) error

	// IsTokenUsed checks the replay history.
	IsTokenUsed(userID, tok string) (bool, error)

	// ClearTokens removes the stored refresh token and the replay history.
	ClearTokens(userID string) error

	// SaveVerifyOTP persists the email-verification OTP state.
	SaveVerifyOTP(userID string, state model.OTPState) error

	// SaveResetOTP persists the password-reset OTP state.
	SaveResetOTP(userID string, state model.OTPState) error

	// SetResetToken stores the single-use reset-password token. An empty
	// string clears it.
	SetResetToken(userID, tok string) error
}
