package apperr

// Numeric error codes. The digits encode subsystem + operation + case.
// Uniqueness is the contract; the digits themselves carry no other meaning.
const (
	// Permission middleware (100 02xx)
	CodeResourceUnconfigured = 1000201
	CodeGrantsMissing        = 1000202
	CodeRoleUnresolved       = 1000203
	CodeActionNotGranted     = 1000204
	CodeGrantInconsistent    = 1000205
	CodeOwnersUnresolved     = 1000206
	CodeNotAnOwner           = 1000207

	// Signup (100 11xx)
	CodeEmailTaken      = 1001101
	CodeSeedRoleMissing = 1001102

	// Login (100 12xx)
	CodeUserNotFound    = 1001201
	CodeEmailUnverified = 1001202
	CodeBadPassword     = 1001203

	// Token rotation (100 13xx)
	CodeAccessStillValid       = 1001301
	CodeRefreshInvalid         = 1001302
	CodeRefreshReplayed        = 1001303
	CodeRefreshMismatch        = 1001304
	CodeRefreshSubjectMismatch = 1001305
	CodeAccessInvalid          = 1001306

	// OTP (100 14xx)
	CodeOTPHourlyLimit = 1001401
	CodeOTPTooSoon     = 1001402
	CodeOTPMismatch    = 1001403
	CodeOTPExpired     = 1001404
	CodeOTPMissing     = 1001405

	// Activation and password reset (100 15xx)
	CodePurposeMismatch    = 1001501
	CodeResetTokenInvalid  = 1001502
	CodeResetTokenMismatch = 1001503
	CodeActivationInvalid  = 1001504

	// Role administration (100 16xx)
	CodeRoleNameTaken = 1001601
	CodeRoleNotFound  = 1001602
)
