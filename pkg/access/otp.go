package access

import (
	"time"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/model"
)

// OTP kinds for audit logging.
const (
	otpKindVerify = "verify"
	otpKindReset  = "reset"
)

// nextOTPState applies the rate limit to the current OTP state and, when the
// send is allowed, returns the state after the send. The limits are a rolling
// hourly cap and a minimum spacing between sends; in both cases
// elapsed >= threshold passes, so a request exactly at the boundary is
// accepted.
func (s *Service) nextOTPState(state model.OTPState, code string) (model.OTPState, *apperr.Error) {
	now := s.now()

	if state.LastSentAt != nil && now.Sub(*state.LastSentAt) < s.otpMinInterval {
		return model.OTPState{}, apperr.New(apperr.KindBadRequest, apperr.CodeOTPTooSoon, "please wait before requesting another code")
	}

	windowStart := state.WindowStart
	sendCount := state.SendCount
	if windowStart == nil || now.Sub(*windowStart) >= time.Hour {
		windowStart = &now
		sendCount = 0
	} else if sendCount >= s.otpHourlyLimit {
		return model.OTPState{}, apperr.New(apperr.KindBadRequest, apperr.CodeOTPHourlyLimit, "too many codes requested, try again later")
	}

	expiresAt := now.Add(s.otpCodeTTL)
	sentAt := now
	return model.OTPState{
		Code:        code,
		ExpiresAt:   &expiresAt,
		SendCount:   sendCount + 1,
		WindowStart: windowStart,
		LastSentAt:  &sentAt,
	}, nil
}

// checkOTP validates a presented code against the stored state.
func (s *Service) checkOTP(state model.OTPState, code string) *apperr.Error {
	if state.Code == "" {
		return apperr.New(apperr.KindBadRequest, apperr.CodeOTPMissing, "no code was requested")
	}
	if state.ExpiresAt == nil || !s.now().Before(*state.ExpiresAt) {
		return apperr.New(apperr.KindBadRequest, apperr.CodeOTPExpired, "code expired")
	}
	if state.Code != code {
		return apperr.New(apperr.KindBadRequest, apperr.CodeOTPMismatch, "incorrect code")
	}
	return nil
}

// consumed returns the state with the code cleared but the rate-limit
// counters intact, so verification does not reset the send budget.
func consumed(state model.OTPState) model.OTPState {
	state.Code = ""
	state.ExpiresAt = nil
	return state
}

// SendVerificationOTP generates and mails an email-verification code,
// subject to the rate limits.
func (s *Service) SendVerificationOTP(userID string) error {
	user, err := s.users.FetchUserByID(userID)
	if err != nil {
		return apperr.Mask(err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	credential, err := s.creds.FetchCredential(userID)
	if err != nil {
		return apperr.Mask(err)
	}
	if credential == nil {
		return apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	next, rateErr := s.nextOTPState(credential.VerifyOTP(), code)
	if rateErr != nil {
		audit.Log(audit.OTPEvent{UserID: userID, Operation: audit.OTPOperationSend, Kind: otpKindVerify, Reason: rateErr.Message})
		return rateErr
	}

	if err := s.creds.SaveVerifyOTP(userID, next); err != nil {
		return apperr.Mask(err)
	}
	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		return err
	}

	audit.Log(audit.OTPEvent{UserID: userID, Operation: audit.OTPOperationSend, Kind: otpKindVerify, Success: true})
	return nil
}

// VerifyOTP checks an email-verification code and marks the email verified.
func (s *Service) VerifyOTP(userID, code string) error {
	credential, err := s.creds.FetchCredential(userID)
	if err != nil {
		return apperr.Mask(err)
	}
	if credential == nil {
		return apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	state := credential.VerifyOTP()
	if checkErr := s.checkOTP(state, code); checkErr != nil {
		audit.Log(audit.OTPEvent{UserID: userID, Operation: audit.OTPOperationVerify, Kind: otpKindVerify, Reason: checkErr.Message})
		return checkErr
	}

	if err := s.users.SetEmailVerified(userID); err != nil {
		return apperr.Mask(err)
	}
	if err := s.creds.SaveVerifyOTP(userID, consumed(state)); err != nil {
		return apperr.Mask(err)
	}

	audit.Log(audit.OTPEvent{UserID: userID, Operation: audit.OTPOperationVerify, Kind: otpKindVerify, Success: true})
	return nil
}

// SendResetOTP generates and mails a password-reset code. The reset flow
// keeps its own counters, rate-limited the same way as verification.
func (s *Service) SendResetOTP(email string) error {
	user, err := s.users.FetchUserByEmail(email, model.ProviderLocal)
	if err != nil {
		return apperr.Mask(err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	credential, err := s.creds.FetchCredential(user.ID)
	if err != nil {
		return apperr.Mask(err)
	}
	if credential == nil {
		return apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	next, rateErr := s.nextOTPState(credential.ResetOTP(), code)
	if rateErr != nil {
		audit.Log(audit.OTPEvent{UserID: user.ID, Operation: audit.OTPOperationSend, Kind: otpKindReset, Reason: rateErr.Message})
		return rateErr
	}

	if err := s.creds.SaveResetOTP(user.ID, next); err != nil {
		return apperr.Mask(err)
	}
	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		return err
	}

	audit.Log(audit.OTPEvent{UserID: user.ID, Operation: audit.OTPOperationSend, Kind: otpKindReset, Success: true})
	return nil
}

// ConfirmResetOTP checks a password-reset code and, on success, issues the
// single-use reset token, stores it on the credential and returns it.
func (s *Service) ConfirmResetOTP(email, code string) (string, error) {
	user, err := s.users.FetchUserByEmail(email, model.ProviderLocal)
	if err != nil {
		return "", apperr.Mask(err)
	}
	if user == nil {
		return "", apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	credential, err := s.creds.FetchCredential(user.ID)
	if err != nil {
		return "", apperr.Mask(err)
	}
	if credential == nil {
		return "", apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	state := credential.ResetOTP()
	if checkErr := s.checkOTP(state, code); checkErr != nil {
		audit.Log(audit.OTPEvent{UserID: user.ID, Operation: audit.OTPOperationVerify, Kind: otpKindReset, Reason: checkErr.Message})
		return "", checkErr
	}

	pair, err := s.keys.PairFor(user.ID)
	if err != nil {
		return "", apperr.Mask(err)
	}
	resetToken, err := s.tokens.IssueReset(user.ID, pair.Private())
	if err != nil {
		return "", err
	}

	if err := s.creds.SetResetToken(user.ID, resetToken); err != nil {
		return "", apperr.Mask(err)
	}
	if err := s.creds.SaveResetOTP(user.ID, consumed(state)); err != nil {
		return "", apperr.Mask(err)
	}

	audit.Log(audit.OTPEvent{UserID: user.ID, Operation: audit.OTPOperationVerify, Kind: otpKindReset, Success: true})
	return resetToken, nil
}
