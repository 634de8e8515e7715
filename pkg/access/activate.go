package access

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/token"
)

// SendActivationLink issues an activation token for the user and mails it.
func (s *Service) SendActivationLink(userID string) error {
	user, err := s.users.FetchUserByID(userID)
	if err != nil {
		return apperr.Mask(err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found")
	}

	pair, err := s.keys.PairFor(userID)
	if err != nil {
		return apperr.Mask(err)
	}
	activationToken, err := s.tokens.IssueActivation(userID, pair.Private())
	if err != nil {
		return err
	}

	return s.mailer.SendActivation(user.Email, activationToken)
}

// ActivateAccount verifies an activation token and marks the subject's email
// verified. The purpose claim is checked on top of signature and expiry so a
// reset-password token cannot activate an account.
func (s *Service) ActivateAccount(raw string) error {
	sub, err := token.UnverifiedSubject(raw)
	if err != nil {
		return apperr.New(apperr.KindUnauthorized, apperr.CodeActivationInvalid, "invalid activation token")
	}

	pub, err := s.keys.PublicKeyFor(sub)
	if err != nil {
		return apperr.New(apperr.KindUnauthorized, apperr.CodeActivationInvalid, "invalid activation token")
	}

	claims, err := s.tokens.Verify(raw, pub)
	if err != nil {
		audit.Log(audit.ActivateEvent{UserID: sub})
		return apperr.New(apperr.KindUnauthorized, apperr.CodeActivationInvalid, "invalid activation token")
	}
	if claims.Purpose != token.PurposeActivation {
		audit.Log(audit.ActivateEvent{UserID: sub})
		return apperr.New(apperr.KindUnauthorized, apperr.CodePurposeMismatch, "token not valid for activation")
	}

	if err := s.users.SetEmailVerified(sub); err != nil {
		return apperr.Mask(err)
	}

	audit.Log(audit.ActivateEvent{UserID: sub, Success: true})
	return nil
}

// ResetPassword verifies a reset token, requires it to match the one stored
// on the credential, and replaces the password. The stored token is cleared
// on success and every session is invalidated.
func (s *Service) ResetPassword(raw, newPassword string) error {
	sub, err := token.UnverifiedSubject(raw)
	if err != nil {
		return apperr.New(apperr.KindUnauthorized, apperr.CodeResetTokenInvalid, "invalid reset token")
	}

	pub, err := s.keys.PublicKeyFor(sub)
	if err != nil {
		return apperr.New(apperr.KindUnauthorized, apperr.CodeResetTokenInvalid, "invalid reset token")
	}

	claims, err := s.tokens.Verify(raw, pub)
	if err != nil {
		audit.Log(audit.PasswordEvent{UserID: sub})
		return apperr.New(apperr.KindUnauthorized, apperr.CodeResetTokenInvalid, "invalid reset token")
	}
	if claims.Purpose != token.PurposeReset {
		audit.Log(audit.PasswordEvent{UserID: sub})
		return apperr.New(apperr.KindUnauthorized, apperr.CodePurposeMismatch, "token not valid for password reset")
	}

	credential, err := s.creds.FetchCredential(sub)
	if err != nil {
		return apperr.Mask(err)
	}
	if credential == nil || credential.ResetToken == "" || credential.ResetToken != raw {
		audit.Log(audit.PasswordEvent{UserID: sub})
		return apperr.New(apperr.KindUnauthorized, apperr.CodeResetTokenMismatch, "reset token not current")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(sub, hash); err != nil {
		return apperr.Mask(err)
	}

	// Single use: clear the reset token and drop every live session.
	if err := s.creds.SetResetToken(sub, ""); err != nil {
		return apperr.Mask(err)
	}
	if err := s.creds.ClearTokens(sub); err != nil {
		return apperr.Mask(err)
	}

	audit.Log(audit.PasswordEvent{UserID: sub, Success: true})
	return nil
}
