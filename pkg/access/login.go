package access

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/model"
)

// Login authenticates a local account and issues a fresh token pair. The new
// refresh token replaces any stored one, so logging in elsewhere silently
// invalidates the previous session.
func (s *Service) Login(email, password, clientIP string) (*TokenPair, *model.User, error) {
	fail := func(userID string) {
		audit.Log(audit.AuthenticateEvent{UserID: userID, Email: email, ClientIP: clientIP, Success: false})
	}

	user, err := s.users.FetchUserByEmail(email, model.ProviderLocal)
	if err != nil {
		return nil, nil, apperr.Mask(err)
	}
	if user == nil {
		fail("")
		return nil, nil, apperr.New(apperr.KindUnauthorized, apperr.CodeUserNotFound, "invalid credentials")
	}
	if !user.EmailVerified {
		fail(user.ID)
		return nil, nil, apperr.New(apperr.KindUnauthorized, apperr.CodeEmailUnverified, "email not verified")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		fail(user.ID)
		return nil, nil, apperr.New(apperr.KindUnauthorized, apperr.CodeBadPassword, "invalid credentials")
	}

	role, err := s.roles.FetchRoleByID(user.RoleID)
	if err != nil {
		return nil, nil, apperr.Mask(err)
	}
	roleName := ""
	if role != nil {
		roleName = role.Name
	}

	pair, err := s.keys.PairFor(user.ID)
	if err != nil {
		return nil, nil, apperr.Mask(err)
	}

	accessToken, err := s.tokens.IssueAccess(user.ID, roleName, pair.Private())
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID, pair.Private())
	if err != nil {
		return nil, nil, err
	}

	if err := s.creds.SetRefreshToken(user.ID, refreshToken); err != nil {
		return nil, nil, apperr.Mask(err)
	}

	audit.Log(audit.AuthenticateEvent{UserID: user.ID, ClientIP: clientIP, Success: true})

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Logout clears the stored refresh token and the replay history, disabling
// rotation until the next login.
func (s *Service) Logout(userID string) error {
	if err := s.creds.ClearTokens(userID); err != nil {
		return apperr.Mask(err)
	}
	audit.Log(audit.LogoutEvent{UserID: userID})
	return nil
}
