package access

import (
	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/token"
)

// RotateTokens exchanges an expired access token plus a live refresh token
// for a fresh pair. The access token MUST be expired; rotation with a
// still-valid access token is rejected outright. The presented refresh token
// must match the stored one, must never have been consumed before, and is
// swapped out with a conditional update so concurrent rotations cannot both
// win.
func (s *Service) RotateTokens(accessRaw, refreshRaw string) (*TokenPair, error) {
	sub, err := token.UnverifiedSubject(accessRaw)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeAccessInvalid, "invalid access token")
	}

	pub, err := s.keys.PublicKeyFor(sub)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeAccessInvalid, "invalid access token")
	}

	accessClaims, err := s.tokens.Verify(accessRaw, pub)
	if err == nil {
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeAccessStillValid, "access token still valid")
	}
	if err != token.ErrExpired {
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeAccessInvalid, "invalid access token")
	}

	refreshClaims, err := s.tokens.Verify(refreshRaw, pub)
	if err != nil {
		audit.Log(audit.RotateEvent{UserID: sub})
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeRefreshInvalid, "invalid refresh token")
	}
	if refreshClaims.Subject != sub {
		audit.Log(audit.RotateEvent{UserID: sub})
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeRefreshSubjectMismatch, "invalid refresh token")
	}

	used, err := s.creds.IsTokenUsed(sub, refreshRaw)
	if err != nil {
		return nil, apperr.Mask(err)
	}
	if used {
		// A consumed token resurfacing means it leaked or the client is
		// broken. Either way the session is no longer trustworthy.
		if err := s.creds.ClearTokens(sub); err != nil {
			return nil, apperr.Mask(err)
		}
		audit.Log(audit.RotateEvent{UserID: sub, Replayed: true})
		audit.Log(audit.LogoutEvent{UserID: sub, Forced: true})
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeRefreshReplayed, "refresh token already used")
	}

	credential, err := s.creds.FetchCredential(sub)
	if err != nil {
		return nil, apperr.Mask(err)
	}
	if credential == nil || credential.RefreshToken != refreshRaw {
		audit.Log(audit.RotateEvent{UserID: sub})
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeRefreshMismatch, "refresh token not current")
	}

	pair, err := s.keys.PairFor(sub)
	if err != nil {
		return nil, apperr.Mask(err)
	}

	accessToken, err := s.tokens.IssueAccess(sub, accessClaims.Role, pair.Private())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(sub, pair.Private())
	if err != nil {
		return nil, err
	}

	swapped, err := s.creds.SwapRefreshToken(sub, refreshRaw, refreshToken)
	if err != nil {
		return nil, apperr.Mask(err)
	}
	if !swapped {
		// Lost the race against a concurrent rotation.
		audit.Log(audit.RotateEvent{UserID: sub})
		return nil, apperr.New(apperr.KindUnauthorized, apperr.CodeRefreshMismatch, "refresh token not current")
	}

	usedToken := &model.UsedRefreshToken{
		UserID:    sub,
		Token:     refreshRaw,
		ExpiredAt: refreshClaims.ExpiresAt.Time,
	}
	if refreshClaims.IssuedAt != nil {
		usedToken.IssuedAt = refreshClaims.IssuedAt.Time
	}
	if err := s.creds.ArchiveUsedToken(usedToken); err != nil {
		return nil, apperr.Mask(err)
	}

	audit.Log(audit.RotateEvent{UserID: sub, Success: true})

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
