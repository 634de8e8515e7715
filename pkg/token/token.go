package token

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes for single-purpose tokens. Consumers must check the
// purpose claim in addition to signature and expiry.
const (
	PurposeActivation = "activation"
	PurposeReset      = "reset_password"
)

// ErrExpired indicates the token is past its expiry but otherwise well
// formed and correctly signed. Expiry is a recoverable condition: an expired
// access token is the precondition for rotation.
var ErrExpired = errors.New("token expired")

// ErrInvalid indicates a structural or signature failure. Unlike expiry this
// is fatal: callers must reject the token outright.
var ErrInvalid = errors.New("invalid token")

// Claims carries the registered claims plus the role and purpose claims.
type Claims struct {
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Service issues and verifies tokens signed with the subject user's own
// RSA key pair rather than a shared service secret.
type Service struct {
	accessTTL     time.Duration
	refreshTTL    time.Duration
	activationTTL time.Duration
	resetTTL      time.Duration
	now           func() time.Time
}

// Config holds the token lifetimes.
type Config struct {
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ActivationTTL time.Duration
	ResetTTL      time.Duration
}

// NewService creates a token service. Zero lifetimes fall back to defaults.
func NewService(cfg Config) *Service {
	s := &Service{
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		activationTTL: cfg.ActivationTTL,
		resetTTL:      cfg.ResetTTL,
		now:           time.Now,
	}
	if s.accessTTL == 0 {
		s.accessTTL = 10 * time.Minute
	}
	if s.refreshTTL == 0 {
		s.refreshTTL = 7 * 24 * time.Hour
	}
	if s.activationTTL == 0 {
		s.activationTTL = 24 * time.Hour
	}
	if s.resetTTL == 0 {
		s.resetTTL = 15 * time.Minute
	}
	return s
}

// WithClock overrides the service clock. Used by tests to force expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) sign(claims Claims, key *rsa.PrivateKey) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}

// IssueAccess issues a short-lived access token embedding the user id and
// role name.
func (s *Service) IssueAccess(userID, role string, key *rsa.PrivateKey) (string, error) {
	now := s.now()
	return s.sign(Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}, key)
}

// IssueRefresh issues a longer-lived refresh token embedding the user id.
func (s *Service) IssueRefresh(userID string, key *rsa.PrivateKey) (string, error) {
	now := s.now()
	return s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}, key)
}

// IssueActivation issues a single-purpose account-activation token.
func (s *Service) IssueActivation(userID string, key *rsa.PrivateKey) (string, error) {
	now := s.now()
	return s.sign(Claims{
		Purpose: PurposeActivation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.activationTTL)),
		},
	}, key)
}

// IssueReset issues a single-purpose reset-password token.
func (s *Service) IssueReset(userID string, key *rsa.PrivateKey) (string, error) {
	now := s.now()
	return s.sign(Claims{
		Purpose: PurposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
	}, key)
}

// UnverifiedSubject extracts the subject claim without verifying the
// signature. The caller uses it to locate the subject's public key and must
// follow up with Verify before trusting anything else in the token.
func UnverifiedSubject(raw string) (string, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return "", ErrInvalid
	}
	if claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

// Verify checks a token against the user's public key and returns its
// claims. On expiry the claims are still returned together with ErrExpired,
// so rotation can inspect the expired access token. Every other failure is
// reported as ErrInvalid.
func (s *Service) Verify(raw string, pub *rsa.PublicKey) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (interface{}, error) { return pub, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims, ErrExpired
		}
		return nil, ErrInvalid
	}
	return claims, nil
}
