// Package access orchestrates signup, login, token rotation and the OTP,
// activation and password-reset flows over the credential and user stores.
package access

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	"github.com/gatehouse-io/gatehouse/pkg/keystore"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
	"github.com/gatehouse-io/gatehouse/pkg/token"
)

// DefaultRole is the role every signup is enrolled into. It must be seeded
// before the service accepts signups.
const DefaultRole = "User"

// Mailer delivers OTP codes and activation tokens. Delivery is an external
// concern; implementations live outside this module.
type Mailer interface {
	SendOTP(email, code string) error
	SendActivation(email, token string) error
}

// TokenPair is an access/refresh token pair issued together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Config holds the OTP rate-limit knobs. Zero values fall back to defaults.
type Config struct {
	OTPCodeTTL     time.Duration
	OTPMinInterval time.Duration
	OTPHourlyLimit int
}

// Service implements the account lifecycle. All dependencies are injected;
// the clock is swappable for tests.
type Service struct {
	users  store.UsersStore
	roles  store.RolesStore
	creds  store.CredentialsStore
	keys   *keystore.KeyStore
	cipher keypair.SymmetricCipher
	tokens *token.Service
	mailer Mailer

	otpCodeTTL     time.Duration
	otpMinInterval time.Duration
	otpHourlyLimit int

	now func() time.Time
}

// NewService creates an access service.
func NewService(
	users store.UsersStore,
	roles store.RolesStore,
	creds store.CredentialsStore,
	keys *keystore.KeyStore,
	cipher keypair.SymmetricCipher,
	tokens *token.Service,
	mailer Mailer,
	cfg Config,
) *Service {
	s := &Service{
		users:          users,
		roles:          roles,
		creds:          creds,
		keys:           keys,
		cipher:         cipher,
		tokens:         tokens,
		mailer:         mailer,
		otpCodeTTL:     cfg.OTPCodeTTL,
		otpMinInterval: cfg.OTPMinInterval,
		otpHourlyLimit: cfg.OTPHourlyLimit,
		now:            time.Now,
	}
	if s.otpCodeTTL == 0 {
		s.otpCodeTTL = 10 * time.Minute
	}
	if s.otpMinInterval == 0 {
		s.otpMinInterval = 30 * time.Second
	}
	if s.otpHourlyLimit == 0 {
		s.otpHourlyLimit = 5
	}
	return s
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// generateOTP returns a random six-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
