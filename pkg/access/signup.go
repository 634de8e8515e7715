package access

import (
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	"github.com/gatehouse-io/gatehouse/pkg/model"
)

// SignupParams carries the fields a new local account is created from.
type SignupParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// signupPayload is the outbox payload announcing the new account downstream.
type signupPayload struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup creates a local account: user row, generated key pair, credential
// row and the downstream sync outbox entry, all in one transaction. The new
// user owns itself and is enrolled into the default role.
func (s *Service) Signup(params SignupParams) (*model.User, error) {
	taken, err := s.users.EmailTaken(params.Email)
	if err != nil {
		return nil, apperr.Mask(err)
	}
	if taken {
		return nil, apperr.New(apperr.KindConflict, apperr.CodeEmailTaken, "email already registered")
	}

	// The default role is seeded at deploy time. Its absence is a broken
	// deployment, not a user error.
	role, err := s.roles.FetchRoleByName(DefaultRole)
	if err != nil {
		return nil, apperr.Mask(err)
	}
	if role == nil {
		return nil, apperr.New(apperr.KindInternal, apperr.CodeSeedRoleMissing, "default role is not configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	pair, err := keypair.Generate()
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()

	encryptedKey, err := s.cipher.Encrypt([]byte(userID), pair.PrivatePEM())
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           userID,
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Provider:     model.ProviderLocal,
		RoleID:       role.ID,
		Owners:       []string{userID},
	}

	credential := &model.Credential{
		UserID:     userID,
		PublicKey:  pair.PublicPEM(),
		PrivateKey: encryptedKey,
	}

	payload, err := json.Marshal(signupPayload{
		UserID:    userID,
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
	})
	if err != nil {
		return nil, err
	}
	entry := &model.OutboxEntry{
		ID:      uuid.NewString(),
		UserID:  userID,
		Kind:    model.OutboxKindSignup,
		Payload: payload,
		Status:  model.OutboxPending,
	}

	if err := s.users.CreateSignup(user, credential, entry); err != nil {
		return nil, apperr.Mask(err)
	}

	audit.Log(audit.SignupEvent{
		UserID:   userID,
		Email:    params.Email,
		Role:     role.Name,
		Provider: model.ProviderLocal,
	})

	return user, nil
}
