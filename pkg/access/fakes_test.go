package access

import (
	"sync"

	"github.com/gatehouse-io/gatehouse/pkg/model"
)

// fakeStore is an in-memory implementation of the user, role and credential
// stores, enough to drive the full account lifecycle in tests.
type fakeStore struct {
	mu sync.Mutex

	users  map[string]*model.User
	roles  map[string]*model.Role
	creds  map[string]*model.Credential
	used   map[string]map[string]bool
	outbox []*model.OutboxEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*model.User{},
		roles: map[string]*model.Role{},
		creds: map[string]*model.Credential{},
		used:  map[string]map[string]bool{},
	}
}

func (f *fakeStore) FetchUserByEmail(email, provider string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.Provider == provider {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FetchUserByID(id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeStore) EmailTaken(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateSignup(user *model.User, credential *model.Credential, entry *model.OutboxEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	f.creds[credential.UserID] = credential
	f.outbox = append(f.outbox, entry)
	return nil
}

func (f *fakeStore) SetOwners(userID string, owners []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.Owners = owners
	}
	return nil
}

func (f *fakeStore) SetEmailVerified(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.EmailVerified = true
	}
	return nil
}

func (f *fakeStore) UpdatePassword(userID string, hash []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (f *fakeStore) DeleteUser(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, userID)
	delete(f.creds, userID)
	return nil
}

func (f *fakeStore) FetchRoleByName(name string) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FetchRoleByID(id string) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roles[id], nil
}

func (f *fakeStore) RoleExists(name string) (bool, error) {
	role, _ := f.FetchRoleByName(name)
	return role != nil, nil
}

func (f *fakeStore) CreateRole(role *model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[role.ID] = role
	return nil
}

func (f *fakeStore) AddGrant(grant *model.Grant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.roles[grant.RoleID]; ok {
		r.Grants = append(r.Grants, *grant)
	}
	return nil
}

func (f *fakeStore) UpdateRoleStatus(roleID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.roles[roleID]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeStore) ListRoles(limit, offset int) ([]model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var roles []model.Role
	for _, r := range f.roles {
		roles = append(roles, *r)
	}
	return roles, nil
}

func (f *fakeStore) FetchCredential(userID string) (*model.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds[userID], nil
}

func (f *fakeStore) SetRefreshToken(userID, tok string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.creds[userID]; ok {
		c.RefreshToken = tok
	}
	return nil
}

func (f *fakeStore) SwapRefreshToken(userID, oldTok, newTok string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.creds[userID]
	if !ok || c.RefreshToken != oldTok {
		return false, nil
	}
	c.RefreshToken = newTok
	return true, nil
}

func (f *fakeStore) ArchiveUsedToken(used *model.UsedRefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.used[used.UserID] == nil {
		f.used[used.UserID] = map[string]bool{}
	}
	f.used[used.UserID][used.Token] = true
	return nil
}

func (f *fakeStore) IsTokenUsed(userID, tok string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.used[userID][tok], nil
}

func (f *fakeStore) ClearTokens(userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.creds[userID]; ok {
		c.RefreshToken = ""
	}
	delete(f.used, userID)
	return nil
}

func (f *fakeStore) SaveVerifyOTP(userID string, state model.OTPState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.creds[userID]
	if !ok {
		return nil
	}
	c.VerifyOTPCode = state.Code
	c.VerifyOTPExpiresAt = state.ExpiresAt
	c.VerifyOTPSendCount = state.SendCount
	c.VerifyOTPWindowStart = state.WindowStart
	c.VerifyOTPLastSentAt = state.LastSentAt
	return nil
}

func (f *fakeStore) SaveResetOTP(userID string, state model.OTPState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.creds[userID]
	if !ok {
		return nil
	}
	c.ResetOTPCode = state.Code
	c.ResetOTPExpiresAt = state.ExpiresAt
	c.ResetOTPSendCount = state.SendCount
	c.ResetOTPWindowStart = state.WindowStart
	c.ResetOTPLastSentAt = state.LastSentAt
	return nil
}

func (f *fakeStore) SetResetToken(userID, tok string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.creds[userID]; ok {
		c.ResetToken = tok
	}
	return nil
}

// fakeMailer records every delivery instead of sending it.
type fakeMailer struct {
	mu          sync.Mutex
	otps        []string
	activations []string
}

func (m *fakeMailer) SendOTP(email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otps = append(m.otps, code)
	return nil
}

func (m *fakeMailer) SendActivation(email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activations = append(m.activations, token)
	return nil
}

func (m *fakeMailer) lastOTP() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.otps) == 0 {
		return ""
	}
	return m.otps[len(m.otps)-1]
}
