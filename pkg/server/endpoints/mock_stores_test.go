package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/gatehouse-io/gatehouse/pkg/model"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) FetchUserByEmail(email, provider string) (*model.User, error) {
	args := m.Called(email, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) EmailTaken(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsersStore) CreateSignup(user *model.User, credential *model.Credential, entry *model.OutboxEntry) error {
	args := m.Called(user, credential, entry)
	return args.Error(0)
}

func (m *MockUsersStore) SetOwners(userID string, owners []string) error {
	args := m.Called(userID, owners)
	return args.Error(0)
}

func (m *MockUsersStore) SetEmailVerified(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUsersStore) UpdatePassword(userID string, hash []byte) error {
	args := m.Called(userID, hash)
	return args.Error(0)
}

func (m *MockUsersStore) DeleteUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockRolesStore implements store.RolesStore for testing using testify/mock
type MockRolesStore struct {
	mock.Mock
}

func NewMockRolesStore() *MockRolesStore {
	return &MockRolesStore{}
}

func (m *MockRolesStore) FetchRoleByName(name string) (*model.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRolesStore) FetchRoleByID(id string) (*model.Role, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRolesStore) RoleExists(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRolesStore) CreateRole(role *model.Role) error {
	args := m.Called(role)
	return args.Error(0)
}

func (m *MockRolesStore) AddGrant(grant *model.Grant) error {
	args := m.Called(grant)
	return args.Error(0)
}

func (m *MockRolesStore) UpdateRoleStatus(roleID, status string) error {
	args := m.Called(roleID, status)
	return args.Error(0)
}

func (m *MockRolesStore) ListRoles(limit, offset int) ([]model.Role, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]model.Role), args.Error(1)
}

// MockCredentialsStore implements store.CredentialsStore for testing using testify/mock
type MockCredentialsStore struct {
	mock.Mock
}

func NewMockCredentialsStore() *MockCredentialsStore {
	return &MockCredentialsStore{}
}

func (m *MockCredentialsStore) FetchCredential(userID string) (*model.Credential, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) SetRefreshToken(userID, tok string) error {
	args := m.Called(userID, tok)
	return args.Error(0)
}

func (m *MockCredentialsStore) SwapRefreshToken(userID, oldTok, newTok string) (bool, error) {
	args := m.Called(userID, oldTok, newTok)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialsStore) ArchiveUsedToken(used *model.UsedRefreshToken) error {
	args := m.Called(used)
	return args.Error(0)
}

func (m *MockCredentialsStore) IsTokenUsed(userID, tok string) (bool, error) {
	args := m.Called(userID, tok)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialsStore) ClearTokens(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockCredentialsStore) SaveVerifyOTP(userID string, state model.OTPState) error {
	args := m.Called(userID, state)
	return args.Error(0)
}

func (m *MockCredentialsStore) SaveResetOTP(userID string, state model.OTPState) error {
	args := m.Called(userID, state)
	return args.Error(0)
}

func (m *MockCredentialsStore) SetResetToken(userID, tok string) error {
	args := m.Called(userID, tok)
	return args.Error(0)
}

// MockProfilesStore implements store.ProfilesStore for testing using testify/mock
type MockProfilesStore struct {
	mock.Mock
}

func NewMockProfilesStore() *MockProfilesStore {
	return &MockProfilesStore{}
}

func (m *MockProfilesStore) FetchProfile(id string) (*model.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfilesStore) FetchProfileOwners(id string) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProfilesStore) CreateProfile(profile *model.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfilesStore) UpdateProfile(profile *model.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfilesStore) DeleteProfile(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProfilesStore) ListProfiles(limit, offset int) ([]model.Profile, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]model.Profile), args.Error(1)
}

// MockResourcesStore implements store.ResourcesStore for testing using testify/mock
type MockResourcesStore struct {
	mock.Mock
}

func NewMockResourcesStore() *MockResourcesStore {
	return &MockResourcesStore{}
}

func (m *MockResourcesStore) FetchResource(id string) (*model.Resource, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourcesStore) FetchResourceOwners(id string) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockResourcesStore) CreateResource(resource *model.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

func (m *MockResourcesStore) UpdateResource(resource *model.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

func (m *MockResourcesStore) DeleteResource(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockResourcesStore) ListResources(kind string, limit, offset int) ([]model.Resource, error) {
	args := m.Called(kind, limit, offset)
	return args.Get(0).([]model.Resource), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
