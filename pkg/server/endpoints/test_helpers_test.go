package endpoints

import (
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/pkg/access"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/config"
	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	"github.com/gatehouse-io/gatehouse/pkg/keystore"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server"
	"github.com/gatehouse-io/gatehouse/pkg/server/middleware"
	"github.com/gatehouse-io/gatehouse/pkg/token"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	m.Run()
}

// nullMailer swallows mail; endpoint tests never assert on delivery.
type nullMailer struct{}

func (nullMailer) SendOTP(email, code string) error { return nil }
func (nullMailer) SendActivation(email, token string) error { return nil }

// testFixture assembles a Server from mock stores with a real token,
// keystore and permission stack in front of them.
type testFixture struct {
	srv       *server.Server
	users     *MockUsersStore
	roles     *MockRolesStore
	creds     *MockCredentialsStore
	profiles  *MockProfilesStore
	resources *MockResourcesStore
	health    *MockHealthStore
	tokens    *token.Service
	cipher    keypair.SymmetricCipher
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	key, err := keypair.RandomBytes(32)
	require.NoError(t, err)
	cipher, err := keypair.NewSymmetric(key)
	require.NoError(t, err)

	users := NewMockUsersStore()
	roles := NewMockRolesStore()
	creds := NewMockCredentialsStore()
	profiles := NewMockProfilesStore()
	resources := NewMockResourcesStore()
	health := NewMockHealthStore()

	keys := keystore.New(creds, cipher)
	tokens := token.NewService(token.Config{})

	registry, err := grants.NewRegistry(roles, 8)
	require.NoError(t, err)

	accessService := access.NewService(users, roles, creds, keys, cipher, tokens, nullMailer{}, access.Config{})

	srv := &server.Server{
		Router:        mux.NewRouter().UseEncodedPath(),
		Config:        &config.GatehouseConfig{APIListLimitMax: 1000},
		Users:         users,
		Roles:         roles,
		Credentials:   creds,
		Profiles:      profiles,
		Resources:     resources,
		Health:        health,
		Keystore:      keys,
		Tokens:        tokens,
		Registry:      registry,
		Access:        accessService,
		Checker:       middleware.NewChecker(registry),
		Authenticator: middleware.NewTokenAuthenticator(keys, tokens),
	}

	return &testFixture{
		srv:       srv,
		users:     users,
		roles:     roles,
		creds:     creds,
		profiles:  profiles,
		resources: resources,
		health:    health,
		tokens:    tokens,
		cipher:    cipher,
	}
}

// enrollUser registers a credential row for the user and returns a valid
// bearer header for it.
func (fx *testFixture) enrollUser(t *testing.T, userID, role string) string {
	t.Helper()

	pair, err := keypair.Generate()
	require.NoError(t, err)
	encrypted, err := fx.cipher.Encrypt([]byte(userID), pair.PrivatePEM())
	require.NoError(t, err)

	fx.creds.On("FetchCredential", userID).Return(&model.Credential{
		UserID:     userID,
		PublicKey:  pair.PublicPEM(),
		PrivateKey: encrypted,
	}, nil)

	raw, err := fx.tokens.IssueAccess(userID, role, pair.Private())
	require.NoError(t, err)
	return "Bearer " + raw
}

// seedRole makes the registry resolve a role with the given grants.
func (fx *testFixture) seedRole(name string, grantList ...model.Grant) {
	fx.roles.On("FetchRoleByName", name).Return(&model.Role{
		ID:     "role-" + name,
		Name:   name,
		Status: model.RoleStatusActive,
		Grants: grantList,
	}, nil)
}

func grantOn(resource string, actions ...string) model.Grant {
	return model.Grant{
		ID:         "grant-" + resource,
		Resource:   resource,
		Actions:    actions,
		Attributes: "*",
	}
}
