package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/access"
	"github.com/gatehouse-io/gatehouse/pkg/config"
	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/keypair"
	"github.com/gatehouse-io/gatehouse/pkg/keystore"
	"github.com/gatehouse-io/gatehouse/pkg/server/middleware"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
	gormstore "github.com/gatehouse-io/gatehouse/pkg/server/store/gorm"
	"github.com/gatehouse-io/gatehouse/pkg/token"
)

// Server wires the stores, services and middleware behind one mux router.
// Fields are exported so endpoint tests can assemble a Server from mocks.
type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.GatehouseConfig
	Log    *logrus.Logger

	Users       store.UsersStore
	Roles       store.RolesStore
	Credentials store.CredentialsStore
	Profiles    store.ProfilesStore
	Resources   store.ResourcesStore
	Outbox      store.OutboxStore
	Health      store.HealthStore

	Keystore      *keystore.KeyStore
	Tokens        *token.Service
	Registry      *grants.Registry
	Access        *access.Service
	Checker       *middleware.Checker
	Authenticator *middleware.TokenAuthenticator

	srv *http.Server
}

// NewServer assembles a fully wired server over a database connection and
// the service data-key cipher.
func NewServer(
	db *gorm.DB,
	cipher keypair.SymmetricCipher,
	cfg *config.GatehouseConfig,
	log *logrus.Logger,
	mailer access.Mailer,
) (*Server, error) {
	users := gormstore.NewUsersStore(db)
	roles := gormstore.NewRolesStore(db)
	credentials := gormstore.NewCredentialsStore(db)

	keys := keystore.New(credentials, cipher)
	tokens := token.NewService(token.Config{
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
		ActivationTTL: cfg.ActivationTTL(),
		ResetTTL:      cfg.ResetTTL(),
	})

	registry, err := grants.NewRegistry(roles, cfg.RoleCacheSize)
	if err != nil {
		return nil, err
	}

	accessService := access.NewService(users, roles, credentials, keys, cipher, tokens, mailer, access.Config{
		OTPCodeTTL:     cfg.OTPTTL(),
		OTPMinInterval: cfg.OTPInterval(),
		OTPHourlyLimit: cfg.OTPHourlyLimit,
	})

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.BindAddress,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:        router,
		DB:            db,
		Config:        cfg,
		Log:           log,
		Users:         users,
		Roles:         roles,
		Credentials:   credentials,
		Profiles:      gormstore.NewProfilesStore(db),
		Resources:     gormstore.NewResourcesStore(db),
		Outbox:        gormstore.NewOutboxStore(db),
		Health:        gormstore.NewHealthStore(db),
		Keystore:      keys,
		Tokens:        tokens,
		Registry:      registry,
		Access:        accessService,
		Checker:       middleware.NewChecker(registry),
		Authenticator: middleware.NewTokenAuthenticator(keys, tokens),
		srv:           srv,
	}, nil
}

// Start serves HTTP until the listener fails or the server is shut down.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
