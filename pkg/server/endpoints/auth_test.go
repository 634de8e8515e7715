package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
)

func signupBody(email string) string {
	return `{"email":"` + email + `","password":"hunter2!","first_name":"Alice"}`
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestSignupEndpoint(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		fx := newTestFixture(t)
		RegisterAuthEndpoints(fx.srv)
		fx.seedRole("User")

		fx.users.On("EmailTaken", "new@example.com").Return(false, nil)
		fx.users.On("CreateSignup", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest("POST", "/signup", strings.NewReader(signupBody("new@example.com")))
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "new@example.com", got.Email)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.EmailVerified)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		fx := newTestFixture(t)
		RegisterAuthEndpoints(fx.srv)

		fx.users.On("EmailTaken", "taken@example.com").Return(true, nil)

		req := httptest.NewRequest("POST", "/signup", strings.NewReader(signupBody("taken@example.com")))
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apperr.CodeEmailTaken, errorCode(t, rec))
		fx.users.AssertNotCalled(t, "CreateSignup", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		fx := newTestFixture(t)
		RegisterAuthEndpoints(fx.srv)

		req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"email":"a@example.com"}`))
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		fx := newTestFixture(t)
		RegisterAuthEndpoints(fx.srv)

		req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogoutEndpointRequiresToken(t *testing.T) {
	fx := newTestFixture(t)
	RegisterAuthEndpoints(fx.srv)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()

	fx.srv.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	fx := newTestFixture(t)
	RegisterAuthEndpoints(fx.srv)

	auth := fx.enrollUser(t, "user-alice", "User")
	fx.creds.On("ClearTokens", "user-alice").Return(nil).Once()

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()

	fx.srv.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fx.creds.AssertExpectations(t)
}
