package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoamiEndpoint(t *testing.T) {
	fx := newTestFixture(t)
	RegisterWhoamiEndpoint(fx.srv)

	auth := fx.enrollUser(t, "user-alice", "User")

	t.Run("returns the token identity", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", auth)
		req.RemoteAddr = "192.0.2.7:51234"
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got WhoamiResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "user-alice", got.UserID)
		assert.Equal(t, "User", got.Role)
		assert.Equal(t, "192.0.2.7", got.ClientIP)
		assert.NotZero(t, got.TokenIAT)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
