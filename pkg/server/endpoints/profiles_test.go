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
	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/model"
)

func TestProfilesOwnScope(t *testing.T) {
	fx := newTestFixture(t)
	RegisterProfilesEndpoints(fx.srv)

	fx.seedRole("User", grantOn(grants.ResourceProfile,
		string(grants.ReadOwn), string(grants.CreateOwn), string(grants.UpdateOwn), string(grants.DeleteOwn)))

	aliceAuth := fx.enrollUser(t, "user-alice", "User")

	fx.profiles.On("FetchProfileOwners", "profile-alice").Return([]string{"user-alice"}, nil)
	fx.profiles.On("FetchProfileOwners", "profile-bob").Return([]string{"user-bob"}, nil)
	fx.profiles.On("FetchProfile", "profile-alice").Return(&model.Profile{
		ID:          "profile-alice",
		DisplayName: "Alice",
		Owners:      []string{"user-alice"},
	}, nil)

	t.Run("owner reads own profile", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/profiles/profile-alice", nil)
		req.Header.Set("Authorization", aliceAuth)
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got ProfileResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Alice", got.DisplayName)
	})

	t.Run("owner cannot read another user's profile", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/profiles/profile-bob", nil)
		req.Header.Set("Authorization", aliceAuth)
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body struct {
			Error struct {
				Code int `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, apperr.CodeNotAnOwner, body.Error.Code)
	})

	t.Run("create assigns caller as owner", func(t *testing.T) {
		fx.profiles.On("CreateProfile", mock.MatchedBy(func(p *model.Profile) bool {
			return len(p.Owners) == 1 && p.Owners[0] == "user-alice" && p.DisplayName == "Alice A"
		})).Return(nil).Once()

		req := httptest.NewRequest("POST", "/profiles", strings.NewReader(`{"display_name":"Alice A"}`))
		req.Header.Set("Authorization", aliceAuth)
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		fx.profiles.AssertExpectations(t)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/profiles/profile-alice", nil)
		rec := httptest.NewRecorder()

		fx.srv.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
