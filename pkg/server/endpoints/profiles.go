package endpoints

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/identity"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Bio         string   `json:"bio,omitempty"`
	Owners      []string `json:"owners"`
}

func profileResponse(profile *model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Owners:      profile.Owners,
	}
}

// profileOwnerResolver resolves the owners of the profile a request targets.
// Requests without a profile id (creates) resolve to the caller, who owns
// what they are about to create. List requests resolve to nothing and are
// denied by the own-scope check by construction.
func profileOwnerResolver(profiles store.ProfilesStore) func(r *http.Request) ([]string, error) {
	return func(r *http.Request) ([]string, error) {
		profileID, ok := mux.Vars(r)["id"]
		if !ok {
			if r.Method == "POST" {
				if id, found := identity.Get(r.Context()); found {
					return []string{id.UserID}, nil
				}
			}
			return nil, nil
		}
		return profiles.FetchProfileOwners(profileID)
	}
}

// RegisterProfilesEndpoints registers the own-scoped profile CRUD endpoints
func RegisterProfilesEndpoints(srv *server.Server) {
	profilesRouter := srv.Router.PathPrefix("/profiles").Subrouter()
	profilesRouter.Use(srv.Authenticator.Middleware)
	profilesRouter.Use(srv.Checker.Permission(grants.ResourceProfile, profileOwnerResolver(srv.Profiles)))

	profilesRouter.HandleFunc("", handleCreateProfile(srv)).Methods("POST")
	profilesRouter.HandleFunc("/{id}", handleGetProfile(srv)).Methods("GET")
	profilesRouter.HandleFunc("/{id}", handleUpdateProfile(srv)).Methods("PATCH")
	profilesRouter.HandleFunc("/{id}", handleDeleteProfile(srv)).Methods("DELETE")
}

func handleCreateProfile(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DisplayName string `json:"display_name"`
			Bio         string `json:"bio"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		id, _ := identity.Get(r.Context())
		profile := &model.Profile{
			ID:          uuid.NewString(),
			DisplayName: body.DisplayName,
			Bio:         body.Bio,
			Owners:      []string{id.UserID},
		}

		if err := srv.Profiles.CreateProfile(profile); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to create profile"})
			return
		}

		respondWithJSON(w, http.StatusCreated, profileResponse(profile))
	}
}

func handleGetProfile(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := mux.Vars(r)["id"]

		profile, err := srv.Profiles.FetchProfile(profileID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to fetch profile"})
			return
		}
		if profile == nil {
			respondWithError(w, http.StatusNotFound, map[string]interface{}{"message": "profile not found"})
			return
		}

		respondWithJSON(w, http.StatusOK, profileResponse(profile))
	}
}

func handleUpdateProfile(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := mux.Vars(r)["id"]

		var body struct {
			DisplayName *string `json:"display_name"`
			Bio         *string `json:"bio"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		profile, err := srv.Profiles.FetchProfile(profileID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to fetch profile"})
			return
		}
		if profile == nil {
			respondWithError(w, http.StatusNotFound, map[string]interface{}{"message": "profile not found"})
			return
		}

		if body.DisplayName != nil {
			profile.DisplayName = *body.DisplayName
		}
		if body.Bio != nil {
			profile.Bio = *body.Bio
		}

		if err := srv.Profiles.UpdateProfile(profile); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to update profile"})
			return
		}

		respondWithJSON(w, http.StatusOK, profileResponse(profile))
	}
}

func handleDeleteProfile(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID := mux.Vars(r)["id"]

		if err := srv.Profiles.DeleteProfile(profileID); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to delete profile"})
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
