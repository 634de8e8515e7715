package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/server"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// userOwnerResolver resolves the owners list of the user a request targets.
func userOwnerResolver(users store.UsersStore) func(r *http.Request) ([]string, error) {
	return func(r *http.Request) ([]string, error) {
		userID, ok := mux.Vars(r)["id"]
		if !ok {
			return nil, nil
		}
		user, err := users.FetchUserByID(userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, nil
		}
		return user.Owners, nil
	}
}

// RegisterUsersEndpoints registers the user endpoints. Reads are Any-scoped;
// updates and deletes are own-scoped against the target user's owners list.
func RegisterUsersEndpoints(srv *server.Server) {
	usersRouter := srv.Router.PathPrefix("/users").Subrouter()
	usersRouter.Use(srv.Authenticator.Middleware)
	usersRouter.Use(srv.Checker.Permission(grants.ResourceUser, userOwnerResolver(srv.Users)))

	usersRouter.HandleFunc("/{id}", handleGetUser(srv)).Methods("GET")
	usersRouter.HandleFunc("/{id}/owners", handleSetUserOwners(srv)).Methods("PATCH")
	usersRouter.HandleFunc("/{id}", handleDeleteUser(srv)).Methods("DELETE")
}

func handleGetUser(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["id"]

		user, err := srv.Users.FetchUserByID(userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to fetch user"})
			return
		}
		if user == nil {
			respondWithError(w, http.StatusNotFound, map[string]interface{}{"message": "user not found"})
			return
		}

		respondWithJSON(w, http.StatusOK, userResponse(user))
	}
}

func handleSetUserOwners(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["id"]

		var body struct {
			Owners []string `json:"owners"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if len(body.Owners) == 0 {
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "owners must not be empty"})
			return
		}

		if err := srv.Users.SetOwners(userID, body.Owners); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to update owners"})
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"owners": body.Owners})
	}
}

func handleDeleteUser(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["id"]

		if err := srv.Users.DeleteUser(userID); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to delete user"})
			return
		}

		// Drop the cached signing key with the user.
		srv.Keystore.Forget(userID)

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
