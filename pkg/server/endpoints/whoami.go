package endpoints

import (
	"net/http"

	"github.com/gatehouse-io/gatehouse/pkg/identity"
	"github.com/gatehouse-io/gatehouse/pkg/server"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	ClientIP string `json:"client_ip,omitempty"`
	TokenIAT int64  `json:"token_iat,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(srv *server.Server) {
	whoamiRouter := srv.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(srv.Authenticator.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, map[string]interface{}{"message": "unable to determine identity"})
			return
		}

		response := WhoamiResponse{
			UserID: id.UserID,
			Role:   id.Role,
		}
		if id.RemoteIP != nil {
			response.ClientIP = id.RemoteIP.String()
		}
		if !id.IssuedAt.IsZero() {
			response.TokenIAT = id.IssuedAt.Unix()
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}
