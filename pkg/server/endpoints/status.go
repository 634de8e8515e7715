package endpoints

import (
	"net/http"
	"os"

	"github.com/gatehouse-io/gatehouse/pkg/server"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// StatusResponse represents the response from the /status endpoint
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StatusErrorResponse represents a failed health check
type StatusErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// RegisterStatusEndpoint registers the health endpoint (no auth required)
func RegisterStatusEndpoint(srv *server.Server) {
	srv.Router.HandleFunc("/status", handleStatus(srv.Health)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := health.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusErrorResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}

		version := os.Getenv("GATEHOUSE_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: version})
	}
}
