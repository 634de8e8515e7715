package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithAppError renders a typed service error with its stable code.
// Untyped errors fall through as 500 with no detail.
func respondWithAppError(w http.ResponseWriter, err error) {
	if e, ok := apperr.As(err); ok {
		respondWithError(w, apperr.HTTPStatus(e), map[string]interface{}{
			"code":    e.Code,
			"message": e.Message,
		})
		return
	}
	respondWithError(w, http.StatusInternalServerError, map[string]interface{}{
		"message": "internal error",
	})
}

// decodeJSON decodes a request body, rejecting malformed payloads uniformly.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, map[string]interface{}{
			"message": "invalid request body",
		})
		return false
	}
	return true
}
