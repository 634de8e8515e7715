package endpoints

import (
	"net/http"

	"github.com/gatehouse-io/gatehouse/pkg/access"
	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/identity"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server"
)

// UserResponse is the public view of a user.
type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

func userResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		EmailVerified: user.EmailVerified,
	}
}

// RegisterAuthEndpoints registers the account lifecycle endpoints. All of
// them are public except logout, which needs a live access token.
func RegisterAuthEndpoints(srv *server.Server) {
	r := srv.Router

	r.HandleFunc("/signup", handleSignup(srv)).Methods("POST")
	r.HandleFunc("/login", handleLogin(srv)).Methods("POST")
	r.HandleFunc("/token/rotate", handleRotate(srv)).Methods("POST")

	r.HandleFunc("/otp/send", handleSendVerificationOTP(srv)).Methods("POST")
	r.HandleFunc("/otp/verify", handleVerifyOTP(srv)).Methods("POST")

	r.HandleFunc("/activation/send", handleSendActivation(srv)).Methods("POST")
	r.HandleFunc("/activate", handleActivate(srv)).Methods("POST")

	r.HandleFunc("/password/forgot", handleForgotPassword(srv)).Methods("POST")
	r.HandleFunc("/password/otp", handleConfirmResetOTP(srv)).Methods("POST")
	r.HandleFunc("/password/reset", handleResetPassword(srv)).Methods("POST")

	logoutRouter := r.PathPrefix("/logout").Subrouter()
	logoutRouter.Use(srv.Authenticator.Middleware)
	logoutRouter.HandleFunc("", handleLogout(srv)).Methods("POST")
}

func handleSignup(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Email == "" || body.Password == "" {
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "email and password are required"})
			return
		}

		user, err := srv.Access.Signup(access.SignupParams{
			Email:     body.Email,
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
		})
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusCreated, userResponse(user))
	}
}

func handleLogin(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		pair, user, err := srv.Access.Login(body.Email, body.Password, r.RemoteAddr)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user":   userResponse(user),
			"tokens": pair,
		})
	}
}

func handleRotate(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		pair, err := srv.Access.RotateTokens(body.AccessToken, body.RefreshToken)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, pair)
	}
}

func handleLogout(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, map[string]interface{}{"message": "unauthorized"})
			return
		}

		if err := srv.Access.Logout(id.UserID); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	}
}

func handleSendVerificationOTP(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"user_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if err := srv.Access.SendVerificationOTP(body.UserID); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}

func handleVerifyOTP(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID string `json:"user_id"`
			Code   string `json:"code"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if err := srv.Access.VerifyOTP(body.UserID, body.Code); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "verified"})
	}
}

func handleSendActivation(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		user, err := srv.Users.FetchUserByEmail(body.Email, model.ProviderLocal)
		if err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}
		if user == nil {
			respondWithAppError(w, apperr.New(apperr.KindNotFound, apperr.CodeUserNotFound, "user not found"))
			return
		}

		if err := srv.Access.SendActivationLink(user.ID); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}

func handleActivate(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token string `json:"token"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if err := srv.Access.ActivateAccount(body.Token); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "activated"})
	}
}

func handleForgotPassword(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		if err := srv.Access.SendResetOTP(body.Email); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	}
}

func handleConfirmResetOTP(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
			Code  string `json:"code"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}

		resetToken, err := srv.Access.ConfirmResetOTP(body.Email, body.Code)
		if err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"reset_token": resetToken})
	}
}

func handleResetPassword(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token    string `json:"token"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Password == "" {
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "password is required"})
			return
		}

		if err := srv.Access.ResetPassword(body.Token, body.Password); err != nil {
			respondWithAppError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
	}
}
