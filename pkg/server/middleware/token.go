package middleware

import (
	"net"
	"net/http"
	"regexp"

	"github.com/gatehouse-io/gatehouse/pkg/identity"
	"github.com/gatehouse-io/gatehouse/pkg/keystore"
	"github.com/gatehouse-io/gatehouse/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^Bearer (.+)$`)

// TokenAuthenticator is middleware that validates access tokens and
// populates the request identity. Tokens are verified against the subject
// user's own public key.
type TokenAuthenticator struct {
	Keys   *keystore.KeyStore
	Tokens *token.Service
}

// NewTokenAuthenticator creates a new access-token authenticator middleware
func NewTokenAuthenticator(keys *keystore.KeyStore, tokens *token.Service) *TokenAuthenticator {
	return &TokenAuthenticator{Keys: keys, Tokens: tokens}
}

// Middleware returns an HTTP middleware that validates access tokens
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}
		raw := tokenMatches[1]

		// The subject locates the verification key; nothing else from the
		// token is trusted until Verify passes.
		sub, err := token.UnverifiedSubject(raw)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization token"))
			return
		}

		pub, err := a.Keys.PublicKeyFor(sub)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unknown token subject"))
			return
		}

		claims, err := a.Tokens.Verify(raw, pub)
		if err == token.ErrExpired {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Token expired"))
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}

		id := &identity.Identity{
			UserID: claims.Subject,
			Role:   claims.Role,
		}
		if claims.IssuedAt != nil {
			id.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			id.ExpiresAt = claims.ExpiresAt.Time
		}
		if host, _, splitErr := net.SplitHostPort(r.RemoteAddr); splitErr == nil {
			id.WithRemoteIP(net.ParseIP(host))
		}

		r = r.WithContext(identity.Set(r.Context(), id))
		next.ServeHTTP(w, r)
	})
}
