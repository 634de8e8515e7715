package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/audit"
	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/identity"
)

// OwnerResolver returns the owner ids for the entity a request targets.
// Each protected resource type supplies its own implementation. List
// endpoints that target no specific instance return an empty slice, which
// denies own-scoped access by construction.
type OwnerResolver func(r *http.Request) ([]string, error)

// Checker builds permission middleware. It is stateless; all dependencies
// are injected so one instance per process serves every route.
type Checker struct {
	registry *grants.Registry
}

// NewChecker creates a permission Checker over a grant registry.
func NewChecker(registry *grants.Registry) *Checker {
	return &Checker{registry: registry}
}

// Permission gates requests on the caller's role grants for one resource
// type. The decision is strictly allow-or-deny with a unique code per deny
// branch; every ambiguous state fails closed.
func (c *Checker) Permission(resource string, resolveOwners OwnerResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action, err := grants.ActionFor(resource, r.Method)
			if err != nil {
				// Deployment bug: the route was registered for a resource
				// type with no permission table.
				deny(w, r, resource, apperr.Wrap(apperr.KindBadRequest, apperr.CodeResourceUnconfigured, "resource has no permission configuration", err))
				return
			}

			id, ok := identity.Get(r.Context())
			if !ok || id.UserID == "" || id.Role == "" {
				deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeRoleUnresolved, "unauthorized"))
				return
			}

			role, err := c.registry.Role(id.Role)
			if err != nil {
				if err == grants.ErrRoleNotFound {
					deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeRoleUnresolved, "unauthorized"))
					return
				}
				deny(w, r, resource, apperr.Mask(err))
				return
			}
			if role.Name == "" || len(role.Grants) == 0 {
				deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeGrantsMissing, "no grants configured"))
				return
			}

			decision, err := c.registry.Can(id.Role, action, resource)
			if err != nil {
				deny(w, r, resource, apperr.Mask(err))
				return
			}
			if !decision.Granted {
				deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeActionNotGranted, "access denied"))
				return
			}

			// Re-check the matched grant row. A registry/grant mismatch is
			// treated as access denied rather than surfaced.
			grant := decision.Grant
			if grant == nil || grant.Resource != resource || len(grant.Actions) == 0 || grant.Attributes == "" {
				deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeGrantInconsistent, "access denied"))
				return
			}

			if action.OwnScoped() {
				owners, err := resolveOwners(r)
				if err != nil {
					deny(w, r, resource, apperr.Mask(err))
					return
				}
				if len(owners) == 0 {
					deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeOwnersUnresolved, "ownership cannot be verified"))
					return
				}
				if !containsOwner(owners, id.UserID) {
					deny(w, r, resource, apperr.New(apperr.KindUnauthorized, apperr.CodeNotAnOwner, "access denied"))
					return
				}
			}

			audit.Log(audit.CheckEvent{
				UserID:   id.UserID,
				Role:     id.Role,
				Resource: resource,
				Action:   string(action),
				Allowed:  true,
			})

			next.ServeHTTP(w, r)
		})
	}
}

func containsOwner(owners []string, userID string) bool {
	for _, owner := range owners {
		if owner == userID {
			return true
		}
	}
	return false
}

func deny(w http.ResponseWriter, r *http.Request, resource string, err *apperr.Error) {
	userID, role := "", ""
	if id, ok := identity.Get(r.Context()); ok {
		userID, role = id.UserID, id.Role
	}
	audit.Log(audit.CheckEvent{
		UserID:   userID,
		Role:     role,
		Resource: resource,
		Allowed:  false,
		Code:     err.Code,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    err.Code,
			"message": err.Message,
		},
	})
}
