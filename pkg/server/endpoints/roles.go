package endpoints

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gatehouse-io/gatehouse/pkg/apperr"
	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/identity"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server"
)

// GrantResponse is the public view of a grant.
type GrantResponse struct {
	ID         string   `json:"id"`
	Resource   string   `json:"resource"`
	Actions    []string `json:"actions"`
	Attributes string   `json:"attributes"`
}

// RoleResponse is the public view of a role with its grants.
type RoleResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Grants      []GrantResponse `json:"grants"`
}

func roleResponse(role *model.Role) RoleResponse {
	response := RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Status:      role.Status,
		Grants:      make([]GrantResponse, 0, len(role.Grants)),
	}
	for _, grant := range role.Grants {
		response.Grants = append(response.Grants, GrantResponse{
			ID:         grant.ID,
			Resource:   grant.Resource,
			Actions:    grant.Actions,
			Attributes: grant.Attributes,
		})
	}
	return response
}

// roleOwnerResolver treats the caller as the owner for role mutations.
// Roles carry no owners list; own-scoped role actions are effectively
// "admins acting under their own identity".
func roleOwnerResolver(r *http.Request) ([]string, error) {
	if id, ok := identity.Get(r.Context()); ok {
		return []string{id.UserID}, nil
	}
	return nil, nil
}

// RegisterRolesEndpoints registers the role administration endpoints.
// Mutations invalidate the registry cache so the next permission check sees
// the committed change.
func RegisterRolesEndpoints(srv *server.Server) {
	rolesRouter := srv.Router.PathPrefix("/roles").Subrouter()
	rolesRouter.Use(srv.Authenticator.Middleware)
	rolesRouter.Use(srv.Checker.Permission(grants.ResourceRole, roleOwnerResolver))

	rolesRouter.HandleFunc("", handleListRoles(srv)).Methods("GET")
	rolesRouter.HandleFunc("", handleCreateRole(srv)).Methods("POST")
	rolesRouter.HandleFunc("/{id}", handleGetRole(srv)).Methods("GET")
	rolesRouter.HandleFunc("/{id}/status", handleUpdateRoleStatus(srv)).Methods("PATCH")
	rolesRouter.HandleFunc("/{id}/grants", handleAddGrant(srv)).Methods("POST")
}

func handleListRoles(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 100)
		offset := queryInt(r, "offset", 0)
		if max := srv.Config.APIListLimitMax; max > 0 && limit > max {
			limit = max
		}

		roles, err := srv.Roles.ListRoles(limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to list roles"})
			return
		}

		response := make([]RoleResponse, 0, len(roles))
		for i := range roles {
			response = append(response, roleResponse(&roles[i]))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleGetRole(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := mux.Vars(r)["id"]

		role, err := srv.Roles.FetchRoleByID(roleID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to fetch role"})
			return
		}
		if role == nil {
			respondWithAppError(w, apperr.New(apperr.KindNotFound, apperr.CodeRoleNotFound, "role not found"))
			return
		}

		respondWithJSON(w, http.StatusOK, roleResponse(role))
	}
}

func handleCreateRole(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Grants      []struct {
				Resource   string   `json:"resource"`
				Actions    []string `json:"actions"`
				Attributes string   `json:"attributes"`
			} `json:"grants"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Name == "" {
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "name is required"})
			return
		}

		exists, err := srv.Roles.RoleExists(body.Name)
		if err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}
		if exists {
			respondWithAppError(w, apperr.New(apperr.KindConflict, apperr.CodeRoleNameTaken, "role name already taken"))
			return
		}

		role := &model.Role{
			ID:          uuid.NewString(),
			Name:        body.Name,
			Description: body.Description,
			Status:      model.RoleStatusActive,
		}
		for _, g := range body.Grants {
			attributes := g.Attributes
			if attributes == "" {
				attributes = "*"
			}
			role.Grants = append(role.Grants, model.Grant{
				ID:         uuid.NewString(),
				RoleID:     role.ID,
				Resource:   g.Resource,
				Actions:    g.Actions,
				Attributes: attributes,
			})
		}

		if err := srv.Roles.CreateRole(role); err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}

		srv.Registry.Invalidate(role.Name)
		respondWithJSON(w, http.StatusCreated, roleResponse(role))
	}
}

func handleUpdateRoleStatus(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := mux.Vars(r)["id"]

		var body struct {
			Status string `json:"status"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		switch body.Status {
		case model.RoleStatusActive, model.RoleStatusBlocked, model.RoleStatusPending:
		default:
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "invalid status"})
			return
		}

		role, err := srv.Roles.FetchRoleByID(roleID)
		if err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}
		if role == nil {
			respondWithAppError(w, apperr.New(apperr.KindNotFound, apperr.CodeRoleNotFound, "role not found"))
			return
		}

		if err := srv.Roles.UpdateRoleStatus(roleID, body.Status); err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}

		srv.Registry.Invalidate(role.Name)
		respondWithJSON(w, http.StatusOK, map[string]string{"status": body.Status})
	}
}

func handleAddGrant(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID := mux.Vars(r)["id"]

		var body struct {
			Resource   string   `json:"resource"`
			Actions    []string `json:"actions"`
			Attributes string   `json:"attributes"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Resource == "" || len(body.Actions) == 0 {
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "resource and actions are required"})
			return
		}

		role, err := srv.Roles.FetchRoleByID(roleID)
		if err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}
		if role == nil {
			respondWithAppError(w, apperr.New(apperr.KindNotFound, apperr.CodeRoleNotFound, "role not found"))
			return
		}

		attributes := body.Attributes
		if attributes == "" {
			attributes = "*"
		}
		grant := &model.Grant{
			ID:         uuid.NewString(),
			RoleID:     roleID,
			Resource:   body.Resource,
			Actions:    body.Actions,
			Attributes: attributes,
		}

		if err := srv.Roles.AddGrant(grant); err != nil {
			respondWithAppError(w, apperr.Mask(err))
			return
		}

		srv.Registry.Invalidate(role.Name)
		respondWithJSON(w, http.StatusCreated, GrantResponse{
			ID:         grant.ID,
			Resource:   grant.Resource,
			Actions:    grant.Actions,
			Attributes: grant.Attributes,
		})
	}
}
