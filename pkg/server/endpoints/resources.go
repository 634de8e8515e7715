package endpoints

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gatehouse-io/gatehouse/pkg/grants"
	"github.com/gatehouse-io/gatehouse/pkg/identity"
	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server"
)

// ResourceResponse is the public view of a resource.
type ResourceResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Owners []string `json:"owners"`
}

func resourceResponse(resource *model.Resource) ResourceResponse {
	return ResourceResponse{
		ID:     resource.ID,
		Name:   resource.Name,
		Kind:   resource.Kind,
		Owners: resource.Owners,
	}
}

// RegisterResourcesEndpoints registers the resource CRUD endpoints. Every
// action on this type is Any-scoped, so the owner resolver is never
// consulted; it resolves the stored owners anyway for uniformity.
func RegisterResourcesEndpoints(srv *server.Server) {
	resolver := func(r *http.Request) ([]string, error) {
		resourceID, ok := mux.Vars(r)["id"]
		if !ok {
			return nil, nil
		}
		return srv.Resources.FetchResourceOwners(resourceID)
	}

	resourcesRouter := srv.Router.PathPrefix("/resources").Subrouter()
	resourcesRouter.Use(srv.Authenticator.Middleware)
	resourcesRouter.Use(srv.Checker.Permission(grants.ResourceResource, resolver))

	resourcesRouter.HandleFunc("", handleListResources(srv)).Methods("GET")
	resourcesRouter.HandleFunc("", handleCreateResource(srv)).Methods("POST")
	resourcesRouter.HandleFunc("/{id}", handleGetResource(srv)).Methods("GET")
	resourcesRouter.HandleFunc("/{id}", handleDeleteResource(srv)).Methods("DELETE")
}

func handleListResources(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := r.URL.Query().Get("kind")
		limit := queryInt(r, "limit", 100)
		offset := queryInt(r, "offset", 0)
		if max := srv.Config.APIListLimitMax; max > 0 && limit > max {
			limit = max
		}

		resources, err := srv.Resources.ListResources(kind, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to list resources"})
			return
		}

		response := make([]ResourceResponse, 0, len(resources))
		for i := range resources {
			response = append(response, resourceResponse(&resources[i]))
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleCreateResource(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name   string   `json:"name"`
			Kind   string   `json:"kind"`
			Owners []string `json:"owners"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if body.Name == "" || body.Kind == "" {
			respondWithError(w, http.StatusBadRequest, map[string]interface{}{"message": "name and kind are required"})
			return
		}

		owners := body.Owners
		if len(owners) == 0 {
			if id, ok := identity.Get(r.Context()); ok {
				owners = []string{id.UserID}
			}
		}

		resource := &model.Resource{
			ID:     uuid.NewString(),
			Name:   body.Name,
			Kind:   body.Kind,
			Owners: owners,
		}

		if err := srv.Resources.CreateResource(resource); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to create resource"})
			return
		}

		respondWithJSON(w, http.StatusCreated, resourceResponse(resource))
	}
}

func handleGetResource(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := mux.Vars(r)["id"]

		resource, err := srv.Resources.FetchResource(resourceID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to fetch resource"})
			return
		}
		if resource == nil {
			respondWithError(w, http.StatusNotFound, map[string]interface{}{"message": "resource not found"})
			return
		}

		respondWithJSON(w, http.StatusOK, resourceResponse(resource))
	}
}

func handleDeleteResource(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resourceID := mux.Vars(r)["id"]

		if err := srv.Resources.DeleteResource(resourceID); err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]interface{}{"message": "failed to delete resource"})
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	if val := r.URL.Query().Get(name); val != "" {
		if i, err := strconv.Atoi(val); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}
