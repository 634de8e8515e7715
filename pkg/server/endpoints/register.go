package endpoints

import (
	"github.com/gatehouse-io/gatehouse/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterStatusEndpoint(srv)
	RegisterUsersEndpoints(srv)
	RegisterProfilesEndpoints(srv)
	RegisterResourcesEndpoints(srv)
	RegisterRolesEndpoints(srv)
}
