package store

import "github.com/gatehouse-io/gatehouse/pkg/model"

// RolesStore abstracts role and grant storage operations.
type RolesStore interface {
	// FetchRoleByName retrieves a role with its grants, or nil if absent.
	FetchRoleByName(name string) (*model.Role, error)

	// FetchRoleByID retrieves a role with its grants, or nil if absent.
	FetchRoleByID(id string) (*model.Role, error)

	// RoleExists checks whether a role name is taken.
	RoleExists(name string) (bool, error)

	// CreateRole writes a role together with its initial grants.
	CreateRole(role *model.Role) error

	// AddGrant appends a grant to an existing role.
	AddGrant(grant *model.Grant) error

	// UpdateRoleStatus changes a role's status.
	UpdateRoleStatus(roleID, status string) error

	// ListRoles returns roles with their grants, ordered by name.
	ListRoles(limit, offset int) ([]model.Role, error)
}
