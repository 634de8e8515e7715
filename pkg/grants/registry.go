package grants

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gatehouse-io/gatehouse/pkg/model"
)

// ErrRoleNotFound indicates the role name has no stored role.
var ErrRoleNotFound = errors.New("role not found")

// Store abstracts role and grant retrieval for the registry.
type Store interface {
	// FetchRoleByName retrieves a role with its grants, or nil if absent.
	FetchRoleByName(name string) (*model.Role, error)
}

// Decision is the result of a permission check.
type Decision struct {
	Granted bool
	// Grant is the matched grant row, populated only when Granted.
	Grant *model.Grant
}

// Registry answers whether a role holds a permission action on a resource
// type. Roles are served from a write-through cache keyed by role name;
// mutations to roles or grants must call Invalidate so the next check sees
// the committed change.
type Registry struct {
	store Store
	cache *lru.Cache[string, *model.Role]
}

// NewRegistry creates a registry with a role cache of the given size.
func NewRegistry(store Store, cacheSize int) (*Registry, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, *model.Role](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{store: store, cache: cache}, nil
}

// Role returns a role by name, preferring the cache.
func (r *Registry) Role(name string) (*model.Role, error) {
	if name == "" {
		return nil, ErrRoleNotFound
	}

	if role, ok := r.cache.Get(name); ok {
		return role, nil
	}

	role, err := r.store.FetchRoleByName(name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	r.cache.Add(name, role)
	return role, nil
}

// Invalidate drops a role from the cache. Called after role or grant
// mutation.
func (r *Registry) Invalidate(name string) {
	r.cache.Remove(name)
}

// Can reports whether the named role holds the action on the resource type.
// Blocked and pending roles are never granted anything.
func (r *Registry) Can(roleName string, action Action, resource string) (Decision, error) {
	role, err := r.Role(roleName)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return Decision{}, nil
		}
		return Decision{}, err
	}

	if role.Status != model.RoleStatusActive {
		return Decision{}, nil
	}

	for i := range role.Grants {
		grant := &role.Grants[i]
		if grant.Resource != resource {
			continue
		}
		if grant.HasAction(string(action)) {
			return Decision{Granted: true, Grant: grant}, nil
		}
	}

	return Decision{}, nil
}
