package grants

import "fmt"

// Action is a permission action from the fixed vocabulary
// {read,create,update,delete} x {Own,Any}.
type Action string

const (
	ReadOwn   Action = "readOwn"
	ReadAny   Action = "readAny"
	CreateOwn Action = "createOwn"
	CreateAny Action = "createAny"
	UpdateOwn Action = "updateOwn"
	UpdateAny Action = "updateAny"
	DeleteOwn Action = "deleteOwn"
	DeleteAny Action = "deleteAny"
)

// OwnScoped reports whether the action is restricted to owned resources.
// Enumerated explicitly rather than derived from the string.
func (a Action) OwnScoped() bool {
	switch a {
	case ReadOwn, CreateOwn, UpdateOwn, DeleteOwn:
		return true
	}
	return false
}

// Resource type names with configured method tables.
const (
	ResourceUser      = "User"
	ResourceAccess    = "Access"
	ResourceResource  = "Resource"
	ResourceRole      = "Role"
	ResourceProfile   = "Profile"
	ResourceSubSystem = "SubSystem"
)

// methodTable maps (resource type, HTTP method) to the one required action.
// The scope differences between resource types are intentional per-resource
// policy: a User listing is readable by anyone holding readAny, but creating
// a User only ever creates your own; Resources are administrative objects
// and fully Any-scoped; Roles are created and listed administratively but
// updated and deleted by their owners.
var methodTable = map[string]map[string]Action{
	ResourceUser: {
		"GET":    ReadAny,
		"POST":   CreateOwn,
		"PATCH":  UpdateOwn,
		"DELETE": DeleteOwn,
	},
	ResourceAccess: {
		"GET":    ReadOwn,
		"POST":   CreateOwn,
		"PATCH":  UpdateOwn,
		"DELETE": DeleteOwn,
	},
	ResourceResource: {
		"GET":    ReadAny,
		"POST":   CreateAny,
		"PATCH":  UpdateAny,
		"DELETE": DeleteAny,
	},
	ResourceRole: {
		"GET":    ReadAny,
		"POST":   CreateAny,
		"PATCH":  UpdateOwn,
		"DELETE": DeleteOwn,
	},
	ResourceProfile: {
		"GET":    ReadOwn,
		"POST":   CreateOwn,
		"PATCH":  UpdateOwn,
		"DELETE": DeleteOwn,
	},
	ResourceSubSystem: {
		"GET":    ReadAny,
		"POST":   CreateOwn,
		"PATCH":  UpdateOwn,
		"DELETE": DeleteAny,
	},
}

// ActionFor returns the required action for an HTTP method on a resource
// type. An unknown resource type is a deployment bug, not a user error.
func ActionFor(resource, method string) (Action, error) {
	table, ok := methodTable[resource]
	if !ok {
		return "", fmt.Errorf("no permission table configured for resource %q", resource)
	}

	action, ok := table[method]
	if !ok {
		return "", fmt.Errorf("no permission action configured for %s on resource %q", method, resource)
	}

	return action, nil
}

// ConfiguredResources returns the resource types with a method table.
func ConfiguredResources() []string {
	names := make([]string, 0, len(methodTable))
	for name := range methodTable {
		names = append(names, name)
	}
	return names
}
