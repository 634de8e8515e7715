package store

import "github.com/gatehouse-io/gatehouse/pkg/model"

// ProfilesStore abstracts profile storage.
type ProfilesStore interface {
	// FetchProfile retrieves a profile by id, or nil if absent.
	FetchProfile(id string) (*model.Profile, error)

	// FetchProfileOwners returns the owner ids for a profile.
	FetchProfileOwners(id string) ([]string, error)

	CreateProfile(profile *model.Profile) error
	UpdateProfile(profile *model.Profile) error
	DeleteProfile(id string) error
	ListProfiles(limit, offset int) ([]model.Profile, error)
}

// ResourcesStore abstracts generic resource storage.
type ResourcesStore interface {
	// FetchResource retrieves a resource by id, or nil if absent.
	FetchResource(id string) (*model.Resource, error)

	// FetchResourceOwners returns the owner ids for a resource.
	FetchResourceOwners(id string) ([]string, error)

	CreateResource(resource *model.Resource) error
	UpdateResource(resource *model.Resource) error
	DeleteResource(id string) error
	ListResources(kind string, limit, offset int) ([]model.Resource, error)
}
