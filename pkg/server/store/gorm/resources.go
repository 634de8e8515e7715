package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Ensure ResourcesStore implements store.ResourcesStore
var _ store.ResourcesStore = (*ResourcesStore)(nil)

// ResourcesStore implements store.ResourcesStore using GORM
type ResourcesStore struct {
	db *gorm.DB
}

// NewResourcesStore creates a new ResourcesStore
func NewResourcesStore(db *gorm.DB) *ResourcesStore {
	return &ResourcesStore{db: db}
}

// FetchResource retrieves a resource by id
func (s *ResourcesStore) FetchResource(id string) (*model.Resource, error) {
	var resource model.Resource
	tx := s.db.Where("id = ?", id).First(&resource)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &resource, nil
}

// FetchResourceOwners returns the owner ids for a resource
func (s *ResourcesStore) FetchResourceOwners(id string) ([]string, error) {
	resource, err := s.FetchResource(id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, nil
	}
	return resource.Owners, nil
}

// CreateResource writes a new resource
func (s *ResourcesStore) CreateResource(resource *model.Resource) error {
	return s.db.Create(resource).Error
}

// UpdateResource updates mutable fields on a resource
func (s *ResourcesStore) UpdateResource(resource *model.Resource) error {
	return s.db.Model(&model.Resource{}).
		Where("id = ?", resource.ID).
		Updates(map[string]interface{}{
			"name": resource.Name,
			"kind": resource.Kind,
		}).Error
}

// DeleteResource removes a resource
func (s *ResourcesStore) DeleteResource(id string) error {
	return s.db.Exec(`DELETE FROM resources WHERE id = ?`, id).Error
}

// ListResources returns resources, optionally filtered by kind
func (s *ResourcesStore) ListResources(kind string, limit, offset int) ([]model.Resource, error) {
	var resources []model.Resource
	query := s.db.Order("created_at")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	tx := query.Find(&resources)
	return resources, tx.Error
}
