package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

// FetchRoleByName retrieves a role with its grants
func (s *RolesStore) FetchRoleByName(name string) (*model.Role, error) {
	var role model.Role
	tx := s.db.Preload("Grants").Where("name = ?", name).First(&role)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &role, nil
}

// FetchRoleByID retrieves a role with its grants
func (s *RolesStore) FetchRoleByID(id string) (*model.Role, error) {
	var role model.Role
	tx := s.db.Preload("Grants").Where("id = ?", id).First(&role)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &role, nil
}

// RoleExists checks whether a role name is taken
func (s *RolesStore) RoleExists(name string) (bool, error) {
	var exists bool
	tx := s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE name = ?)`, name).Scan(&exists)
	return exists, tx.Error
}

// CreateRole writes a role together with its initial grants
func (s *RolesStore) CreateRole(role *model.Role) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(role).Error
	})
}

// AddGrant appends a grant to an existing role
func (s *RolesStore) AddGrant(grant *model.Grant) error {
	return s.db.Create(grant).Error
}

// UpdateRoleStatus changes a role's status
func (s *RolesStore) UpdateRoleStatus(roleID, status string) error {
	return s.db.Model(&model.Role{}).
		Where("id = ?", roleID).
		Update("status", status).Error
}

// ListRoles returns roles with their grants, ordered by name
func (s *RolesStore) ListRoles(limit, offset int) ([]model.Role, error) {
	var roles []model.Role
	query := s.db.Preload("Grants").Order("name")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	tx := query.Find(&roles)
	return roles, tx.Error
}
