package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gatehouse-io/gatehouse/pkg/model"
	"github.com/gatehouse-io/gatehouse/pkg/server/store"
)

// Ensure ProfilesStore implements store.ProfilesStore
var _ store.ProfilesStore = (*ProfilesStore)(nil)

// ProfilesStore implements store.ProfilesStore using GORM
type ProfilesStore struct {
	db *gorm.DB
}

// NewProfilesStore creates a new ProfilesStore
func NewProfilesStore(db *gorm.DB) *ProfilesStore {
	return &ProfilesStore{db: db}
}

// FetchProfile retrieves a profile by id
func (s *ProfilesStore) FetchProfile(id string) (*model.Profile, error) {
	var profile model.Profile
	tx := s.db.Where("id = ?", id).First(&profile)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &profile, nil
}

// FetchProfileOwners returns the owner ids for a profile
func (s *ProfilesStore) FetchProfileOwners(id string) ([]string, error) {
	profile, err := s.FetchProfile(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return profile.Owners, nil
}

// CreateProfile writes a new profile
func (s *ProfilesStore) CreateProfile(profile *model.Profile) error {
	return s.db.Create(profile).Error
}

// UpdateProfile updates display fields on a profile
func (s *ProfilesStore) UpdateProfile(profile *model.Profile) error {
	return s.db.Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"display_name": profile.DisplayName,
			"bio":          profile.Bio,
		}).Error
}

// DeleteProfile removes a profile
func (s *ProfilesStore) DeleteProfile(id string) error {
	return s.db.Exec(`DELETE FROM profiles WHERE id = ?`, id).Error
}

// ListProfiles returns profiles ordered by creation time
func (s *ProfilesStore) ListProfiles(limit, offset int) ([]model.Profile, error) {
	var profiles []model.Profile
	query := s.db.Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	tx := query.Find(&profiles)
	return profiles, tx.Error
}
