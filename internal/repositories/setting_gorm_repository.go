package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"maison/internal/models"
)

// SettingRepository defines the interface for site setting data access.
type SettingRepository interface {
	GetAll() ([]models.SiteSetting, error)
	// Upsert inserts or updates the given settings as a whole.
	Upsert(settings []models.SiteSetting) error
}

// GORMSettingRepository is a GORM implementation of SettingRepository.
type GORMSettingRepository struct {
	db *gorm.DB
}

// NewGORMSettingRepository creates a new instance of GORMSettingRepository.
func NewGORMSettingRepository(db *gorm.DB) *GORMSettingRepository {
	return &GORMSettingRepository{db: db}
}

// GetAll returns every setting.
func (r *GORMSettingRepository) GetAll() ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Upsert writes the given settings, updating values for existing keys.
func (r *GORMSettingRepository) Upsert(settings []models.SiteSetting) error {
	if len(settings) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settings).Error
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
