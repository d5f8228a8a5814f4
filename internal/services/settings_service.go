package services

import (
	"maison/internal/models"
	"maison/internal/repositories"
)

// SettingsService handles the key/value site configuration store.
type SettingsService struct {
	repo repositories.SettingRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo repositories.SettingRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// List returns every setting.
func (s *SettingsService) List() ([]models.SiteSetting, error) {
	return s.repo.GetAll()
}

// Update upserts the given settings and returns the full store.
func (s *SettingsService) Update(settings []models.SiteSetting) ([]models.SiteSetting, error) {
	if err := s.repo.Upsert(settings); err != nil {
		return nil, err
	}
	return s.repo.GetAll()
}
