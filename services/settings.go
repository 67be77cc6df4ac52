package services

import (
	"errors"

	"github.com/simpdb/simpdb-api/model"
	"gorm.io/gorm"
)

// SettingsService reads and writes application settings, including the
// schedule lock flag that gates lecturer self-service transitions.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// IsScheduleLocked reads the schedule_lock flag. A missing setting means
// unlocked.
func (s *SettingsService) IsScheduleLocked() (bool, error) {
	var setting model.AppSetting
	err := s.db.Where("key = ?", model.SettingScheduleLock).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return setting.BoolValue(), nil
}

// SetScheduleLock upserts the schedule_lock flag and returns the setting row.
func (s *SettingsService) SetScheduleLock(locked bool) (*model.AppSetting, error) {
	value := "false"
	if locked {
		value = "true"
	}

	var setting model.AppSetting
	err := s.db.Where("key = ?", model.SettingScheduleLock).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = model.AppSetting{
			Key:         model.SettingScheduleLock,
			Value:       value,
			Description: "Freezes lecturer claim/join/release when true",
			IsPublic:    true,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		setting.Value = value
		if err := s.db.Save(&setting).Error; err != nil {
			return nil, err
		}
	}
	return &setting, nil
}

// Get returns a setting by key.
func (s *SettingsService) Get(key string) (*model.AppSetting, error) {
	var setting model.AppSetting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// List returns all settings, optionally only the public ones.
func (s *SettingsService) List(publicOnly bool) ([]model.AppSetting, error) {
	var settings []model.AppSetting
	q := s.db.Order("key")
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	if err := q.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
