package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Well-known setting keys
const (
	// SettingScheduleLock freezes lecturer self-service claim/join/release
	// when its value is "true". Admin edits are not affected.
	SettingScheduleLock = "schedule_lock"
)

// AppSetting represents an application-wide key/value setting
type AppSetting struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Key         string         `gorm:"uniqueIndex;not null" json:"key"`
	Value       string         `gorm:"type:text;not null" json:"value"`
	Description string         `gorm:"type:text" json:"description"`
	IsPublic    bool           `gorm:"default:false" json:"is_public"` // If true, can be read without auth
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for AppSetting
func (AppSetting) TableName() string {
	return "app_settings"
}

// BoolValue interprets the setting value as a boolean ("true", case-insensitive).
func (s *AppSetting) BoolValue() bool {
	return strings.EqualFold(strings.TrimSpace(s.Value), "true")
}
