package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents a subject in the curriculum (mata kuliah).
// Credits is the SKS weight used for workload accounting. CoordinatorID is the
// default subject coordinator, distinct from the per-session PJMK on a
// ScheduleItem.
type Course struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	Name          string         `gorm:"not null" json:"name"`
	Credits       int            `gorm:"not null" json:"credits"` // SKS
	CoordinatorID *uint          `gorm:"index" json:"coordinator_id,omitempty"`

	// Relationships
	Coordinator *Lecturer      `gorm:"foreignKey:CoordinatorID" json:"coordinator,omitempty"`
	Schedules   []ScheduleItem `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}
