package model

import (
	"time"

	"gorm.io/gorm"
)

// WeeksPerTerm is the number of teaching weeks used for SKS realization
// accounting (realized = credits * attended / WeeksPerTerm).
const WeeksPerTerm = 16

// TeachingLog records one realized teaching session: lecturer X taught the
// class of schedule entry Y in week N. Feeds the honor/SKS recap.
type TeachingLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	ScheduleID uint           `gorm:"not null;index:idx_teaching_log_slot,unique" json:"schedule_id"`
	LecturerID uint           `gorm:"not null;index:idx_teaching_log_slot,unique" json:"lecturer_id"`
	Week       int            `gorm:"not null;index:idx_teaching_log_slot,unique" json:"week"` // 1..16
	Date       string         `gorm:"type:varchar(10)" json:"date"`                            // YYYY-MM-DD

	// Relationships
	Schedule ScheduleItem `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"-"`
	Lecturer Lecturer     `gorm:"foreignKey:LecturerID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for TeachingLog
func (TeachingLog) TableName() string {
	return "teaching_logs"
}
