package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DayOfWeek is one of the six teaching days (Monday-Saturday, Indonesian labels).
type DayOfWeek string

const (
	Senin  DayOfWeek = "Senin"
	Selasa DayOfWeek = "Selasa"
	Rabu   DayOfWeek = "Rabu"
	Kamis  DayOfWeek = "Kamis"
	Jumat  DayOfWeek = "Jumat"
	Sabtu  DayOfWeek = "Sabtu"
)

// Days lists the teaching days in timetable order.
var Days = []DayOfWeek{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu}

// TimeSlots lists the five fixed teaching periods per day.
var TimeSlots = []string{
	"07:00 - 08:40",
	"09:00 - 10:40",
	"11:00 - 12:40",
	"13:00 - 14:40",
	"15:00 - 16:40",
}

// IsValidDay reports whether d is a known teaching day.
func IsValidDay(d DayOfWeek) bool {
	for _, day := range Days {
		if day == d {
			return true
		}
	}
	return false
}

// IsValidTimeSlot reports whether slot is one of the fixed teaching periods.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// MaxTeamSize is the hard cap on lecturers per schedule entry (team teaching).
const MaxTeamSize = 2

// ScheduleItem is one weekly timetable slot: a course taught to a class section
// in a room at a fixed (day, time slot), by up to two lecturers. PJMKLecturerID
// marks the coordinator-of-record for the session; zero means no PJMK assigned.
type ScheduleItem struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID       uint           `gorm:"not null;index" json:"course_id"`
	RoomID         uint           `gorm:"not null;index" json:"room_id"`
	ClassName      string         `gorm:"type:varchar(50);not null;index" json:"class_name"`
	Day            DayOfWeek      `gorm:"type:varchar(10);not null;index" json:"day"`
	TimeSlot       string         `gorm:"type:varchar(20);not null;index" json:"time_slot"`
	LecturerIDs    pq.Int64Array  `gorm:"type:bigint[]" json:"lecturer_ids"`
	PJMKLecturerID int64          `gorm:"default:0" json:"pjmk_lecturer_id"`

	// Relationships
	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Room   Room   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
}

// TableName specifies the table name for ScheduleItem
func (ScheduleItem) TableName() string {
	return "schedule_items"
}

// HasLecturer reports whether the lecturer is on this entry's roster.
func (s *ScheduleItem) HasLecturer(lecturerID int64) bool {
	for _, id := range s.LecturerIDs {
		if id == lecturerID {
			return true
		}
	}
	return false
}

// IsOpenSlot reports whether the entry has no lecturers yet.
func (s *ScheduleItem) IsOpenSlot() bool {
	return len(s.LecturerIDs) == 0
}
