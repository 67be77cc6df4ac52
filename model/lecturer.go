package model

import (
	"time"

	"gorm.io/gorm"
)

// Lecturer represents a teaching staff member. NIP is the national identifier
// and doubles as the default portal credential.
type Lecturer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	NIP       string         `gorm:"uniqueIndex;not null;type:varchar(30)" json:"nip"`
	Position  string         `gorm:"type:varchar(100)" json:"position"` // rank/title, normalized for stats
	Expertise string         `gorm:"type:text" json:"expertise"`
}

// TableName specifies the table name for Lecturer
func (Lecturer) TableName() string {
	return "lecturers"
}

// Room represents a physical teaching room.
type Room struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null;uniqueIndex" json:"name"`
	Capacity  int            `gorm:"default:0" json:"capacity"`
	Building  string         `gorm:"type:varchar(100)" json:"building"`
	Location  string         `gorm:"type:varchar(255)" json:"location"`
}

// TableName specifies the table name for Room
func (Room) TableName() string {
	return "rooms"
}

// ClassName represents a class-section label (e.g. "PDB01"). A default set of
// 125 sequential labels is seeded when the table is empty.
type ClassName struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"uniqueIndex;not null;type:varchar(50)" json:"name"`
}

// TableName specifies the table name for ClassName
func (ClassName) TableName() string {
	return "class_names"
}
