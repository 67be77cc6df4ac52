package services

import (
	"fmt"

	"github.com/simpdb/simpdb-api/model"
	"gorm.io/gorm"
)

// DatasetSnapshot is the full dataset the SPA works against. Clients poll it
// on a fixed interval, mutate their local copy optimistically and commit
// through the mutation endpoints; between polls their copy may be stale. The
// write handlers re-run the scheduling engine against a fresh read, which is
// where stale-snapshot races get caught server-side.
type DatasetSnapshot struct {
	Courses      []model.Course       `json:"courses"`
	Lecturers    []model.Lecturer     `json:"lecturers"`
	Rooms        []model.Room         `json:"rooms"`
	Classes      []model.ClassName    `json:"classes"`
	Schedule     []model.ScheduleItem `json:"schedule"`
	TeachingLogs []model.TeachingLog  `json:"teaching_logs"`
	Settings     []model.AppSetting   `json:"settings"`
}

// SnapshotService loads the dataset collections.
type SnapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(db *gorm.DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// Load reads all seven collections. Order is fixed per table (by id) so the
// snapshot is stable across polls when nothing changed.
func (s *SnapshotService) Load() (*DatasetSnapshot, error) {
	snap := &DatasetSnapshot{}

	loads := []struct {
		name string
		dest interface{}
	}{
		{"courses", &snap.Courses},
		{"lecturers", &snap.Lecturers},
		{"rooms", &snap.Rooms},
		{"classes", &snap.Classes},
		{"schedule", &snap.Schedule},
		{"teaching_logs", &snap.TeachingLogs},
		{"settings", &snap.Settings},
	}
	for _, l := range loads {
		if err := s.db.Order("id").Find(l.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", l.name, err)
		}
	}
	return snap, nil
}

// ReloadEntry reads a schedule entry back with its Course and Room relations
// for the response payload. When the read fails the in-memory copy is
// returned unchanged, so a hiccup after a committed write never surfaces a
// half-populated entry.
func (s *SnapshotService) ReloadEntry(entry model.ScheduleItem) model.ScheduleItem {
	var full model.ScheduleItem
	if err := s.db.Preload("Course").Preload("Room").First(&full, entry.ID).Error; err != nil {
		return entry
	}
	return full
}

// LoadSchedule reads only the schedule collection, the snapshot the
// conflict engine needs.
func (s *SnapshotService) LoadSchedule() ([]model.ScheduleItem, error) {
	var items []model.ScheduleItem
	if err := s.db.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return items, nil
}
