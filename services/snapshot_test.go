package services

import (
	"reflect"
	"testing"

	"github.com/simpdb/simpdb-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// unreachableDB opens a handle against a dead address. The open itself
// succeeds because pinging is disabled, so every query fails at exec time.
func unreachableDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=none dbname=none sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestReloadEntryFallsBackOnReadFailure(t *testing.T) {
	svc := NewSnapshotService(unreachableDB(t))

	entry := model.ScheduleItem{
		ID:             42,
		CourseID:       3,
		RoomID:         2,
		ClassName:      "PDB42",
		Day:            model.Kamis,
		TimeSlot:       "09:00 - 10:40",
		LecturerIDs:    []int64{101, 102},
		PJMKLecturerID: 101,
	}

	got := svc.ReloadEntry(entry)
	if !reflect.DeepEqual(got, entry) {
		t.Fatalf("ReloadEntry must return the in-memory entry unchanged on a failed read\ngot  %+v\nwant %+v", got, entry)
	}
}
