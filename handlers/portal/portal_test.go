package portal

import (
	"errors"
	"reflect"
	"testing"

	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/scheduling"
)

func fullTeamEntry() model.ScheduleItem {
	return model.ScheduleItem{
		ID:             7,
		CourseID:       1,
		RoomID:         1,
		ClassName:      "PDB07",
		Day:            model.Senin,
		TimeSlot:       "07:00 - 08:40",
		LecturerIDs:    []int64{101, 102},
		PJMKLecturerID: 101,
	}
}

func TestReleaseTransitionRemovesActor(t *testing.T) {
	entry := fullTeamEntry()
	existing := []model.ScheduleItem{entry}

	got, err := releaseTransition(entry, 102, existing, false)
	if err != nil {
		t.Fatalf("releaseTransition: %v", err)
	}
	if !reflect.DeepEqual([]int64(got.LecturerIDs), []int64{101}) {
		t.Fatalf("LecturerIDs = %v, want [101]", got.LecturerIDs)
	}
	if got.PJMKLecturerID != 101 {
		t.Fatalf("PJMKLecturerID = %d, want 101", got.PJMKLecturerID)
	}
}

func TestReleaseTransitionTransfersCoordinator(t *testing.T) {
	entry := fullTeamEntry()

	got, err := releaseTransition(entry, 101, []model.ScheduleItem{entry}, false)
	if err != nil {
		t.Fatalf("releaseTransition: %v", err)
	}
	if !reflect.DeepEqual([]int64(got.LecturerIDs), []int64{102}) {
		t.Fatalf("LecturerIDs = %v, want [102]", got.LecturerIDs)
	}
	if got.PJMKLecturerID != 102 {
		t.Fatalf("PJMK must transfer to the remaining member, got %d", got.PJMKLecturerID)
	}
}

func TestReleaseTransitionRejectsWhenLocked(t *testing.T) {
	entry := fullTeamEntry()

	_, err := releaseTransition(entry, 102, []model.ScheduleItem{entry}, true)
	var te *scheduling.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if te.Reason != scheduling.ReasonLocked {
		t.Fatalf("Reason = %q, want %q", te.Reason, scheduling.ReasonLocked)
	}
}

func TestReleaseTransitionRejectsNonMember(t *testing.T) {
	entry := fullTeamEntry()

	_, err := releaseTransition(entry, 999, []model.ScheduleItem{entry}, false)
	var te *scheduling.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if te.Reason != scheduling.ReasonNotAMember {
		t.Fatalf("Reason = %q, want %q", te.Reason, scheduling.ReasonNotAMember)
	}
}
