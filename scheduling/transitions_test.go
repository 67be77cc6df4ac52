package scheduling

import (
	"errors"
	"reflect"
	"testing"

	"github.com/simpdb/simpdb-api/model"
)

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	return te.Reason
}

func TestClaimAsCoordinator(t *testing.T) {
	// Scenario A: L1 claims an open slot as PJMK.
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01")
	existing := []model.ScheduleItem{entry}

	got, err := Claim(entry, 101, true, existing, false)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if !reflect.DeepEqual([]int64(got.LecturerIDs), []int64{101}) {
		t.Fatalf("LecturerIDs = %v, want [101]", got.LecturerIDs)
	}
	if got.PJMKLecturerID != 101 {
		t.Fatalf("PJMKLecturerID = %d, want 101", got.PJMKLecturerID)
	}
}

func TestClaimDeferringCoordinator(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01")

	got, err := Claim(entry, 101, false, []model.ScheduleItem{entry}, false)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if got.PJMKLecturerID != 0 {
		t.Fatalf("deferred claim must leave PJMK unset, got %d", got.PJMKLecturerID)
	}
}

func TestJoinKeepsExistingCoordinator(t *testing.T) {
	// Scenario B: L2 joins a team whose PJMK is already set.
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101)
	entry.PJMKLecturerID = 101

	got, err := Join(entry, 102, []model.ScheduleItem{entry}, false)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !reflect.DeepEqual([]int64(got.LecturerIDs), []int64{101, 102}) {
		t.Fatalf("LecturerIDs = %v, want [101 102]", got.LecturerIDs)
	}
	if got.PJMKLecturerID != 101 {
		t.Fatalf("existing PJMK must stand, got %d", got.PJMKLecturerID)
	}
}

func TestJoinAutoAssignsDeferredCoordinator(t *testing.T) {
	// Scenario C: first claimant deferred, so the joiner becomes PJMK.
	entry := makeEntry(2, model.Senin, "07:00 - 08:40", 2, "PDB02", 101)

	got, err := Join(entry, 103, []model.ScheduleItem{entry}, false)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if got.PJMKLecturerID != 103 {
		t.Fatalf("joiner must be auto-assigned PJMK, got %d", got.PJMKLecturerID)
	}
}

func TestJoinFullEntryRejected(t *testing.T) {
	entry := makeEntry(3, model.Senin, "07:00 - 08:40", 3, "PDB03", 101, 102)
	entry.PJMKLecturerID = 101

	_, err := Join(entry, 103, []model.ScheduleItem{entry}, false)
	if r := reasonOf(t, err); r != ReasonAlreadyFull {
		t.Fatalf("reason = %s, want %s", r, ReasonAlreadyFull)
	}
}

func TestClaimLimitExceeded(t *testing.T) {
	// Scenario D: L1 already teaches two entries at (Selasa, 09:00 - 10:40);
	// claiming a third at the same slot is rejected before conflict checks.
	e1 := makeEntry(1, model.Selasa, "09:00 - 10:40", 1, "PDB01", 201)
	e3 := makeEntry(3, model.Selasa, "09:00 - 10:40", 3, "PDB03", 201)
	e4 := makeEntry(4, model.Selasa, "09:00 - 10:40", 4, "PDB04")
	existing := []model.ScheduleItem{e1, e3, e4}

	got, err := Claim(e4, 201, true, existing, false)
	if r := reasonOf(t, err); r != ReasonLimitExceeded {
		t.Fatalf("reason = %s, want %s", r, ReasonLimitExceeded)
	}
	if !got.IsOpenSlot() || got.PJMKLecturerID != 0 {
		t.Fatalf("rejected claim must leave the entry unchanged, got %+v", got)
	}
}

func TestJoinLimitExceeded(t *testing.T) {
	e1 := makeEntry(1, model.Rabu, "13:00 - 14:40", 1, "PDB01", 201)
	e2 := makeEntry(2, model.Rabu, "13:00 - 14:40", 2, "PDB02", 201)
	e3 := makeEntry(3, model.Rabu, "13:00 - 14:40", 3, "PDB03", 300)
	existing := []model.ScheduleItem{e1, e2, e3}

	_, err := Join(e3, 201, existing, false)
	if r := reasonOf(t, err); r != ReasonLimitExceeded {
		t.Fatalf("reason = %s, want %s", r, ReasonLimitExceeded)
	}
}

func TestSecondConcurrentClaimAllowed(t *testing.T) {
	// One existing concurrent section is within the cap.
	e1 := makeEntry(1, model.Kamis, "07:00 - 08:40", 1, "PDB01", 201)
	e2 := makeEntry(2, model.Kamis, "07:00 - 08:40", 2, "PDB02")
	existing := []model.ScheduleItem{e1, e2}

	got, err := Claim(e2, 201, false, existing, false)
	if err != nil {
		t.Fatalf("second concurrent claim should pass, got %v", err)
	}
	if !got.HasLecturer(201) {
		t.Fatalf("actor missing from roster: %+v", got)
	}
}

func TestTransitionsLocked(t *testing.T) {
	open := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01")
	solo := makeEntry(2, model.Senin, "09:00 - 10:40", 2, "PDB02", 101)
	existing := []model.ScheduleItem{open, solo}

	if _, err := Claim(open, 102, true, existing, true); reasonOf(t, err) != ReasonLocked {
		t.Fatalf("locked claim must be rejected")
	}
	if _, err := Join(solo, 102, existing, true); reasonOf(t, err) != ReasonLocked {
		t.Fatalf("locked join must be rejected")
	}
	if _, err := Release(solo, 101, true); reasonOf(t, err) != ReasonLocked {
		t.Fatalf("locked self-service release must be rejected")
	}
}

func TestReleaseTransfersCoordinator(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101, 102)
	entry.PJMKLecturerID = 101

	got, err := Release(entry, 101, false)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !reflect.DeepEqual([]int64(got.LecturerIDs), []int64{102}) {
		t.Fatalf("LecturerIDs = %v, want [102]", got.LecturerIDs)
	}
	if got.PJMKLecturerID != 102 {
		t.Fatalf("PJMK must transfer to the remaining member, got %d", got.PJMKLecturerID)
	}
}

func TestReleaseLastMemberClearsCoordinator(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101)
	entry.PJMKLecturerID = 101

	got, err := Release(entry, 101, false)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if !got.IsOpenSlot() || got.PJMKLecturerID != 0 {
		t.Fatalf("releasing the last member must empty the roster, got %+v", got)
	}
}

func TestReleaseNotAMember(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101)

	_, err := Release(entry, 999, false)
	if r := reasonOf(t, err); r != ReasonNotAMember {
		t.Fatalf("reason = %s, want %s", r, ReasonNotAMember)
	}
}

func TestApplyDirectEditSameLecturerBothSlots(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101)

	_, err := ApplyDirectEdit(entry, DirectEdit{
		CourseID:       1,
		RoomID:         1,
		ClassName:      "PDB01",
		Day:            model.Senin,
		TimeSlot:       "07:00 - 08:40",
		MainLecturerID: 101,
		TeamLecturerID: 101,
	}, []model.ScheduleItem{entry})
	if r := reasonOf(t, err); r != ReasonInvalidRoster {
		t.Fatalf("reason = %s, want %s", r, ReasonInvalidRoster)
	}
}

func TestApplyDirectEditConflictRefused(t *testing.T) {
	target := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101)
	other := makeEntry(2, model.Senin, "09:00 - 10:40", 2, "PDB02", 102)
	existing := []model.ScheduleItem{target, other}

	// Moving the target onto other's room and slot must be refused.
	_, err := ApplyDirectEdit(target, DirectEdit{
		CourseID:       1,
		RoomID:         2,
		ClassName:      "PDB01",
		Day:            model.Senin,
		TimeSlot:       "09:00 - 10:40",
		MainLecturerID: 101,
	}, existing)
	var te *TransitionError
	if !errors.As(err, &te) || te.Reason != ReasonConflict {
		t.Fatalf("expected conflict rejection, got %v", err)
	}
	if len(te.Conflicts) != 1 || te.Conflicts[0].Kind != ConflictRoom {
		t.Fatalf("expected a single room conflict, got %+v", te.Conflicts)
	}
}

func TestApplyDirectEditReplacesRoster(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101, 102)
	entry.PJMKLecturerID = 102

	got, err := ApplyDirectEdit(entry, DirectEdit{
		CourseID:       2,
		RoomID:         3,
		ClassName:      "PDB05",
		Day:            model.Sabtu,
		TimeSlot:       "13:00 - 14:40",
		MainLecturerID: 103,
		TeamLecturerID: 104,
	}, []model.ScheduleItem{entry})
	if err != nil {
		t.Fatalf("ApplyDirectEdit: %v", err)
	}
	if !reflect.DeepEqual([]int64(got.LecturerIDs), []int64{103, 104}) {
		t.Fatalf("LecturerIDs = %v, want [103 104]", got.LecturerIDs)
	}
	if got.PJMKLecturerID != 103 {
		t.Fatalf("main slot must become PJMK, got %d", got.PJMKLecturerID)
	}
	if got.CourseID != 2 || got.RoomID != 3 || got.ClassName != "PDB05" || got.Day != model.Sabtu {
		t.Fatalf("placement fields not applied: %+v", got)
	}
}

func TestApplyDirectEditNotLockGated(t *testing.T) {
	// The direct-edit path never consults the lock; it has no lock parameter
	// at all. This test pins that an edit succeeds in a state where every
	// self-service transition would be refused.
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01")

	if _, err := Claim(entry, 101, true, []model.ScheduleItem{entry}, true); err == nil {
		t.Fatal("claim should be locked out")
	}
	_, err := ApplyDirectEdit(entry, DirectEdit{
		CourseID:       1,
		RoomID:         1,
		ClassName:      "PDB01",
		Day:            model.Senin,
		TimeSlot:       "07:00 - 08:40",
		MainLecturerID: 101,
	}, []model.ScheduleItem{entry})
	if err != nil {
		t.Fatalf("direct edit must bypass the lock, got %v", err)
	}
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	entry := makeEntry(1, model.Senin, "07:00 - 08:40", 1, "PDB01", 101)
	entry.PJMKLecturerID = 101
	existing := []model.ScheduleItem{entry}

	if _, err := Join(entry, 102, existing, false); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !reflect.DeepEqual([]int64(entry.LecturerIDs), []int64{101}) || entry.PJMKLecturerID != 101 {
		t.Fatalf("input entry mutated: %+v", entry)
	}
}
