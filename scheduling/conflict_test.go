package scheduling

import (
	"reflect"
	"testing"

	"github.com/simpdb/simpdb-api/model"
)

func makeEntry(id uint, day model.DayOfWeek, slot string, roomID uint, className string, lecturers ...int64) model.ScheduleItem {
	return model.ScheduleItem{
		ID:          id,
		CourseID:    1,
		RoomID:      roomID,
		ClassName:   className,
		Day:         day,
		TimeSlot:    slot,
		LecturerIDs: lecturers,
	}
}

func TestDetectConflictsRoom(t *testing.T) {
	// Scenario: room R1 is used at (Rabu, 11:00 - 12:40); a candidate with the
	// same room and slot yields exactly one room conflict naming the occupying
	// entry's class.
	existing := []model.ScheduleItem{
		makeEntry(10, model.Rabu, "11:00 - 12:40", 1, "PDB07", 5),
		makeEntry(11, model.Rabu, "13:00 - 14:40", 1, "PDB08", 6),
	}

	got := DetectConflicts(Candidate{
		Day:      model.Rabu,
		TimeSlot: "11:00 - 12:40",
		RoomID:   1,
	}, existing, 0)

	want := []Conflict{{Kind: ConflictRoom, EntryID: 10, ClassName: "PDB07"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DetectConflicts = %+v, want %+v", got, want)
	}
}

func TestDetectConflictsClass(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(20, model.Senin, "07:00 - 08:40", 2, "PDB01", 1),
	}

	got := DetectConflicts(Candidate{
		Day:       model.Senin,
		TimeSlot:  "07:00 - 08:40",
		RoomID:    3, // different room
		ClassName: "PDB01",
	}, existing, 0)

	if len(got) != 1 || got[0].Kind != ConflictClass || got[0].EntryID != 20 {
		t.Fatalf("expected single class conflict with entry 20, got %+v", got)
	}
}

func TestDetectConflictsLecturerCap(t *testing.T) {
	// One concurrent section is tolerated (team teaching across classes);
	// a second existing section trips the lecturer conflict.
	oneSection := []model.ScheduleItem{
		makeEntry(30, model.Selasa, "09:00 - 10:40", 1, "PDB01", 7),
	}
	twoSections := []model.ScheduleItem{
		makeEntry(30, model.Selasa, "09:00 - 10:40", 1, "PDB01", 7),
		makeEntry(31, model.Selasa, "09:00 - 10:40", 2, "PDB02", 7),
	}

	cand := Candidate{Day: model.Selasa, TimeSlot: "09:00 - 10:40", LecturerIDs: []int64{7}}

	if got := DetectConflicts(cand, oneSection, 0); len(got) != 0 {
		t.Fatalf("one concurrent section should be tolerated, got %+v", got)
	}
	got := DetectConflicts(cand, twoSections, 0)
	if len(got) != 1 || got[0].Kind != ConflictLecturer || got[0].LecturerID != 7 {
		t.Fatalf("expected lecturer conflict for id 7, got %+v", got)
	}
}

func TestDetectConflictsExcludesSelf(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(40, model.Kamis, "07:00 - 08:40", 4, "PDB10", 2),
	}

	got := DetectConflicts(Candidate{
		Day:       model.Kamis,
		TimeSlot:  "07:00 - 08:40",
		RoomID:    4,
		ClassName: "PDB10",
	}, existing, 40)

	if len(got) != 0 {
		t.Fatalf("entry must not conflict with itself, got %+v", got)
	}
}

func TestDetectConflictsSkipsUnsetFields(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(50, model.Jumat, "15:00 - 16:40", 9, "PDB20", 3),
	}

	// No room, class, or lecturers: nothing to collide on even at the same slot.
	got := DetectConflicts(Candidate{Day: model.Jumat, TimeSlot: "15:00 - 16:40"}, existing, 0)
	if len(got) != 0 {
		t.Fatalf("unset fields must skip their checks, got %+v", got)
	}
}

func TestDetectConflictsOpenSlotNeverLecturerConflicts(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(60, model.Senin, "09:00 - 10:40", 1, "PDB01"),
		makeEntry(61, model.Senin, "09:00 - 10:40", 2, "PDB02"),
	}

	got := DetectConflicts(Candidate{
		Day:         model.Senin,
		TimeSlot:    "09:00 - 10:40",
		LecturerIDs: []int64{99},
	}, existing, 0)
	if len(got) != 0 {
		t.Fatalf("open-slot entries must never produce lecturer conflicts, got %+v", got)
	}
}

func TestDetectConflictsStableOrder(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(70, model.Rabu, "07:00 - 08:40", 1, "PDB01", 5, 6),
		makeEntry(71, model.Rabu, "07:00 - 08:40", 2, "PDB02", 5, 6),
		makeEntry(72, model.Rabu, "07:00 - 08:40", 3, "PDB03", 9),
	}

	cand := Candidate{
		Day:         model.Rabu,
		TimeSlot:    "07:00 - 08:40",
		RoomID:      1,
		ClassName:   "PDB03",
		LecturerIDs: []int64{6, 5}, // deliberately out of order
	}

	first := DetectConflicts(cand, existing, 0)
	second := DetectConflicts(cand, existing, 0)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("detector must be deterministic: %+v vs %+v", first, second)
	}

	wantKinds := []ConflictKind{ConflictRoom, ConflictClass, ConflictLecturer, ConflictLecturer}
	if len(first) != len(wantKinds) {
		t.Fatalf("expected %d conflicts, got %+v", len(wantKinds), first)
	}
	for i, k := range wantKinds {
		if first[i].Kind != k {
			t.Fatalf("conflict %d: kind = %s, want %s (%+v)", i, first[i].Kind, k, first)
		}
	}
	if first[2].LecturerID != 5 || first[3].LecturerID != 6 {
		t.Fatalf("lecturer conflicts must be in ascending id order, got %+v", first)
	}
}

func TestDetectConflictsIgnoresOtherSlots(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(80, model.Senin, "07:00 - 08:40", 1, "PDB01", 4),
		makeEntry(81, model.Selasa, "07:00 - 08:40", 1, "PDB01", 4),
	}

	got := DetectConflicts(Candidate{
		Day:         model.Sabtu,
		TimeSlot:    "07:00 - 08:40",
		RoomID:      1,
		ClassName:   "PDB01",
		LecturerIDs: []int64{4},
	}, existing, 0)
	if len(got) != 0 {
		t.Fatalf("entries on other days must not collide, got %+v", got)
	}
}

func TestCountConcurrent(t *testing.T) {
	existing := []model.ScheduleItem{
		makeEntry(90, model.Selasa, "09:00 - 10:40", 1, "PDB01", 7),
		makeEntry(91, model.Selasa, "09:00 - 10:40", 2, "PDB02", 7, 8),
		makeEntry(92, model.Selasa, "11:00 - 12:40", 3, "PDB03", 7),
	}

	if n := CountConcurrent(7, model.Selasa, "09:00 - 10:40", existing, 0); n != 2 {
		t.Fatalf("CountConcurrent(7) = %d, want 2", n)
	}
	if n := CountConcurrent(7, model.Selasa, "09:00 - 10:40", existing, 91); n != 1 {
		t.Fatalf("CountConcurrent(7, exclude 91) = %d, want 1", n)
	}
	if n := CountConcurrent(8, model.Selasa, "09:00 - 10:40", existing, 0); n != 1 {
		t.Fatalf("CountConcurrent(8) = %d, want 1", n)
	}
}
