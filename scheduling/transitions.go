package scheduling

import "github.com/simpdb/simpdb-api/model"

// Claim takes an open slot for the acting lecturer (empty -> solo). The actor
// chooses whether to become PJMK or to defer the role to whoever joins next;
// this is an explicit choice, never inferred. Gated by the schedule lock, the
// concurrent-class cap and the conflict detector, in that order.
func Claim(entry model.ScheduleItem, actorID int64, asCoordinator bool, existing []model.ScheduleItem, locked bool) (model.ScheduleItem, error) {
	if locked {
		return entry, rejection(ReasonLocked, "")
	}
	roster, err := RosterOf(entry)
	if err != nil {
		return entry, err
	}
	if roster.IsFull() {
		return entry, rejection(ReasonAlreadyFull, "")
	}
	if roster.Len() != 0 {
		return entry, rejection(ReasonInvalidRoster, "entry already has a lecturer; join instead")
	}
	if err := guardActor(entry, actorID, existing); err != nil {
		return entry, err
	}

	if err := roster.Add(actorID); err != nil {
		return entry, err
	}
	if asCoordinator {
		if err := roster.SetCoordinator(actorID); err != nil {
			return entry, err
		}
	}
	return roster.apply(entry), nil
}

// Join adds the acting lecturer as the second team member (solo -> full). When
// the first claimant deferred the PJMK role, the joiner is auto-assigned as
// coordinator; otherwise the existing PJMK stands.
func Join(entry model.ScheduleItem, actorID int64, existing []model.ScheduleItem, locked bool) (model.ScheduleItem, error) {
	if locked {
		return entry, rejection(ReasonLocked, "")
	}
	roster, err := RosterOf(entry)
	if err != nil {
		return entry, err
	}
	if roster.IsFull() {
		return entry, rejection(ReasonAlreadyFull, "")
	}
	if roster.Len() == 0 {
		return entry, rejection(ReasonInvalidRoster, "entry has no lecturer yet; claim instead")
	}
	if roster.Contains(actorID) {
		return entry, rejection(ReasonInvalidRoster, "lecturer already on this entry")
	}
	if err := guardActor(entry, actorID, existing); err != nil {
		return entry, err
	}

	if err := roster.Add(actorID); err != nil {
		return entry, err
	}
	if roster.Coordinator() == 0 {
		if err := roster.SetCoordinator(actorID); err != nil {
			return entry, err
		}
	}
	return roster.apply(entry), nil
}

// Release removes the acting lecturer from the entry's roster. If they were
// PJMK the role transfers to the remaining member, or is cleared when the
// roster empties. The lock applies to the lecturer self-service path; the
// admin path passes locked=false since admin edits bypass the lock.
func Release(entry model.ScheduleItem, actorID int64, locked bool) (model.ScheduleItem, error) {
	if locked {
		return entry, rejection(ReasonLocked, "")
	}
	roster, err := RosterOf(entry)
	if err != nil {
		return entry, err
	}
	if err := roster.Remove(actorID); err != nil {
		return entry, err
	}
	return roster.apply(entry), nil
}

// guardActor applies the pre-transition checks shared by Claim and Join: the
// concurrent-class cap first, then the conflict detector with the actor as
// sole candidate lecturer, excluding the target entry itself.
func guardActor(entry model.ScheduleItem, actorID int64, existing []model.ScheduleItem) error {
	if CountConcurrent(actorID, entry.Day, entry.TimeSlot, existing, entry.ID) >= MaxConcurrentPerLecturer {
		return rejection(ReasonLimitExceeded, "")
	}
	conflicts := DetectConflicts(Candidate{
		Day:         entry.Day,
		TimeSlot:    entry.TimeSlot,
		LecturerIDs: []int64{actorID},
	}, existing, entry.ID)
	if len(conflicts) > 0 {
		return conflictRejection(conflicts)
	}
	return nil
}

// DirectEdit is the admin overwrite of a schedule entry: placement fields plus
// the two roster slots selected independently. The main slot doubles as PJMK.
type DirectEdit struct {
	CourseID       uint
	RoomID         uint
	ClassName      string
	Day            model.DayOfWeek
	TimeSlot       string
	MainLecturerID int64 // PJMK slot; 0 = none
	TeamLecturerID int64 // second member; 0 = none
}

// ApplyDirectEdit replaces an entry's placement and roster wholesale. It is
// not lock-gated and does not go through claim/join/release, but the full
// proposed tuple must still pass the conflict detector. Selecting the same
// lecturer for both slots is rejected before conflict detection.
func ApplyDirectEdit(entry model.ScheduleItem, edit DirectEdit, existing []model.ScheduleItem) (model.ScheduleItem, error) {
	if edit.MainLecturerID != 0 && edit.MainLecturerID == edit.TeamLecturerID {
		return entry, rejection(ReasonInvalidRoster, "main and team lecturer must differ")
	}

	members := make([]int64, 0, model.MaxTeamSize)
	if edit.MainLecturerID != 0 {
		members = append(members, edit.MainLecturerID)
	}
	if edit.TeamLecturerID != 0 {
		members = append(members, edit.TeamLecturerID)
	}
	roster, err := NewRoster(members, edit.MainLecturerID)
	if err != nil {
		return entry, err
	}

	conflicts := DetectConflicts(Candidate{
		Day:         edit.Day,
		TimeSlot:    edit.TimeSlot,
		RoomID:      edit.RoomID,
		ClassName:   edit.ClassName,
		LecturerIDs: roster.Members(),
	}, existing, entry.ID)
	if len(conflicts) > 0 {
		return entry, conflictRejection(conflicts)
	}

	entry.CourseID = edit.CourseID
	entry.RoomID = edit.RoomID
	entry.ClassName = edit.ClassName
	entry.Day = edit.Day
	entry.TimeSlot = edit.TimeSlot
	return roster.apply(entry), nil
}
