package scheduling

import (
	"fmt"

	"github.com/simpdb/simpdb-api/model"
)

// Roster is the teaching team of one schedule entry: at most two member slots
// plus the coordinator-of-record (PJMK). A zero id means an empty slot / no
// coordinator. All mutation goes through the methods below so the invariants
// (cap of two, no duplicates, coordinator always a member) hold everywhere
// instead of being re-derived at each call site.
type Roster struct {
	members     [model.MaxTeamSize]int64
	coordinator int64
}

// NewRoster builds a roster from raw ids, validating the cap, duplicates and
// coordinator membership.
func NewRoster(memberIDs []int64, coordinator int64) (Roster, error) {
	var r Roster
	if len(memberIDs) > model.MaxTeamSize {
		return r, rejection(ReasonInvalidRoster, fmt.Sprintf("at most %d lecturers per entry", model.MaxTeamSize))
	}
	for _, id := range memberIDs {
		if id == 0 {
			continue
		}
		if err := r.Add(id); err != nil {
			return Roster{}, err
		}
	}
	if coordinator != 0 {
		if err := r.SetCoordinator(coordinator); err != nil {
			return Roster{}, err
		}
	}
	return r, nil
}

// RosterOf reads the roster out of a schedule entry.
func RosterOf(entry model.ScheduleItem) (Roster, error) {
	return NewRoster(entry.LecturerIDs, entry.PJMKLecturerID)
}

// Members returns the occupied member ids in slot order.
func (r Roster) Members() []int64 {
	out := make([]int64, 0, model.MaxTeamSize)
	for _, id := range r.members {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// Coordinator returns the PJMK lecturer id, or 0 when none is designated.
func (r Roster) Coordinator() int64 { return r.coordinator }

// Len returns the number of occupied member slots.
func (r Roster) Len() int { return len(r.Members()) }

// IsFull reports whether both member slots are taken.
func (r Roster) IsFull() bool { return r.Len() == model.MaxTeamSize }

// Contains reports whether the lecturer occupies a member slot.
func (r Roster) Contains(id int64) bool {
	for _, m := range r.members {
		if m != 0 && m == id {
			return true
		}
	}
	return false
}

// Add places the lecturer in the first free slot.
func (r *Roster) Add(id int64) error {
	if id == 0 {
		return rejection(ReasonInvalidRoster, "lecturer id required")
	}
	if r.Contains(id) {
		return rejection(ReasonInvalidRoster, "lecturer already on this entry")
	}
	for i := range r.members {
		if r.members[i] == 0 {
			r.members[i] = id
			return nil
		}
	}
	return rejection(ReasonAlreadyFull, "")
}

// Remove drops the lecturer from the roster, compacting the slots. If the
// removed lecturer was the coordinator, the role transfers to the remaining
// member or is cleared when nobody remains.
func (r *Roster) Remove(id int64) error {
	if !r.Contains(id) {
		return rejection(ReasonNotAMember, "")
	}
	kept := make([]int64, 0, model.MaxTeamSize)
	for _, m := range r.members {
		if m != 0 && m != id {
			kept = append(kept, m)
		}
	}
	r.members = [model.MaxTeamSize]int64{}
	copy(r.members[:], kept)
	if r.coordinator == id {
		if len(kept) > 0 {
			r.coordinator = kept[0]
		} else {
			r.coordinator = 0
		}
	}
	return nil
}

// SetCoordinator designates an existing member as PJMK.
func (r *Roster) SetCoordinator(id int64) error {
	if !r.Contains(id) {
		return rejection(ReasonInvalidRoster, "coordinator must be a roster member")
	}
	r.coordinator = id
	return nil
}

// apply writes the roster back onto a copy of the entry.
func (r Roster) apply(entry model.ScheduleItem) model.ScheduleItem {
	entry.LecturerIDs = r.Members()
	entry.PJMKLecturerID = r.coordinator
	return entry
}
