// Package scheduling implements the timetable conflict detector and the
// team-teaching allocation rules.
//
// Every operation is a pure function: it receives the full current snapshot of
// schedule entries as an argument, never mutates its inputs, and returns the
// newly computed entry for the caller to commit. The snapshot a client holds
// may be stale (the SPA polls on an interval and commits optimistically), so
// callers that want stronger guarantees re-run these checks against a fresh
// read inside the write path; the HTTP handlers in this repository do exactly
// that before persisting.
package scheduling

import (
	"fmt"
	"sort"

	"github.com/simpdb/simpdb-api/model"
)

// ConflictKind identifies which resource a candidate assignment collides on.
type ConflictKind string

const (
	ConflictRoom     ConflictKind = "room"
	ConflictClass    ConflictKind = "class"
	ConflictLecturer ConflictKind = "lecturer"
)

// MaxConcurrentPerLecturer caps how many entries at one (day, timeSlot) a
// single lecturer may teach. Two concurrent sections are allowed (team
// teaching across classes); a third is a conflict.
const MaxConcurrentPerLecturer = 2

// Conflict describes one collision between a candidate assignment and an
// existing schedule entry. ClassName is the colliding entry's class label so
// callers can render "room occupied by PDB03" style messages; LecturerID is
// set only for lecturer conflicts.
type Conflict struct {
	Kind       ConflictKind `json:"kind"`
	EntryID    uint         `json:"entry_id"`
	ClassName  string       `json:"class_name"`
	LecturerID int64        `json:"lecturer_id,omitempty"`
}

func (c Conflict) String() string {
	switch c.Kind {
	case ConflictRoom:
		return fmt.Sprintf("room occupied by %s", c.ClassName)
	case ConflictClass:
		return fmt.Sprintf("class %s already scheduled", c.ClassName)
	default:
		return fmt.Sprintf("lecturer %d already teaching %s", c.LecturerID, c.ClassName)
	}
}

// Candidate is a proposed assignment checked against the snapshot. A zero
// RoomID or empty ClassName skips that check (partial pre-validation during
// form entry); an empty LecturerIDs never produces a lecturer conflict.
type Candidate struct {
	Day         model.DayOfWeek
	TimeSlot    string
	RoomID      uint
	ClassName   string
	LecturerIDs []int64
}

// DetectConflicts reports every collision between the candidate and the
// entries sharing its (day, timeSlot). excludeID names the entry being edited
// so it is not compared against itself; pass 0 for a brand-new entry.
//
// The result is ordered room, class, then lecturer conflicts in ascending
// lecturer id, so identical inputs always yield an identical list. An empty
// result means the candidate is safe to commit; callers must refuse to
// persist while the list is non-empty.
func DetectConflicts(cand Candidate, existing []model.ScheduleItem, excludeID uint) []Conflict {
	var slot []model.ScheduleItem
	for _, e := range existing {
		if e.ID == excludeID {
			continue
		}
		if e.Day == cand.Day && e.TimeSlot == cand.TimeSlot {
			slot = append(slot, e)
		}
	}

	var conflicts []Conflict

	if cand.RoomID != 0 {
		for _, e := range slot {
			if e.RoomID == cand.RoomID {
				conflicts = append(conflicts, Conflict{
					Kind:      ConflictRoom,
					EntryID:   e.ID,
					ClassName: e.ClassName,
				})
				break
			}
		}
	}

	if cand.ClassName != "" {
		for _, e := range slot {
			if e.ClassName == cand.ClassName {
				conflicts = append(conflicts, Conflict{
					Kind:      ConflictClass,
					EntryID:   e.ID,
					ClassName: e.ClassName,
				})
				break
			}
		}
	}

	for _, lid := range sortedUnique(cand.LecturerIDs) {
		occupied := entriesWithLecturer(slot, lid)
		// A lecturer may hold up to MaxConcurrentPerLecturer concurrent
		// sections; only adding beyond the cap is a conflict.
		if len(occupied) >= MaxConcurrentPerLecturer {
			conflicts = append(conflicts, Conflict{
				Kind:       ConflictLecturer,
				EntryID:    occupied[0].ID,
				ClassName:  occupied[0].ClassName,
				LecturerID: lid,
			})
		}
	}

	return conflicts
}

// CountConcurrent returns how many entries at (day, timeSlot), other than
// excludeID, already include the lecturer. Used for the claim-time cap check.
func CountConcurrent(lecturerID int64, day model.DayOfWeek, timeSlot string, existing []model.ScheduleItem, excludeID uint) int {
	n := 0
	for _, e := range existing {
		if e.ID == excludeID || e.Day != day || e.TimeSlot != timeSlot {
			continue
		}
		if e.HasLecturer(lecturerID) {
			n++
		}
	}
	return n
}

func entriesWithLecturer(slot []model.ScheduleItem, lecturerID int64) []model.ScheduleItem {
	var out []model.ScheduleItem
	for _, e := range slot {
		if e.HasLecturer(lecturerID) {
			out = append(out, e)
		}
	}
	return out
}

func sortedUnique(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id != 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
