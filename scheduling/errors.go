package scheduling

import (
	"fmt"
	"strings"
)

// Reason classifies why a transition or edit was rejected.
type Reason string

const (
	// ReasonConflict means the conflict detector found collisions; see
	// TransitionError.Conflicts for the full list.
	ReasonConflict Reason = "conflict_detected"
	// ReasonLimitExceeded means the acting lecturer already teaches the
	// maximum number of concurrent classes at that day/time.
	ReasonLimitExceeded Reason = "schedule_limit_exceeded"
	// ReasonLocked means the global schedule lock forbids self-service
	// transitions.
	ReasonLocked Reason = "schedule_locked"
	// ReasonAlreadyFull means the entry already has a full teaching team.
	ReasonAlreadyFull Reason = "already_full"
	// ReasonNotAMember means a release was attempted by a lecturer who is
	// not on the entry's roster.
	ReasonNotAMember Reason = "not_a_member"
	// ReasonInvalidRoster means the proposed roster itself is malformed:
	// duplicate lecturer, coordinator outside the roster, or a transition
	// applied to a roster state it does not accept.
	ReasonInvalidRoster Reason = "invalid_roster"
)

// TransitionError is the typed rejection returned by every engine operation.
// The entry passed in is never mutated; callers surface the reason to the
// actor and resubmit a corrected request.
type TransitionError struct {
	Reason    Reason
	Conflicts []Conflict
	Detail    string
}

func (e *TransitionError) Error() string {
	if len(e.Conflicts) > 0 {
		msgs := make([]string, len(e.Conflicts))
		for i, c := range e.Conflicts {
			msgs[i] = c.String()
		}
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(msgs, "; "))
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}
	return string(e.Reason)
}

// Is supports errors.Is against another *TransitionError by reason.
func (e *TransitionError) Is(target error) bool {
	t, ok := target.(*TransitionError)
	return ok && t.Reason == e.Reason
}

func rejection(reason Reason, detail string) *TransitionError {
	return &TransitionError{Reason: reason, Detail: detail}
}

func conflictRejection(conflicts []Conflict) *TransitionError {
	return &TransitionError{Reason: ReasonConflict, Conflicts: conflicts}
}
