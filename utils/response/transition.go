package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/scheduling"
)

// TransitionRejected maps a scheduling rejection to the matching HTTP
// response. Conflicts carry the detected collision list so the client can
// show exactly what blocked the request. Non-transition errors fall through
// to a 500.
func TransitionRejected(c *fiber.Ctx, err error) error {
	var terr *scheduling.TransitionError
	if !errors.As(err, &terr) {
		return InternalServerError(c, "Failed to update schedule")
	}

	switch terr.Reason {
	case scheduling.ReasonConflict:
		return ConflictWithDetails(c, "Schedule conflict detected", terr.Conflicts)
	case scheduling.ReasonLocked:
		return Locked(c, "Schedule changes are currently locked")
	case scheduling.ReasonLimitExceeded:
		return Conflict(c, "Lecturer already teaches the maximum concurrent classes at this time")
	case scheduling.ReasonAlreadyFull:
		return Conflict(c, "Teaching team for this entry is already full")
	case scheduling.ReasonNotAMember:
		return BadRequest(c, "Lecturer is not assigned to this entry")
	case scheduling.ReasonInvalidRoster:
		msg := "Invalid teaching team"
		if terr.Detail != "" {
			msg = "Invalid teaching team: " + terr.Detail
		}
		return BadRequest(c, msg)
	default:
		return BadRequest(c, terr.Error())
	}
}
