package portal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/scheduling"
	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/middleware"
	"github.com/simpdb/simpdb-api/utils/response"
	"gorm.io/gorm"
)

// PortalHandler handles lecturer self-service on the timetable: picking up
// open slots, joining a colleague's class and stepping back out. Every
// transition re-reads the schedule inside a transaction, so two lecturers
// racing for the same slot cannot both win.
type PortalHandler struct {
	db        *gorm.DB
	settings  *services.SettingsService
	snapshots *services.SnapshotService
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(db *gorm.DB) *PortalHandler {
	return &PortalHandler{
		db:        db,
		settings:  services.NewSettingsService(db),
		snapshots: services.NewSnapshotService(db),
	}
}

// ClaimRequest represents the request body for claiming an open slot. AsPJMK
// is an explicit choice: false defers the coordinator role to whoever joins.
type ClaimRequest struct {
	AsPJMK bool `json:"as_pjmk"`
}

// MySchedule handles GET /api/v1/portal/schedule. Returns the lecturer's own
// entries plus their SKS workload recap.
func (h *PortalHandler) MySchedule(c *fiber.Ctx) error {
	lecturerID, ok := middleware.GetLecturerID(c)
	if !ok {
		return response.Forbidden(c, "No lecturer record linked to this account")
	}

	var items []model.ScheduleItem
	if err := h.db.Preload("Course").Preload("Room").
		Where("? = ANY(lecturer_ids)", lecturerID).
		Order("id").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch schedule")
	}

	var courses []model.Course
	if err := h.db.Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	var logs []model.TeachingLog
	if err := h.db.Where("lecturer_id = ?", lecturerID).Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch teaching logs")
	}

	workload := services.ComputeWorkload(lecturerID, items, courses, logs)

	return response.Success(c, fiber.Map{
		"schedule": items,
		"workload": workload,
	})
}

// OpenSlots handles GET /api/v1/portal/open-slots. Lists entries that still
// have room on the teaching team.
func (h *PortalHandler) OpenSlots(c *fiber.Ctx) error {
	var items []model.ScheduleItem
	if err := h.db.Preload("Course").Preload("Room").
		Where("cardinality(lecturer_ids) < ?", model.MaxTeamSize).
		Order("id").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch open slots")
	}
	return response.Success(c, items)
}

// ClaimSlot handles POST /api/v1/portal/schedule/:id/claim
func (h *PortalHandler) ClaimSlot(c *fiber.Ctx) error {
	var req ClaimRequest
	// An empty body means a plain claim without the PJMK role
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	return h.transition(c, func(entry model.ScheduleItem, actorID int64, existing []model.ScheduleItem, locked bool) (model.ScheduleItem, error) {
		return scheduling.Claim(entry, actorID, req.AsPJMK, existing, locked)
	}, "Slot claimed successfully")
}

// JoinSlot handles POST /api/v1/portal/schedule/:id/join
func (h *PortalHandler) JoinSlot(c *fiber.Ctx) error {
	return h.transition(c, scheduling.Join, "Joined teaching team successfully")
}

// ReleaseSlot handles POST /api/v1/portal/schedule/:id/release
func (h *PortalHandler) ReleaseSlot(c *fiber.Ctx) error {
	return h.transition(c, releaseTransition, "Released slot successfully")
}

// releaseTransition adapts the release rules to the shared transition
// callback. Releasing needs no conflict scan, so the snapshot is unused.
func releaseTransition(entry model.ScheduleItem, actorID int64, _ []model.ScheduleItem, locked bool) (model.ScheduleItem, error) {
	return scheduling.Release(entry, actorID, locked)
}

// transition runs one engine transition on the entry in the :id param,
// re-reading entry and schedule inside a transaction.
func (h *PortalHandler) transition(
	c *fiber.Ctx,
	apply func(model.ScheduleItem, int64, []model.ScheduleItem, bool) (model.ScheduleItem, error),
	message string,
) error {
	lecturerID, ok := middleware.GetLecturerID(c)
	if !ok {
		return response.Forbidden(c, "No lecturer record linked to this account")
	}
	id := c.Params("id")

	locked, err := h.settings.IsScheduleLocked()
	if err != nil {
		return response.InternalServerError(c, "Failed to read schedule lock")
	}

	var updated model.ScheduleItem
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		var entry model.ScheduleItem
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}

		var existing []model.ScheduleItem
		if err := tx.Order("id").Find(&existing).Error; err != nil {
			return err
		}

		next, err := apply(entry, int64(lecturerID), existing, locked)
		if err != nil {
			return err
		}

		// Save writes all fields including the emptied roster on release
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = next
		return nil
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Schedule entry not found")
		}
		return response.TransitionRejected(c, txErr)
	}

	updated = h.snapshots.ReloadEntry(updated)

	return response.SuccessWithMessage(c, message, updated)
}
