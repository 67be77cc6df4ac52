package schedule

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/scheduling"
	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/middleware"
	"github.com/simpdb/simpdb-api/utils/response"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
)

// ScheduleHandler handles the admin timetable CRUD. Every write goes through
// the conflict detector against a fresh read of the schedule, so a stale
// client snapshot cannot slip a collision in. Admin edits bypass the schedule
// lock; that lock only gates lecturer self-service.
type ScheduleHandler struct {
	db        *gorm.DB
	validator *validation.Validator
	snapshots *services.SnapshotService
	audit     *services.AuditService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{
		db:        db,
		validator: validation.NewValidator(),
		snapshots: services.NewSnapshotService(db),
		audit:     services.NewAuditService(db),
	}
}

// ScheduleEntryRequest represents the request body for creating or replacing
// a schedule entry. MainLecturerID fills the PJMK slot; both lecturer fields
// are optional so entries can be published as open slots.
type ScheduleEntryRequest struct {
	CourseID       uint   `json:"course_id" validate:"required,min=1"`
	RoomID         uint   `json:"room_id" validate:"required,min=1"`
	ClassName      string `json:"class_name" validate:"required,min=2,max=50"`
	Day            string `json:"day" validate:"required"`
	TimeSlot       string `json:"time_slot" validate:"required"`
	MainLecturerID int64  `json:"main_lecturer_id" validate:"omitempty,min=1"`
	TeamLecturerID int64  `json:"team_lecturer_id" validate:"omitempty,min=1"`
}

// ListSchedule handles GET /api/v1/schedule
func (h *ScheduleHandler) ListSchedule(c *fiber.Ctx) error {
	day := c.Query("day", "")
	className := c.Query("class_name", "")
	courseID := c.Query("course_id", "")
	lecturerID := c.Query("lecturer_id", "")

	query := h.db.Model(&model.ScheduleItem{})

	if day != "" {
		query = query.Where("day = ?", day)
	}
	if className != "" {
		query = query.Where("class_name = ?", className)
	}
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if lecturerID != "" {
		id, err := strconv.ParseInt(lecturerID, 10, 64)
		if err != nil {
			return response.BadRequest(c, "Invalid lecturer_id")
		}
		query = query.Where("? = ANY(lecturer_ids)", id)
	}

	var items []model.ScheduleItem
	if err := query.Preload("Course").Preload("Room").
		Order("id").
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch schedule")
	}

	return response.Success(c, items)
}

// GetScheduleEntry handles GET /api/v1/schedule/:id
func (h *ScheduleHandler) GetScheduleEntry(c *fiber.Ctx) error {
	id := c.Params("id")

	var item model.ScheduleItem
	if err := h.db.Preload("Course").Preload("Room").First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Schedule entry not found")
		}
		return response.InternalServerError(c, "Failed to fetch schedule entry")
	}

	return response.Success(c, item)
}

// CreateScheduleEntry handles POST /api/v1/schedule
func (h *ScheduleHandler) CreateScheduleEntry(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	req, err := h.parseEntryRequest(c)
	if err != nil {
		return err
	}

	existing, loadErr := h.snapshots.LoadSchedule()
	if loadErr != nil {
		return response.InternalServerError(c, "Failed to load schedule")
	}

	item, terr := scheduling.ApplyDirectEdit(model.ScheduleItem{}, editOf(req), existing)
	if terr != nil {
		return response.TransitionRejected(c, terr)
	}

	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to create schedule entry")
	}

	h.audit.Record(user.ID, "create", "schedule", item.ID, nil, item, c.IP(),
		"Created schedule entry")

	item = h.snapshots.ReloadEntry(item)

	return response.Created(c, item)
}

// UpdateScheduleEntry handles PUT /api/v1/schedule/:id. The whole entry is
// replaced: placement fields plus both roster slots.
func (h *ScheduleHandler) UpdateScheduleEntry(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	id := c.Params("id")

	req, err := h.parseEntryRequest(c)
	if err != nil {
		return err
	}

	var item model.ScheduleItem
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Schedule entry not found")
		}
		return response.InternalServerError(c, "Failed to fetch schedule entry")
	}
	old := item

	existing, loadErr := h.snapshots.LoadSchedule()
	if loadErr != nil {
		return response.InternalServerError(c, "Failed to load schedule")
	}

	updated, terr := scheduling.ApplyDirectEdit(item, editOf(req), existing)
	if terr != nil {
		return response.TransitionRejected(c, terr)
	}

	if err := h.db.Save(&updated).Error; err != nil {
		return response.InternalServerError(c, "Failed to update schedule entry")
	}

	h.audit.Record(user.ID, "update", "schedule", updated.ID, old, updated, c.IP(),
		"Updated schedule entry")

	updated = h.snapshots.ReloadEntry(updated)

	return response.SuccessWithMessage(c, "Schedule entry updated successfully", updated)
}

// DeleteScheduleEntry handles DELETE /api/v1/schedule/:id
func (h *ScheduleHandler) DeleteScheduleEntry(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	id := c.Params("id")

	var item model.ScheduleItem
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Schedule entry not found")
		}
		return response.InternalServerError(c, "Failed to fetch schedule entry")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Teaching logs for the entry go with it
		if err := tx.Where("schedule_id = ?", item.ID).Delete(&model.TeachingLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete schedule entry")
	}

	h.audit.Record(user.ID, "delete", "schedule", item.ID, item, nil, c.IP(),
		"Deleted schedule entry")

	return response.SuccessWithMessage(c, "Schedule entry deleted successfully", nil)
}

// parseEntryRequest parses, validates and reference-checks the entry payload.
// A non-nil error is already a written response.
func (h *ScheduleHandler) parseEntryRequest(c *fiber.Ctx) (*ScheduleEntryRequest, error) {
	var req ScheduleEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, response.ValidationError(c, err)
	}

	req.ClassName = validation.SanitizeString(req.ClassName)

	if !model.IsValidDay(model.DayOfWeek(req.Day)) {
		return nil, response.BadRequest(c, "Invalid day")
	}
	if !model.IsValidTimeSlot(req.TimeSlot) {
		return nil, response.BadRequest(c, "Invalid time slot")
	}

	var course model.Course
	if err := h.db.First(&course, req.CourseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NotFound(c, "Course not found")
		}
		return nil, response.InternalServerError(c, "Failed to verify course")
	}

	var room model.Room
	if err := h.db.First(&room, req.RoomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NotFound(c, "Room not found")
		}
		return nil, response.InternalServerError(c, "Failed to verify room")
	}

	var class model.ClassName
	if err := h.db.Where("name = ?", req.ClassName).First(&class).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NotFound(c, "Class not found")
		}
		return nil, response.InternalServerError(c, "Failed to verify class")
	}

	for _, lecturerID := range []int64{req.MainLecturerID, req.TeamLecturerID} {
		if lecturerID == 0 {
			continue
		}
		var lecturer model.Lecturer
		if err := h.db.First(&lecturer, lecturerID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, response.NotFound(c, "Lecturer not found")
			}
			return nil, response.InternalServerError(c, "Failed to verify lecturer")
		}
	}

	return &req, nil
}

func editOf(req *ScheduleEntryRequest) scheduling.DirectEdit {
	return scheduling.DirectEdit{
		CourseID:       req.CourseID,
		RoomID:         req.RoomID,
		ClassName:      req.ClassName,
		Day:            model.DayOfWeek(req.Day),
		TimeSlot:       req.TimeSlot,
		MainLecturerID: req.MainLecturerID,
		TeamLecturerID: req.TeamLecturerID,
	}
}
