package attendance

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/middleware"
	"github.com/simpdb/simpdb-api/utils/response"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceHandler handles teaching-log records: which weeks a lecturer
// actually taught each of their scheduled classes. The logs feed the SKS
// honor recap.
type AttendanceHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// RecordAttendanceRequest represents the request body for logging a taught week
type RecordAttendanceRequest struct {
	ScheduleID uint   `json:"schedule_id" validate:"required,min=1"`
	Week       int    `json:"week" validate:"required,min=1,max=16"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ListMyLogs handles GET /api/v1/portal/attendance. Optionally filtered by
// schedule entry.
func (h *AttendanceHandler) ListMyLogs(c *fiber.Ctx) error {
	lecturerID, ok := middleware.GetLecturerID(c)
	if !ok {
		return response.Forbidden(c, "No lecturer record linked to this account")
	}

	query := h.db.Where("lecturer_id = ?", lecturerID)
	if scheduleID := c.Query("schedule_id", ""); scheduleID != "" {
		query = query.Where("schedule_id = ?", scheduleID)
	}

	var logs []model.TeachingLog
	if err := query.Order("schedule_id, week").Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch teaching logs")
	}

	return response.Success(c, logs)
}

// RecordAttendance handles POST /api/v1/portal/attendance. Upserts on
// (schedule, lecturer, week), so re-submitting a week just refreshes the date.
func (h *AttendanceHandler) RecordAttendance(c *fiber.Ctx) error {
	lecturerID, ok := middleware.GetLecturerID(c)
	if !ok {
		return response.Forbidden(c, "No lecturer record linked to this account")
	}

	var req RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}
	if req.Week < 1 || req.Week > model.WeeksPerTerm {
		return response.BadRequest(c, fmt.Sprintf("Week must be between 1 and %d", model.WeeksPerTerm))
	}

	var entry model.ScheduleItem
	if err := h.db.First(&entry, req.ScheduleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Schedule entry not found")
		}
		return response.InternalServerError(c, "Failed to fetch schedule entry")
	}

	// Only team members log attendance for an entry
	if !entry.HasLecturer(int64(lecturerID)) {
		return response.Forbidden(c, "You are not assigned to this schedule entry")
	}

	logEntry := model.TeachingLog{
		ScheduleID: req.ScheduleID,
		LecturerID: lecturerID,
		Week:       req.Week,
		Date:       req.Date,
	}

	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "schedule_id"}, {Name: "lecturer_id"}, {Name: "week"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "updated_at"}),
	}).Create(&logEntry).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to record attendance")
	}

	return response.Created(c, logEntry)
}

// DeleteAttendance handles DELETE /api/v1/portal/attendance/:id. Lecturers
// can only remove their own logs.
func (h *AttendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	lecturerID, ok := middleware.GetLecturerID(c)
	if !ok {
		return response.Forbidden(c, "No lecturer record linked to this account")
	}
	id := c.Params("id")

	var logEntry model.TeachingLog
	if err := h.db.First(&logEntry, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Teaching log not found")
		}
		return response.InternalServerError(c, "Failed to fetch teaching log")
	}

	if logEntry.LecturerID != lecturerID {
		return response.Forbidden(c, "You can only delete your own teaching logs")
	}

	if err := h.db.Unscoped().Delete(&logEntry).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete teaching log")
	}

	return response.SuccessWithMessage(c, "Teaching log deleted successfully", nil)
}

// ListLogs handles GET /api/v1/attendance for admin monitoring, filtered by
// lecturer and/or schedule entry.
func (h *AttendanceHandler) ListLogs(c *fiber.Ctx) error {
	query := h.db.Model(&model.TeachingLog{})

	if lecturerID := c.Query("lecturer_id", ""); lecturerID != "" {
		query = query.Where("lecturer_id = ?", lecturerID)
	}
	if scheduleID := c.Query("schedule_id", ""); scheduleID != "" {
		query = query.Where("schedule_id = ?", scheduleID)
	}
	if week := c.Query("week", ""); week != "" {
		query = query.Where("week = ?", week)
	}

	var logs []model.TeachingLog
	if err := query.Order("lecturer_id, schedule_id, week").Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch teaching logs")
	}

	return response.Success(c, logs)
}
