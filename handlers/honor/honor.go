package honor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/middleware"
	"github.com/simpdb/simpdb-api/utils/response"
	"gorm.io/gorm"
)

// HonorHandler serves the SKS workload recap: planned load from the timetable
// versus realized load from the teaching logs.
type HonorHandler struct {
	db *gorm.DB
}

// NewHonorHandler creates a new honor handler
func NewHonorHandler(db *gorm.DB) *HonorHandler {
	return &HonorHandler{db: db}
}

// LecturerRecap pairs a workload with the lecturer's identity for the
// admin recap table.
type LecturerRecap struct {
	services.LecturerWorkload
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Position string `json:"position"`
}

// GetRecap handles GET /api/v1/honor. Admin view over every lecturer.
func (h *HonorHandler) GetRecap(c *fiber.Ctx) error {
	var lecturers []model.Lecturer
	if err := h.db.Order("name").Find(&lecturers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch lecturers")
	}

	schedule, courses, logs, err := h.loadDataset()
	if err != nil {
		return response.InternalServerError(c, "Failed to load recap dataset")
	}

	recaps := make([]LecturerRecap, 0, len(lecturers))
	for _, lecturer := range lecturers {
		recaps = append(recaps, LecturerRecap{
			LecturerWorkload: services.ComputeWorkload(lecturer.ID, schedule, courses, logs),
			Name:             lecturer.Name,
			NIP:              lecturer.NIP,
			Position:         lecturer.Position,
		})
	}

	return response.Success(c, recaps)
}

// GetMyRecap handles GET /api/v1/portal/honor for the authenticated lecturer.
func (h *HonorHandler) GetMyRecap(c *fiber.Ctx) error {
	lecturerID, ok := middleware.GetLecturerID(c)
	if !ok {
		return response.Forbidden(c, "No lecturer record linked to this account")
	}

	schedule, courses, logs, err := h.loadDataset()
	if err != nil {
		return response.InternalServerError(c, "Failed to load recap dataset")
	}

	return response.Success(c, services.ComputeWorkload(lecturerID, schedule, courses, logs))
}

func (h *HonorHandler) loadDataset() ([]model.ScheduleItem, []model.Course, []model.TeachingLog, error) {
	var schedule []model.ScheduleItem
	if err := h.db.Find(&schedule).Error; err != nil {
		return nil, nil, nil, err
	}
	var courses []model.Course
	if err := h.db.Find(&courses).Error; err != nil {
		return nil, nil, nil, err
	}
	var logs []model.TeachingLog
	if err := h.db.Find(&logs).Error; err != nil {
		return nil, nil, nil, err
	}
	return schedule, courses, logs, nil
}
