package course

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/response"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Code          string `json:"code" validate:"required,min=2,max=50"`
	Name          string `json:"name" validate:"required,min=3,max=255"`
	Credits       int    `json:"credits" validate:"required,min=1,max=10"`
	CoordinatorID *uint  `json:"coordinator_id" validate:"omitempty,min=1"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	Code          string `json:"code" validate:"omitempty,min=2,max=50"`
	Name          string `json:"name" validate:"omitempty,min=3,max=255"`
	Credits       *int   `json:"credits" validate:"omitempty,min=1,max=10"`
	CoordinatorID *uint  `json:"coordinator_id" validate:"omitempty,min=1"`
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	search := c.Query("search", "")

	query := h.db.Model(&model.Course{})

	if search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var courses []model.Course
	if err := query.Preload("Coordinator").
		Order("code").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.Preload("Coordinator").First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Code = validation.SanitizeString(req.Code)
	req.Name = validation.SanitizeString(req.Name)

	if req.CoordinatorID != nil {
		var lecturer model.Lecturer
		if err := h.db.First(&lecturer, *req.CoordinatorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return response.NotFound(c, "Coordinator lecturer not found")
			}
			return response.InternalServerError(c, "Failed to verify coordinator")
		}
	}

	// Check if course with same code already exists
	var existingCourse model.Course
	if err := h.db.Where("code = ?", req.Code).First(&existingCourse).Error; err == nil {
		return response.Conflict(c, "Course with this code already exists")
	}

	course := model.Course{
		Code:          req.Code,
		Name:          req.Name,
		Credits:       req.Credits,
		CoordinatorID: req.CoordinatorID,
	}

	if err := h.db.Create(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to create course")
	}

	h.db.Preload("Coordinator").First(&course, course.ID)

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	if req.Code != "" {
		// Check if code is already used by another course
		var existingCourse model.Course
		if err := h.db.Where("code = ? AND id != ?", req.Code, id).First(&existingCourse).Error; err == nil {
			return response.Conflict(c, "Course with this code already exists")
		}
		course.Code = validation.SanitizeString(req.Code)
	}

	if req.Name != "" {
		course.Name = validation.SanitizeString(req.Name)
	}

	if req.Credits != nil {
		course.Credits = *req.Credits
	}

	if req.CoordinatorID != nil {
		var lecturer model.Lecturer
		if err := h.db.First(&lecturer, *req.CoordinatorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return response.NotFound(c, "Coordinator lecturer not found")
			}
			return response.InternalServerError(c, "Failed to verify coordinator")
		}
		course.CoordinatorID = req.CoordinatorID
	}

	if err := h.db.Save(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to update course")
	}

	h.db.Preload("Coordinator").First(&course, course.ID)

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")

	var course model.Course
	if err := h.db.First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	// Check if course is scheduled
	var scheduleCount int64
	if err := h.db.Model(&model.ScheduleItem{}).Where("course_id = ?", id).Count(&scheduleCount).Error; err != nil {
		return response.InternalServerError(c, "Failed to check course dependencies")
	}

	if scheduleCount > 0 {
		return response.BadRequest(c, "Cannot delete course with existing schedule entries")
	}

	// Delete course (soft delete)
	if err := h.db.Delete(&course).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete course")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
