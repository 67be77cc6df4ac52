package class

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/response"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
)

// ClassHandler handles class-section label requests
type ClassHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewClassHandler creates a new class handler
func NewClassHandler(db *gorm.DB) *ClassHandler {
	return &ClassHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateClassRequest represents the request body for creating a class section
type CreateClassRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// BulkCreateClassRequest represents the request body for bulk class creation
type BulkCreateClassRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=500,dive,min=2,max=50"`
}

// BulkCreateResult reports how a bulk import went
type BulkCreateResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped"` // names that already existed
}

// ListClasses handles GET /api/v1/classes. The list is small and bounded, so
// it is returned whole.
func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	var classes []model.ClassName
	if err := h.db.Order("name").Find(&classes).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch classes")
	}
	return response.Success(c, classes)
}

// CreateClass handles POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	var existing model.ClassName
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Class with this name already exists")
	}

	class := model.ClassName{Name: req.Name}
	if err := h.db.Create(&class).Error; err != nil {
		return response.InternalServerError(c, "Failed to create class")
	}

	return response.Created(c, class)
}

// BulkCreateClasses handles POST /api/v1/classes/bulk. Existing names are
// skipped, not treated as errors.
func (h *ClassHandler) BulkCreateClasses(c *fiber.Ctx) error {
	var req BulkCreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var existing []model.ClassName
	if err := h.db.Find(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch existing classes")
	}
	taken := make(map[string]bool, len(existing))
	for _, cls := range existing {
		taken[cls.Name] = true
	}

	result := BulkCreateResult{Skipped: []string{}}
	toCreate := make([]model.ClassName, 0, len(req.Names))
	for _, name := range req.Names {
		name = validation.SanitizeString(name)
		if name == "" {
			continue
		}
		if taken[name] {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		taken[name] = true
		toCreate = append(toCreate, model.ClassName{Name: name})
	}

	if len(toCreate) > 0 {
		if err := h.db.CreateInBatches(toCreate, 50).Error; err != nil {
			return response.InternalServerError(c, "Failed to create classes")
		}
	}
	result.Created = len(toCreate)

	return response.Created(c, result)
}

// ClearClasses handles DELETE /api/v1/classes. Removes every class section
// that no schedule entry references; sections in use stay.
func (h *ClassHandler) ClearClasses(c *fiber.Ctx) error {
	var inUse []string
	if err := h.db.Model(&model.ScheduleItem{}).
		Distinct("class_name").
		Pluck("class_name", &inUse).Error; err != nil {
		return response.InternalServerError(c, "Failed to check class usage")
	}

	query := h.db.Model(&model.ClassName{})
	if len(inUse) > 0 {
		query = query.Where("name NOT IN ?", inUse)
	}

	res := query.Delete(&model.ClassName{})
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to clear classes")
	}

	return response.SuccessWithMessage(c, "Classes cleared", fiber.Map{
		"deleted": res.RowsAffected,
		"kept":    len(inUse),
	})
}

// DeleteClass handles DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *fiber.Ctx) error {
	id := c.Params("id")

	var class model.ClassName
	if err := h.db.First(&class, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Class not found")
		}
		return response.InternalServerError(c, "Failed to fetch class")
	}

	// Schedule entries reference classes by name
	var scheduleCount int64
	if err := h.db.Model(&model.ScheduleItem{}).Where("class_name = ?", class.Name).Count(&scheduleCount).Error; err != nil {
		return response.InternalServerError(c, "Failed to check class dependencies")
	}

	if scheduleCount > 0 {
		return response.BadRequest(c, "Cannot delete class with existing schedule entries")
	}

	if err := h.db.Delete(&class).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete class")
	}

	return response.SuccessWithMessage(c, "Class deleted successfully", nil)
}
