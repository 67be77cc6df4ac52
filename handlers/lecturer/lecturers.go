package lecturer

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/auth"
	"github.com/simpdb/simpdb-api/utils/response"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
)

// LecturerHandler handles lecturer-related requests. Creating a lecturer also
// provisions their portal account: username and initial password are the NIP.
type LecturerHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewLecturerHandler creates a new lecturer handler
func NewLecturerHandler(db *gorm.DB) *LecturerHandler {
	return &LecturerHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateLecturerRequest represents the request body for creating a lecturer
type CreateLecturerRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=255"`
	NIP       string `json:"nip" validate:"required,min=6,max=30"`
	Position  string `json:"position" validate:"omitempty,max=100"`
	Expertise string `json:"expertise" validate:"omitempty,max=1000"`
}

// UpdateLecturerRequest represents the request body for updating a lecturer
type UpdateLecturerRequest struct {
	Name      string `json:"name" validate:"omitempty,min=3,max=255"`
	NIP       string `json:"nip" validate:"omitempty,min=6,max=30"`
	Position  string `json:"position" validate:"omitempty,max=100"`
	Expertise string `json:"expertise" validate:"omitempty,max=1000"`
}

// ListLecturers handles GET /api/v1/lecturers
func (h *LecturerHandler) ListLecturers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	search := c.Query("search", "")
	position := c.Query("position", "")

	query := h.db.Model(&model.Lecturer{})

	if search != "" {
		query = query.Where("name ILIKE ? OR nip ILIKE ? OR expertise ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if position != "" {
		query = query.Where("position = ?", position)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count lecturers")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var lecturers []model.Lecturer
	if err := query.Order("name").
		Limit(limit).
		Offset(offset).
		Find(&lecturers).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch lecturers")
	}

	return response.Paginated(c, lecturers, pagination)
}

// GetLecturer handles GET /api/v1/lecturers/:id
func (h *LecturerHandler) GetLecturer(c *fiber.Ctx) error {
	id := c.Params("id")

	var lecturer model.Lecturer
	if err := h.db.First(&lecturer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lecturer not found")
		}
		return response.InternalServerError(c, "Failed to fetch lecturer")
	}

	return response.Success(c, lecturer)
}

// CreateLecturer handles POST /api/v1/lecturers
func (h *LecturerHandler) CreateLecturer(c *fiber.Ctx) error {
	var req CreateLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)
	req.NIP = validation.SanitizeString(req.NIP)
	req.Position = validation.SanitizeString(req.Position)
	req.Expertise = validation.SanitizeString(req.Expertise)

	if !validation.ValidateNIP(req.NIP) {
		return response.BadRequest(c, "NIP must be 6 to 30 digits")
	}

	// Check if lecturer with same NIP already exists
	var existingLecturer model.Lecturer
	if err := h.db.Where("nip = ?", req.NIP).First(&existingLecturer).Error; err == nil {
		return response.Conflict(c, "Lecturer with this NIP already exists")
	}

	// NIP doubles as the username; refuse when an unrelated account holds it
	var existingUser model.User
	if err := h.db.Where("username = ?", req.NIP).First(&existingUser).Error; err == nil {
		return response.Conflict(c, "An account with this NIP already exists")
	}

	passwordHash, err := auth.HashPassword(req.NIP)
	if err != nil {
		return response.InternalServerError(c, "Failed to provision account")
	}

	lecturer := model.Lecturer{
		Name:      req.Name,
		NIP:       req.NIP,
		Position:  req.Position,
		Expertise: req.Expertise,
	}

	// Lecturer record and portal account are created atomically
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lecturer).Error; err != nil {
			return err
		}
		user := model.User{
			Username:     lecturer.NIP,
			PasswordHash: passwordHash,
			Name:         lecturer.Name,
			Role:         model.RoleLecturer,
			LecturerID:   &lecturer.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to create lecturer")
	}

	return response.Created(c, lecturer)
}

// UpdateLecturer handles PUT /api/v1/lecturers/:id
func (h *LecturerHandler) UpdateLecturer(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateLecturerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var lecturer model.Lecturer
	if err := h.db.First(&lecturer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lecturer not found")
		}
		return response.InternalServerError(c, "Failed to fetch lecturer")
	}

	oldNIP := lecturer.NIP

	if req.Name != "" {
		lecturer.Name = validation.SanitizeString(req.Name)
	}

	if req.NIP != "" && req.NIP != lecturer.NIP {
		req.NIP = validation.SanitizeString(req.NIP)
		if !validation.ValidateNIP(req.NIP) {
			return response.BadRequest(c, "NIP must be 6 to 30 digits")
		}
		var existingLecturer model.Lecturer
		if err := h.db.Where("nip = ? AND id != ?", req.NIP, id).First(&existingLecturer).Error; err == nil {
			return response.Conflict(c, "Lecturer with this NIP already exists")
		}
		lecturer.NIP = req.NIP
	}

	if req.Position != "" {
		lecturer.Position = validation.SanitizeString(req.Position)
	}

	if req.Expertise != "" {
		lecturer.Expertise = validation.SanitizeString(req.Expertise)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&lecturer).Error; err != nil {
			return err
		}
		// Keep the linked account's username and display name in sync
		updates := map[string]interface{}{"name": lecturer.Name}
		if lecturer.NIP != oldNIP {
			updates["username"] = lecturer.NIP
		}
		return tx.Model(&model.User{}).
			Where("lecturer_id = ?", lecturer.ID).
			Updates(updates).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to update lecturer")
	}

	return response.SuccessWithMessage(c, "Lecturer updated successfully", lecturer)
}

// DeleteLecturer handles DELETE /api/v1/lecturers/:id
func (h *LecturerHandler) DeleteLecturer(c *fiber.Ctx) error {
	id := c.Params("id")

	var lecturer model.Lecturer
	if err := h.db.First(&lecturer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lecturer not found")
		}
		return response.InternalServerError(c, "Failed to fetch lecturer")
	}

	// Check if the lecturer still teaches scheduled classes
	var scheduleCount int64
	if err := h.db.Model(&model.ScheduleItem{}).
		Where("? = ANY(lecturer_ids)", lecturer.ID).
		Count(&scheduleCount).Error; err != nil {
		return response.InternalServerError(c, "Failed to check lecturer dependencies")
	}

	if scheduleCount > 0 {
		return response.BadRequest(c, "Cannot delete lecturer with existing schedule entries")
	}

	// Lecturer and portal account go together (soft delete)
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lecturer_id = ?", lecturer.ID).Delete(&model.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lecturer).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete lecturer")
	}

	return response.SuccessWithMessage(c, "Lecturer deleted successfully", nil)
}

// ResetLecturerPassword handles POST /api/v1/lecturers/:id/reset-password.
// Resets the portal account password back to the lecturer's NIP.
func (h *LecturerHandler) ResetLecturerPassword(c *fiber.Ctx) error {
	id := c.Params("id")

	var lecturer model.Lecturer
	if err := h.db.First(&lecturer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lecturer not found")
		}
		return response.InternalServerError(c, "Failed to fetch lecturer")
	}

	var user model.User
	if err := h.db.Where("lecturer_id = ?", lecturer.ID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lecturer account not found")
		}
		return response.InternalServerError(c, "Failed to fetch lecturer account")
	}

	passwordHash, err := auth.HashPassword(lecturer.NIP)
	if err != nil {
		return response.InternalServerError(c, "Failed to reset password")
	}

	// New password plus token bump so stale sessions die
	err = h.db.Model(&user).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"token_version": gorm.Expr("token_version + 1"),
	}).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to reset password")
	}

	return response.SuccessWithMessage(c, "Password reset to NIP", nil)
}
