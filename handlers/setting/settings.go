package setting

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/middleware"
	"github.com/simpdb/simpdb-api/utils/response"
	"gorm.io/gorm"
)

// SettingHandler handles application settings, most importantly the schedule
// lock that freezes lecturer self-service.
type SettingHandler struct {
	db       *gorm.DB
	settings *services.SettingsService
	audit    *services.AuditService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{
		db:       db,
		settings: services.NewSettingsService(db),
		audit:    services.NewAuditService(db),
	}
}

// SetScheduleLockRequest represents the request body for toggling the lock
type SetScheduleLockRequest struct {
	Locked bool `json:"locked"`
}

// ListPublicSettings handles GET /api/v1/settings. Public, so the SPA can
// read the lock state before login.
func (h *SettingHandler) ListPublicSettings(c *fiber.Ctx) error {
	settings, err := h.settings.List(true)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}
	return response.Success(c, settings)
}

// ListAllSettings handles GET /api/v1/admin/settings
func (h *SettingHandler) ListAllSettings(c *fiber.Ctx) error {
	settings, err := h.settings.List(false)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}
	return response.Success(c, settings)
}

// GetScheduleLock handles GET /api/v1/settings/schedule-lock
func (h *SettingHandler) GetScheduleLock(c *fiber.Ctx) error {
	locked, err := h.settings.IsScheduleLocked()
	if err != nil {
		return response.InternalServerError(c, "Failed to read schedule lock")
	}
	return response.Success(c, fiber.Map{"locked": locked})
}

// SetScheduleLock handles PUT /api/v1/admin/settings/schedule-lock
func (h *SettingHandler) SetScheduleLock(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req SetScheduleLockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	wasLocked, err := h.settings.IsScheduleLocked()
	if err != nil {
		return response.InternalServerError(c, "Failed to read schedule lock")
	}

	setting, err := h.settings.SetScheduleLock(req.Locked)
	if err != nil {
		return response.InternalServerError(c, "Failed to update schedule lock")
	}

	h.audit.Record(user.ID, "update", "setting", setting.ID,
		fiber.Map{"locked": wasLocked}, fiber.Map{"locked": req.Locked}, c.IP(),
		"Toggled schedule lock")

	return response.SuccessWithMessage(c, "Schedule lock updated", setting)
}
