package room

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/response"
	"github.com/simpdb/simpdb-api/utils/validation"
	"gorm.io/gorm"
)

// RoomHandler handles room-related requests
type RoomHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(db *gorm.DB) *RoomHandler {
	return &RoomHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateRoomRequest represents the request body for creating a room
type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Capacity int    `json:"capacity" validate:"omitempty,min=0,max=1000"`
	Building string `json:"building" validate:"omitempty,max=100"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// UpdateRoomRequest represents the request body for updating a room
type UpdateRoomRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=255"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=0,max=1000"`
	Building string `json:"building" validate:"omitempty,max=100"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// ListRooms handles GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	search := c.Query("search", "")

	query := h.db.Model(&model.Room{})

	if search != "" {
		query = query.Where("name ILIKE ? OR building ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count rooms")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var rooms []model.Room
	if err := query.Order("name").
		Limit(limit).
		Offset(offset).
		Find(&rooms).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch rooms")
	}

	return response.Paginated(c, rooms, pagination)
}

// GetRoom handles GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *fiber.Ctx) error {
	id := c.Params("id")

	var room model.Room
	if err := h.db.First(&room, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to fetch room")
	}

	return response.Success(c, room)
}

// CreateRoom handles POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Building = validation.SanitizeString(req.Building)
	req.Location = validation.SanitizeString(req.Location)

	// Check if room with same name already exists
	var existingRoom model.Room
	if err := h.db.Where("name = ?", req.Name).First(&existingRoom).Error; err == nil {
		return response.Conflict(c, "Room with this name already exists")
	}

	room := model.Room{
		Name:     req.Name,
		Capacity: req.Capacity,
		Building: req.Building,
		Location: req.Location,
	}

	if err := h.db.Create(&room).Error; err != nil {
		return response.InternalServerError(c, "Failed to create room")
	}

	return response.Created(c, room)
}

// UpdateRoom handles PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var room model.Room
	if err := h.db.First(&room, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to fetch room")
	}

	if req.Name != "" {
		var existingRoom model.Room
		if err := h.db.Where("name = ? AND id != ?", req.Name, id).First(&existingRoom).Error; err == nil {
			return response.Conflict(c, "Room with this name already exists")
		}
		room.Name = validation.SanitizeString(req.Name)
	}

	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}

	if req.Building != "" {
		room.Building = validation.SanitizeString(req.Building)
	}

	if req.Location != "" {
		room.Location = validation.SanitizeString(req.Location)
	}

	if err := h.db.Save(&room).Error; err != nil {
		return response.InternalServerError(c, "Failed to update room")
	}

	return response.SuccessWithMessage(c, "Room updated successfully", room)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	id := c.Params("id")

	var room model.Room
	if err := h.db.First(&room, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Room not found")
		}
		return response.InternalServerError(c, "Failed to fetch room")
	}

	// Check if room is still scheduled
	var scheduleCount int64
	if err := h.db.Model(&model.ScheduleItem{}).Where("room_id = ?", id).Count(&scheduleCount).Error; err != nil {
		return response.InternalServerError(c, "Failed to check room dependencies")
	}

	if scheduleCount > 0 {
		return response.BadRequest(c, "Cannot delete room with existing schedule entries")
	}

	if err := h.db.Delete(&room).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete room")
	}

	return response.SuccessWithMessage(c, "Room deleted successfully", nil)
}
