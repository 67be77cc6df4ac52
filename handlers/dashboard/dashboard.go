package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/services"
	"github.com/simpdb/simpdb-api/utils/response"
	"gorm.io/gorm"
)

// DashboardHandler serves the admin overview numbers.
type DashboardHandler struct {
	db       *gorm.DB
	settings *services.SettingsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		db:       db,
		settings: services.NewSettingsService(db),
	}
}

// DashboardStats is the admin overview payload
type DashboardStats struct {
	Lecturers       int64            `json:"lecturers"`
	Courses         int64            `json:"courses"`
	Rooms           int64            `json:"rooms"`
	Classes         int64            `json:"classes"`
	ScheduleEntries int64            `json:"schedule_entries"`
	OpenSlots       int64            `json:"open_slots"`
	FullTeams       int64            `json:"full_teams"`
	ScheduleLocked  bool             `json:"schedule_locked"`
	EntriesPerDay   map[string]int64 `json:"entries_per_day"`
	ByPosition      map[string]int64 `json:"lecturers_by_position"`
}

// GetDashboard handles GET /api/v1/admin/dashboard
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	stats := DashboardStats{
		EntriesPerDay: make(map[string]int64),
		ByPosition:    make(map[string]int64),
	}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.Lecturer{}, &stats.Lecturers},
		{&model.Course{}, &stats.Courses},
		{&model.Room{}, &stats.Rooms},
		{&model.ClassName{}, &stats.Classes},
		{&model.ScheduleItem{}, &stats.ScheduleEntries},
	}
	for _, count := range counts {
		if err := h.db.Model(count.model).Count(count.dest).Error; err != nil {
			return response.InternalServerError(c, "Failed to compute dashboard stats")
		}
	}

	if err := h.db.Model(&model.ScheduleItem{}).
		Where("cardinality(lecturer_ids) < ?", model.MaxTeamSize).
		Count(&stats.OpenSlots).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard stats")
	}

	if err := h.db.Model(&model.ScheduleItem{}).
		Where("cardinality(lecturer_ids) = ?", model.MaxTeamSize).
		Count(&stats.FullTeams).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard stats")
	}

	locked, err := h.settings.IsScheduleLocked()
	if err != nil {
		return response.InternalServerError(c, "Failed to read schedule lock")
	}
	stats.ScheduleLocked = locked

	var perDay []struct {
		Day   string
		Count int64
	}
	if err := h.db.Model(&model.ScheduleItem{}).
		Select("day, count(*) as count").
		Group("day").
		Scan(&perDay).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard stats")
	}
	for _, row := range perDay {
		stats.EntriesPerDay[row.Day] = row.Count
	}

	var perPosition []struct {
		Position string
		Count    int64
	}
	if err := h.db.Model(&model.Lecturer{}).
		Select("position, count(*) as count").
		Group("position").
		Scan(&perPosition).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard stats")
	}
	for _, row := range perPosition {
		position := row.Position
		if position == "" {
			position = "unassigned"
		}
		stats.ByPosition[position] = row.Count
	}

	return response.Success(c, stats)
}
