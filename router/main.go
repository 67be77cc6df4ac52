package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/simpdb/simpdb-api/database"
	"github.com/simpdb/simpdb-api/handlers"
	attendance_handlers "github.com/simpdb/simpdb-api/handlers/attendance"
	auth_handlers "github.com/simpdb/simpdb-api/handlers/auth"
	class_handlers "github.com/simpdb/simpdb-api/handlers/class"
	course_handlers "github.com/simpdb/simpdb-api/handlers/course"
	dashboard_handlers "github.com/simpdb/simpdb-api/handlers/dashboard"
	honor_handlers "github.com/simpdb/simpdb-api/handlers/honor"
	lecturer_handlers "github.com/simpdb/simpdb-api/handlers/lecturer"
	portal_handlers "github.com/simpdb/simpdb-api/handlers/portal"
	room_handlers "github.com/simpdb/simpdb-api/handlers/room"
	schedule_handlers "github.com/simpdb/simpdb-api/handlers/schedule"
	setting_handlers "github.com/simpdb/simpdb-api/handlers/setting"
	sync_handlers "github.com/simpdb/simpdb-api/handlers/sync"
	"github.com/simpdb/simpdb-api/utils/auth"
	"github.com/simpdb/simpdb-api/utils/cache"
	"github.com/simpdb/simpdb-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "simpdb-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := store.GetDB()

	// Initialize Redis cache for brute force protection and snapshot caching
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and snapshot caching will be disabled.", err)
		redisCache = nil
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	courseHandler := course_handlers.NewCourseHandler(db)
	lecturerHandler := lecturer_handlers.NewLecturerHandler(db)
	roomHandler := room_handlers.NewRoomHandler(db)
	classHandler := class_handlers.NewClassHandler(db)
	scheduleHandler := schedule_handlers.NewScheduleHandler(db)
	portalHandler := portal_handlers.NewPortalHandler(db)
	attendanceHandler := attendance_handlers.NewAttendanceHandler(db)
	honorHandler := honor_handlers.NewHonorHandler(db)
	settingHandler := setting_handlers.NewSettingHandler(db)
	syncHandler := sync_handlers.NewSyncHandler(db, redisCache)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 300,             // generous: the SPA polls /sync
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.CheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.GetProfile)

	// Public settings, so the SPA can show the lock state before login
	api.Get("/settings", settingHandler.ListPublicSettings)
	api.Get("/settings/schedule-lock", settingHandler.GetScheduleLock)

	// Full dataset snapshot for the SPA polling loop
	api.Get("/sync", authMiddleware.Required(), syncHandler.GetSnapshot)

	// Master data routes: readable by any authenticated user, writable by admin
	courses := api.Group("/courses")
	courses.Get("/", authMiddleware.Required(), courseHandler.ListCourses)
	courses.Get("/:id", authMiddleware.Required(), courseHandler.GetCourse)
	courses.Post("/", authMiddleware.RequireAdmin(), courseHandler.CreateCourse)
	courses.Put("/:id", authMiddleware.RequireAdmin(), courseHandler.UpdateCourse)
	courses.Delete("/:id", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse)

	lecturers := api.Group("/lecturers")
	lecturers.Get("/", authMiddleware.Required(), lecturerHandler.ListLecturers)
	lecturers.Get("/:id", authMiddleware.Required(), lecturerHandler.GetLecturer)
	lecturers.Post("/", authMiddleware.RequireAdmin(), lecturerHandler.CreateLecturer)
	lecturers.Put("/:id", authMiddleware.RequireAdmin(), lecturerHandler.UpdateLecturer)
	lecturers.Delete("/:id", authMiddleware.RequireAdmin(), lecturerHandler.DeleteLecturer)
	lecturers.Post("/:id/reset-password", authMiddleware.RequireAdmin(), lecturerHandler.ResetLecturerPassword)

	rooms := api.Group("/rooms")
	rooms.Get("/", authMiddleware.Required(), roomHandler.ListRooms)
	rooms.Get("/:id", authMiddleware.Required(), roomHandler.GetRoom)
	rooms.Post("/", authMiddleware.RequireAdmin(), roomHandler.CreateRoom)
	rooms.Put("/:id", authMiddleware.RequireAdmin(), roomHandler.UpdateRoom)
	rooms.Delete("/:id", authMiddleware.RequireAdmin(), roomHandler.DeleteRoom)

	classes := api.Group("/classes")
	classes.Get("/", authMiddleware.Required(), classHandler.ListClasses)
	classes.Post("/", authMiddleware.RequireAdmin(), classHandler.CreateClass)
	classes.Post("/bulk", authMiddleware.RequireAdmin(), classHandler.BulkCreateClasses)
	classes.Delete("/", authMiddleware.RequireAdmin(), classHandler.ClearClasses)
	classes.Delete("/:id", authMiddleware.RequireAdmin(), classHandler.DeleteClass)

	// Timetable routes: reads for everyone authenticated, writes admin-only
	schedule := api.Group("/schedule")
	schedule.Get("/", authMiddleware.Required(), scheduleHandler.ListSchedule)
	schedule.Get("/:id", authMiddleware.Required(), scheduleHandler.GetScheduleEntry)
	schedule.Post("/", authMiddleware.RequireAdmin(), scheduleHandler.CreateScheduleEntry)
	schedule.Put("/:id", authMiddleware.RequireAdmin(), scheduleHandler.UpdateScheduleEntry)
	schedule.Delete("/:id", authMiddleware.RequireAdmin(), scheduleHandler.DeleteScheduleEntry)

	// Lecturer portal: self-service claim/join/release and attendance
	portal := api.Group("/portal", authMiddleware.RequireLecturer())
	portal.Get("/schedule", portalHandler.MySchedule)
	portal.Get("/open-slots", portalHandler.OpenSlots)
	portal.Post("/schedule/:id/claim", portalHandler.ClaimSlot)
	portal.Post("/schedule/:id/join", portalHandler.JoinSlot)
	portal.Post("/schedule/:id/release", portalHandler.ReleaseSlot)
	portal.Get("/attendance", attendanceHandler.ListMyLogs)
	portal.Post("/attendance", attendanceHandler.RecordAttendance)
	portal.Delete("/attendance/:id", attendanceHandler.DeleteAttendance)
	portal.Get("/honor", honorHandler.GetMyRecap)

	// Admin monitoring routes
	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/dashboard", dashboardHandler.GetDashboard)
	admin.Get("/settings", settingHandler.ListAllSettings)
	admin.Put("/settings/schedule-lock", settingHandler.SetScheduleLock)
	admin.Get("/attendance", attendanceHandler.ListLogs)
	admin.Get("/honor", honorHandler.GetRecap)
}
