package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/simpdb/simpdb-api/api"
	"github.com/simpdb/simpdb-api/config"
	"github.com/simpdb/simpdb-api/database"
	"github.com/simpdb/simpdb-api/router"
	"github.com/simpdb/simpdb-api/services/backup"
	"github.com/simpdb/simpdb-api/services/cron"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	db := store.GetDB()

	// Seed the baseline data (admin account, class sections, settings)
	if os.Getenv("SEED_ON_START") != "false" { // Default to enabled
		if err := database.NewSeeder(db).SeedAll(); err != nil {
			print("Warning: seeding failed\n")
			print("Error: ", err.Error(), "\n")
		}
	}

	// Initialize the Spaces backup client when credentials are configured
	var backupClient *backup.Client
	if getEnv.SPACES_ACCESS_KEY != "" && getEnv.SPACES_BUCKET != "" {
		backupClient, err = backup.NewClient(backup.Config{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			Prefix:    getEnv.BACKUP_PREFIX,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize backup client: %v. Snapshot backups disabled.", err)
			backupClient = nil
		}
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(db, backupClient)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	// Custom Logger
	app.Use(logger.New())

	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store)

	// Get the PORT & Start the Server
	return server.Run()
}
