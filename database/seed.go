package database

import (
	"fmt"
	"log"
	"os"

	"github.com/simpdb/simpdb-api/model"
	"github.com/simpdb/simpdb-api/utils/auth"
	"gorm.io/gorm"
)

// DefaultClassCount is how many PDB class sections get seeded when the
// class_names table is empty.
const DefaultClassCount = 125

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := s.SeedClassNames(); err != nil {
		return fmt.Errorf("failed to seed class names: %w", err)
	}
	if err := s.SeedAppSettings(); err != nil {
		return fmt.Errorf("failed to seed app settings: %w", err)
	}

	log.Println("Database seeding completed successfully.")
	return nil
}

// SeedAdminUser creates the default admin account when none exists.
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("ADMIN_PASSWORD not set; using the default development password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:     "admin",
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded default admin user")
	return nil
}

// SeedClassNames seeds the default PDB01..PDB125 class sections when the
// table is empty.
func (s *Seeder) SeedClassNames() error {
	var count int64
	if err := s.db.Model(&model.ClassName{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	classes := make([]model.ClassName, 0, DefaultClassCount)
	for i := 1; i <= DefaultClassCount; i++ {
		classes = append(classes, model.ClassName{Name: fmt.Sprintf("PDB%02d", i)})
	}
	if err := s.db.CreateInBatches(classes, 50).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d default class sections", DefaultClassCount)
	return nil
}

// SeedAppSettings ensures the schedule lock setting exists (unlocked).
func (s *Seeder) SeedAppSettings() error {
	var count int64
	if err := s.db.Model(&model.AppSetting{}).Where("key = ?", model.SettingScheduleLock).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	setting := model.AppSetting{
		Key:         model.SettingScheduleLock,
		Value:       "false",
		Description: "Freezes lecturer claim/join/release when true",
		IsPublic:    true,
	}
	if err := s.db.Create(&setting).Error; err != nil {
		return err
	}
	log.Println("Seeded schedule_lock setting")
	return nil
}
