package database

import (
	"fmt"
	"log"
	"os"

	"github.com/sahilchouksey/uniadvisor-api/model"
	"github.com/sahilchouksey/uniadvisor-api/utils/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

	if err := s.SeedUniversityCatalog(); err != nil {
		return fmt.Errorf("failed to seed university catalog: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme-now"
		log.Println("ADMIN_PASSWORD not set, using default (change it immediately)")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        "admin@uniadvisor.local",
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         "admin",
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded admin user:", admin.Email)
	return nil
}

// SeedUniversityCatalog upserts the fixed catalog. Safe to run on every
// startup; existing rows are refreshed in place.
func (s *Seeder) SeedUniversityCatalog() error {
	for _, uni := range UniversityCatalog {
		uni.IsActive = true
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "country", "major", "fee", "acceptance_rate", "description", "is_active"}),
		}).Create(&uni).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d catalog universities", len(UniversityCatalog))
	return nil
}
