package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"weapondb/internal/config"
	"weapondb/internal/models"
)

// Open connects to the configured database. SQLite is the default;
// Postgres is selected with DATABASE_DRIVER=postgres.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the schema idempotently.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Weapon{},
		&models.Gadget{},
		&models.Specialization{},
		&models.GameMap{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed inserts the starter data when the relevant tables are empty:
// the admin account and a handful of weapons. Safe to run repeatedly.
func Seed(db *gorm.DB, adminUsername string) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("Security!"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		admin := models.User{Username: adminUsername, Password: string(hashed)}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Printf("Seeded admin user %q", adminUsername)
	}

	var weaponCount int64
	if err := db.Model(&models.Weapon{}).Count(&weaponCount).Error; err != nil {
		return fmt.Errorf("failed to count weapons: %w", err)
	}
	if weaponCount == 0 {
		weapons := []models.Weapon{
			{Name: "Sword", Class: "Light", Damage: 35, Description: "Fast melee weapon for close combat.", ImageURL: "/img/sword.png"},
			{Name: "AKM", Class: "Medium", Damage: 25, Description: "Reliable assault rifle for medium range.", ImageURL: "/img/akm.png"},
			{Name: "M60", Class: "Heavy", Damage: 40, Description: "Powerful machine gun with high damage output.", ImageURL: "/img/m60.png"},
		}
		if err := db.Create(&weapons).Error; err != nil {
			return fmt.Errorf("failed to seed weapons: %w", err)
		}
		log.Printf("Seeded %d weapons", len(weapons))
	}

	return nil
}
