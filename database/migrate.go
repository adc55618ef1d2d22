package database

import (
	"fmt"

	"jobvibes_backend/internal/config"
	"jobvibes_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens (once) the GORM connection configured in config.yaml.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Otp{},
		&models.FirebaseCredential{},
		&models.Feed{},
		&models.Reaction{},
		&models.Application{},
		&models.NotificationLog{},
		&models.Skill{},
		&models.JobTitle{},
		&models.State{},
		&models.City{},
		&models.File{},
	)
}
