package database

import (
	"civilregistry-go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.Citizen{},
		&models.Admin{},
		&models.PendingRegistration{},
		&models.ServiceArtifact{},
		&models.CriminalCase{},
		&models.AuditEntry{},
		&models.Biometric{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
