package database

import (
	"log"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Event{}, &models.Booking{}, &models.User{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}
