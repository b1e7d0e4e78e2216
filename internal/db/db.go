package db

import (
	"log"
	"strings"

	"github.com/LucaZH/webcup2025-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the database connection and runs migrations. DATABASE_URL may be
// a postgres DSN or "sqlite://<path>"; an empty value falls back to a local
// sqlite file for development.
func Init(databaseURL string) {
	if databaseURL == "" {
		databaseURL = "sqlite://theend.db"
		log.Println("DATABASE_URL not set, defaulting to 'sqlite://theend.db'")
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "sqlite://") {
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
	} else {
		dialector = postgres.Open(databaseURL)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Migrate creates or updates the schema. Split out of Init so tests can run
// it against their own connection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.DeparturePage{},
		&models.EphemeralReading{},
		&models.Vote{},
	)
}
