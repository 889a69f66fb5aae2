package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes a connection to the database.
// DATABASE_URL selects the backend: a postgres:// URL connects to PostgreSQL,
// anything else is treated as a SQLite path. An empty value falls back to a
// local SQLite file so development works without a running database server.
func ConnectDatabase() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "littlelemon.db"
		log.Println("DATABASE_URL not set, using local SQLite database:", databaseURL)
	}

	var err error
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
