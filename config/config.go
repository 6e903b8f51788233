package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		logger.L().Warnw("no .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L().Fatalw("failed to connect to database", "err", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.ChildProfile{},
		&models.TriedFoodLog{},
		&models.GrowthLog{},
		&models.ProfileDocument{},
		&models.Alert{},
	)
	if err != nil {
		logger.L().Fatalw("auto-migrate failed", "err", err)
	}
}
