package config

import (
	"fmt"
	"time"

	"items-admin-backend/db/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// allModels defines all models that should be migrated
var allModels = []interface{}{
	&models.BulkItemUploadRun{},
}

// ConfigureDatabase opens the audit database. It returns nil when DB_HOST is
// not configured; upload runs are then only kept in the batch store.
func ConfigureDatabase() *gorm.DB {
	host := GetEnv("DB_HOST")
	if host == "" {
		Logger.Warn("DB_HOST not set, upload run audit log disabled")
		return nil
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		host,
		GetEnv("POSTGRES_USER"),
		GetEnv("POSTGRES_PASSWORD"),
		GetEnv("POSTGRES_DB"),
		GetEnvDefault("DB_PORT", "5432"),
		GetEnvDefault("DB_TIMEZONE", "UTC"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		Logger.Fatal("[DB-CONNECT] Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		Logger.Fatal("failed to migrate tables", zap.Error(err))
	}
	Logger.Info("Tables migrated successfully")

	sqlDB, err := db.DB()
	if err != nil {
		Logger.Fatal("[DB-POOL] Failed to get underlying DB connection", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	Logger.Info("[DB-STATUS] Database setup complete")
	return db
}
