package main

import (
	"gorm.io/gorm"

	"github.com/tripshield/backend/internal/models"
)

// registerModels returns all models that need migration.
func registerModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tourist{},
		&models.Alert{},
		&models.UsageLog{},
	}
}

// runMigrations executes all database migrations.
func runMigrations(db *gorm.DB) error {
	// uuid defaults need pgcrypto before any table is created
	if err := enableUUIDExtension(db); err != nil {
		return err
	}

	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}

	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addAlertStatusRecencyIndex,
		addUsageLogRecencyIndex,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// enableUUIDExtension ensures UUID generation is available.
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addAlertStatusRecencyIndex serves the status-filtered, newest-first alert list.
func addAlertStatusRecencyIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_alerts_status_created_at
		ON alerts(status, created_at DESC)
	`).Error
}

// addUsageLogRecencyIndex serves both the newest-first list and the
// retention cutoff scan.
func addUsageLogRecencyIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_usage_logs_created_at_desc
		ON usage_logs(created_at DESC)
	`).Error
}
