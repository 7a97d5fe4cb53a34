package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates every table in PersistentModels, including the
// unique indexes the relationship toggles rely on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
