package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"tickettracker/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates every table from the gorm models. It backs
// the sqlite driver and tests; mysql deployments use the goose scripts.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
