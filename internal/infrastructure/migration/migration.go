package migration

import (
	"fmt"

	"gorm.io/gorm"

	"tickettracker/internal/shared/config"
	"tickettracker/internal/shared/logger"
)

// Manager runs the migration strategy that fits the configured driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose scripts for mysql and model auto-migration for
// sqlite.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	var strategy Strategy
	if cfg.IsSQLite() {
		strategy = NewGormAutoMigrateStrategy()
	} else {
		strategy = NewGooseStrategy(config.DriverMySQL)
	}
	return NewManagerWithStrategy(strategy)
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// Goose returns the versioned strategy, or nil when the driver migrates
// from models.
func (m *Manager) Goose() *GooseStrategy {
	g, _ := m.strategy.(*GooseStrategy)
	return g
}
