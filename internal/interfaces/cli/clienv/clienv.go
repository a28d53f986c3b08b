// Package clienv holds the start-up steps shared by the CLI commands.
package clienv

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"tickettracker/internal/infrastructure/config"
	"tickettracker/internal/infrastructure/database"
	"tickettracker/internal/shared/logger"
)

// Flags are the persistent flags every command that touches the database
// accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

// Register binds --env and --config on cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Environment resolves the effective environment; ENV wins over --env.
func (f *Flags) Environment() string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return f.Env
}

// Load reads the configuration and initializes the process logger.
func (f *Flags) Load() (*config.Config, logger.Interface, error) {
	env := f.Environment()
	cfg, err := config.Load(MapEnvToGinMode(env), f.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// Open is Load followed by opening the configured database. Callers close
// it with database.Close.
func (f *Flags) Open() (*config.Config, *gorm.DB, logger.Interface, error) {
	cfg, log, err := f.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, database.Get(), log, nil
}

// MapEnvToGinMode turns an environment name into a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
