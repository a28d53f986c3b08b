package migrate

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tickettracker/internal/infrastructure/database"
	"tickettracker/internal/infrastructure/migration"
	"tickettracker/internal/infrastructure/persistence/seeds"
	"tickettracker/internal/interfaces/cli/clienv"
	sharedConfig "tickettracker/internal/shared/config"
	"tickettracker/internal/shared/logger"
)

var (
	flags   clienv.Flags
	name    string
	dir     string
	steps   int
	seed    bool
	appList []string
)

var errGooseOnly = errors.New("only supported for drivers with versioned migrations (mysql)")

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	flags.Register(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Create the default applications after migrating")
	cmd.Flags().StringSliceVar(&appList, "applications", nil, "Application names to seed instead of the defaults")

	return cmd
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new sequential SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dir, "dir", "./internal/infrastructure/migration/scripts", "Directory the migration file is written to")
	cmd.MarkFlagRequired("name")

	return cmd
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := flags.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", flags.Environment(), "driver", cfg.Database.Driver)

	if err := migration.NewManager(&cfg.Database).Migrate(db); err != nil {
		return err
	}

	if seed {
		if err := seeds.SeedApplications(db, appList...); err != nil {
			log.Errorw("seeding applications failed", "error", err)
			return fmt.Errorf("seeding applications failed: %w", err)
		}
		log.Infow("applications seeded")
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := flags.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	goose := migration.NewManager(&cfg.Database).Goose()
	if goose == nil {
		return fmt.Errorf("down migration is %w", errGooseOnly)
	}

	log.Infow("running down migrations", "environment", flags.Environment(), "steps", steps)
	if err := goose.MigrateDown(db, steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := flags.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	goose := migration.NewManager(&cfg.Database).Goose()
	if goose == nil {
		return fmt.Errorf("status check is %w", errGooseOnly)
	}

	version, err := goose.GetVersion(db)
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", flags.Environment())
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := goose.Status(db); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, _, err := flags.Load()
	if err != nil {
		return err
	}
	if cfg.Database.IsSQLite() {
		return fmt.Errorf("create is %w", errGooseOnly)
	}

	if err := migration.NewGooseStrategy(sharedConfig.DriverMySQL).Create(dir, name); err != nil {
		logger.Error("failed to create migration", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, dir)
	return nil
}
