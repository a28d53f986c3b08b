package main

import (
	"os"

	"github.com/spf13/cobra"

	"tickettracker/internal/interfaces/cli/configcmd"
	"tickettracker/internal/interfaces/cli/migrate"
	"tickettracker/internal/interfaces/cli/server"
	"tickettracker/internal/interfaces/cli/token"
	"tickettracker/internal/interfaces/cli/user"
	"tickettracker/internal/interfaces/cli/version"
)

// @title						Ticket Tracker API
// @version					1.0
// @description				Ticket lifecycle: open, accept, assign, close, duplicate, split, re-open, vote.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:           "tickettracker",
		Short:         "Ticket Tracker - issue lifecycle service",
		Long:          `Ticket Tracker serves the ticket HTTP API and ships the migration and administration commands that go with it.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
		token.NewCommand(),
		configcmd.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
