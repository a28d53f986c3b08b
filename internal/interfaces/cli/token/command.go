package token

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tickettracker/internal/infrastructure/auth"
	"tickettracker/internal/infrastructure/database"
	"tickettracker/internal/infrastructure/repository"
	"tickettracker/internal/interfaces/cli/clienv"
)

var (
	flags    clienv.Flags
	username string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	flags.Register(cmd)

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for a user",
		Long:  `Sign a JWT for an existing active user. The token is printed on stdout.`,
		RunE:  runIssue,
	}
	issue.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	issue.MarkFlagRequired("username")

	cmd.AddCommand(issue)
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := flags.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	u, err := repository.NewUserRepository(db, nil).GetByUsername(context.Background(), username)
	if err != nil {
		return err
	}
	if !u.IsActive() {
		return fmt.Errorf("user %s is inactive", u.Username())
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	signed, expiresAt, err := jwtSvc.Generate(u.ID(), u.Username())
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	log.Infow("token issued", "user_id", u.ID(), "expires_at", expiresAt)
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
