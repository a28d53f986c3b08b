// Package user holds the account administration commands. Accounts are
// provisioned here because the HTTP API has no sign-up flow.
package user

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/database"
	"tickettracker/internal/infrastructure/permission"
	"tickettracker/internal/infrastructure/repository"
	"tickettracker/internal/interfaces/cli/clienv"
	"tickettracker/internal/shared/logger"
)

var (
	flags     clienv.Flags
	username  string
	email     string
	firstName string
	lastName  string
	staff     bool
	superuser bool
	admin     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	flags.Register(cmd)

	cmd.AddCommand(
		newCreateCommand(),
		newGroupCommand("grant-admin", "Add a user to the admin group", true),
		newGroupCommand("revoke-admin", "Remove a user from the admin group", false),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().BoolVar(&staff, "staff", false, "Mark the user as staff")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "Mark the user as superuser")
	cmd.Flags().BoolVar(&admin, "admin", false, "Add the user to the admin group")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}

func newGroupCommand(use, short string, grant bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, grant)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.MarkFlagRequired("username")

	return cmd
}

type accounts struct {
	users    *repository.UserRepository
	enforcer *permission.Enforcer
}

func open(db *gorm.DB, log logger.Interface) (*accounts, error) {
	enforcer, err := permission.NewEnforcer(db, log.Named("permission"))
	if err != nil {
		return nil, err
	}
	return &accounts{
		users:    repository.NewUserRepository(db, enforcer),
		enforcer: enforcer,
	}, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, db, log, err := flags.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	acc, err := open(db, log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	u, err := user.NewUser(username, email, firstName, lastName)
	if err != nil {
		return err
	}
	u.SetStaff(staff)
	u.SetSuperuser(superuser)

	if err := acc.users.Create(ctx, u); err != nil {
		return err
	}
	if admin {
		if err := acc.enforcer.GrantAdmin(ctx, u.ID()); err != nil {
			return err
		}
	}

	log.Infow("user created", "user_id", u.ID(), "username", u.Username(), "staff", staff, "admin", admin)
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", u.Username(), u.ID())
	return nil
}

func runGroup(cmd *cobra.Command, grant bool) error {
	_, db, log, err := flags.Open()
	if err != nil {
		return err
	}
	defer database.Close()

	acc, err := open(db, log)
	if err != nil {
		return err
	}

	ctx := context.Background()
	u, err := acc.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if grant {
		err = acc.enforcer.GrantAdmin(ctx, u.ID())
	} else {
		err = acc.enforcer.RevokeAdmin(ctx, u.ID())
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated admin membership of %s\n", u.Username())
	return nil
}
