package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/SscSPs/kasbook/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const adminPasswordEnv = "KASBOOK_ADMIN_PASSWORD"

func newCreateAdminCommand() *cobra.Command {
	var (
		username         string
		name             string
		generatePassword bool
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the first administrator",
		Long:  "Creates an administrator assigned to every configured entity. The password is read from " +
			adminPasswordEnv + ", or generated and printed once with --generate-password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			password, generated, err := adminPassword(os.Getenv(adminPasswordEnv), generatePassword)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			user, err := createAdmin(cmd.Context(), a.repos, username, name, password, cfg.Entities, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created administrator %s (%s)\n", user.Username, user.UserID)
			if generated {
				fmt.Fprintf(cmd.OutOrStdout(), "password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "login name")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().BoolVar(&generatePassword, "generate-password", false, "generate a random password instead of reading "+adminPasswordEnv)

	return cmd
}

// adminPassword picks the password from the environment or generates one.
func adminPassword(fromEnv string, generate bool) (password string, generated bool, err error) {
	if fromEnv == "" && generate {
		password, err = utils.RandomPassword(12)
		return password, true, err
	}
	if err := utils.ValidatePassword(fromEnv); err != nil {
		return "", false, fmt.Errorf("%s: %w", adminPasswordEnv, err)
	}
	return fromEnv, false, nil
}

func createAdmin(
	ctx context.Context,
	repos portsrepo.RepositoryProvider,
	username, name, password string,
	entities []domain.EntityCode,
	now time.Time,
) (*domain.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	role, err := repos.RoleRepo.FindRoleByName(ctx, domain.RoleAdminName)
	if err != nil {
		return nil, fmt.Errorf("admin role missing, run migrations first: %w", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		RoleID:       role.ID,
		Entities:     entities,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if err := repos.UserRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save administrator: %w", err)
	}
	return &user, nil
}
