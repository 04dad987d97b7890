package commands

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/SscSPs/kasbook/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or revert database migrations",
		Long:      "up applies every pending migration; down reverts the most recent one.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE:      func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			version, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateDirection(args[0]), logger)
			if err != nil {
				return err
			}
			logger.Info("Migration finished", slog.String("direction", args[0]), slog.Uint64("version", uint64(version)))
			return nil
		},
	}
	return cmd
}
