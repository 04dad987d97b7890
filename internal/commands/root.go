// Package commands wires the kasbook command line.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/kasbook/internal/buildinfo"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "kasbook",
		Short:             "Petty-cash, cash-flow and sales bookkeeping for small businesses",
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newCloseDayCommand(),
		newImportLegacyCommand(),
		newCreateAdminCommand(),
	)

	return rootCmd
}

// newLogger builds the process wide JSON logger.
func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}
