package commands

import (
	"fmt"
	"os"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/legacy"
	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/spf13/cobra"
)

func newImportLegacyCommand() *cobra.Command {
	var (
		dryRun bool
		as     string
	)

	cmd := &cobra.Command{
		Use:   "import-legacy <file.csv>",
		Short: "Import a petty-cash export from the old cash book",
		Long:  "Reads a CSV with the columns date,entity,direction,amount,description,category,status. " +
			"Rows whose description contains \"sisa saldo\" become carry-forward markers. " +
			"The file is imported in one transaction; any invalid line rejects the whole file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.actingUser(cmd.Context(), as)
			if err != nil {
				return err
			}

			importer := legacy.NewImporter(a.repos.TxManager, a.repos.LedgerRepo, domain.NewEntitySet(cfg.Entities...), cfg.Location, logger)
			summary, err := importer.Import(cmd.Context(), f, user.UserID, dryRun)
			out := cmd.OutOrStdout()
			for _, rowErr := range summary.Errors {
				fmt.Fprintln(out, rowErr.Error())
			}
			if err != nil {
				return err
			}
			verb := "imported"
			if summary.DryRun {
				verb = "would import"
			}
			fmt.Fprintf(out, "%s %d transactions and %d carry-forward markers (%d pending)\n",
				verb, summary.Transactions, summary.CarryForwards, summary.Pending)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without writing")
	cmd.Flags().StringVar(&as, "as", "admin", "username recorded as creator of the imported rows")

	return cmd
}
