package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/core/services"
	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/spf13/cobra"
)

func newCloseDayCommand() *cobra.Command {
	var (
		date string
		as   string
	)

	cmd := &cobra.Command{
		Use:   "close-day",
		Short: "Carry every entity's petty-cash closing balance into the next day",
		Long:  "Stores the closing balance of --date (default: yesterday) as the carry-forward " +
			"marker opening the following day, for every configured entity. Days that are " +
			"already carried forward are skipped, so the command is safe to run from cron.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			day, err := resolveDay(date, cfg.Location, time.Now())
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.actingUser(cmd.Context(), as)
			if err != nil {
				return err
			}
			svcs := services.NewServiceContainer(cfg, a.repos, services.Printing{})
			result, err := closeDay(cmd.Context(), svcs.PettyCash, cfg.Entities, day, user.UserID, logger)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d carried forward, %d already closed\n", day, result.closed, result.skipped)
			return err
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to close (YYYY-MM-DD), default yesterday")
	cmd.Flags().StringVar(&as, "as", "admin", "username the markers are recorded for")

	return cmd
}

// resolveDay validates raw, defaulting to the day before now in loc.
func resolveDay(raw string, loc *time.Location, now time.Time) (string, error) {
	if raw == "" {
		return now.In(loc).AddDate(0, 0, -1).Format(domain.DateLayout), nil
	}
	if _, err := domain.ParseDay(raw, loc); err != nil {
		return "", err
	}
	return raw, nil
}

type closeDayResult struct {
	closed  int
	skipped int
}

// closeDay carries day forward for each entity. Entities that already have a
// marker are skipped; other failures are collected and returned together
// after every entity was tried.
func closeDay(
	ctx context.Context,
	pettyCash portssvc.PettyCashWriterSvc,
	entities []domain.EntityCode,
	day, userID string,
	logger *slog.Logger,
) (closeDayResult, error) {
	var (
		result closeDayResult
		errs   []error
	)
	for _, entity := range entities {
		marker, err := pettyCash.CarryForward(ctx, string(entity), day, userID)
		switch {
		case err == nil:
			result.closed++
			logger.Info("Carried balance forward",
				slog.String("entity", string(entity)),
				slog.String("day", day),
				slog.String("amount", marker.Amount.String()))
		case errors.Is(err, apperrors.ErrDuplicate):
			result.skipped++
			logger.Info("Day already carried forward", slog.String("entity", string(entity)), slog.String("day", day))
		default:
			logger.Error("Failed to carry balance forward", slog.String("entity", string(entity)), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", entity, err))
		}
	}
	return result, errors.Join(errs...)
}
