package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/SscSPs/kasbook/internal/repositories/database/pgsql"
	"github.com/SscSPs/kasbook/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// app holds what every database backed command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	repos  portsrepo.RepositoryProvider
}

// openApp loads configuration and connects to the database. Callers must
// call close when done.
func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return &app{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		repos:  pgsql.NewRepositoryProvider(pool, cfg.Location),
	}, nil
}

func (a *app) close() {
	database.ClosePgxPool(a.pool)
}

// actingUser resolves the user a maintenance command acts as.
func (a *app) actingUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := a.repos.UserRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("cannot act as %q: %w", username, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("cannot act as %q: user is inactive", username)
	}
	return user, nil
}
