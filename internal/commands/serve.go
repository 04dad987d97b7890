package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/kasbook/internal/core/services"
	"github.com/SscSPs/kasbook/internal/handlers"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/SscSPs/kasbook/internal/platform/config"
	"github.com/SscSPs/kasbook/internal/printing"
	"github.com/SscSPs/kasbook/internal/storage"
	"github.com/SscSPs/kasbook/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return runServe(cmd.Context(), cfg, logger, skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, skipMigrations bool) error {
	if !skipMigrations {
		logger.Info("Running database migrations...")
		version, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger)
		if err != nil {
			return err
		}
		logger.Info("Database schema ready", slog.Uint64("version", uint64(version)))
	}

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	out, cleanup, err := newPrinting(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	svcs := services.NewServiceContainer(cfg, a.repos, out)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	if err := handlers.RegisterRoutes(r, cfg, svcs); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to run: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// newPrinting assembles the report output collaborators. PDF rendering and
// archiving are only wired when configured.
func newPrinting(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Printing, func(), error) {
	templates, err := printing.NewTemplates(printing.WithCompanyName(cfg.CompanyName))
	if err != nil {
		return services.Printing{}, nil, err
	}
	out := services.Printing{Templates: templates}
	cleanup := func() {}

	if cfg.PDFEnabled {
		renderer := printing.NewChromedpRenderer(printing.ChromedpConfig{
			RemoteURL: cfg.ChromeRemoteURL,
			Timeout:   cfg.PDFTimeout,
			NoSandbox: cfg.ChromeNoSandbox,
			Logger:    logger,
		})
		out.PDF = renderer
		cleanup = renderer.Close
		logger.Info("PDF rendering enabled", slog.Bool("remote_chrome", cfg.ChromeRemoteURL != ""))
	}

	if cfg.ReportArchiveBucket != "" {
		archive, err := storage.NewS3Archive(ctx, storage.S3Config{
			Bucket:          cfg.ReportArchiveBucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, logger)
		if err != nil {
			cleanup()
			return services.Printing{}, nil, err
		}
		out.Archive = archive
		logger.Info("Report archive enabled", slog.String("bucket", archive.Bucket()))
	}

	return out, cleanup, nil
}
