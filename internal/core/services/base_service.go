package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	EntityAuthorizer portssvc.EntityAuthorizerSvc
	clock            func() time.Time
}

// ServiceOption is a functional option applied to the BaseService of any service
type ServiceOption func(*BaseService)

// WithEntityAuthorizer sets the authorizer consulted before any entity scoped work.
func WithEntityAuthorizer(authorizer portssvc.EntityAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.EntityAuthorizer = authorizer
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogDiagnostics records engine diagnostics; they never fail a request.
func (s *BaseService) LogDiagnostics(ctx context.Context, diags []balance.Diagnostic, keyvals ...any) {
	for _, d := range diags {
		args := make([]any, 0, len(keyvals)+3)
		args = append(args,
			slog.String("kind", string(d.Kind)),
			slog.String("transaction_id", d.TransactionID),
			slog.String("detail", d.Message))
		args = append(args, keyvals...)
		s.LogWarn(ctx, "Balance computation diagnostic", args...)
	}
}

// AuthorizeEntity checks that the user may use entity within feature.
func (s *BaseService) AuthorizeEntity(ctx context.Context, userID string, entity domain.EntityCode, feature domain.Feature) error {
	if s.EntityAuthorizer != nil {
		return s.EntityAuthorizer.AuthorizeEntity(ctx, userID, entity, feature)
	}
	s.LogWarn(ctx, "No entity authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("entity", string(entity)),
		slog.String("feature", string(feature)))
	return nil
}

// AuthorizeFeature checks that the user holds feature.
func (s *BaseService) AuthorizeFeature(ctx context.Context, userID string, feature domain.Feature) error {
	if s.EntityAuthorizer != nil {
		return s.EntityAuthorizer.AuthorizeFeature(ctx, userID, feature)
	}
	s.LogWarn(ctx, "No entity authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("feature", string(feature)))
	return nil
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	day, err := domain.ParseDay(strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return day, nil
}

func parseMonth(raw string) (domain.YearMonth, error) {
	month, err := domain.ParseYearMonth(strings.TrimSpace(raw))
	if err != nil {
		return domain.YearMonth{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return month, nil
}

// validateAmount accepts positive whole currency units only.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !amount.Equal(amount.Truncate(0)) {
		return fmt.Errorf("%w: amount %s must be a whole number of rupiah", apperrors.ErrValidation, amount)
	}
	return nil
}
