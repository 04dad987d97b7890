package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type salesService struct {
	BaseService
	salesRepo portsrepo.SalesRepositoryFacade
	access    portssvc.AccessSvcFacade
	loc       *time.Location
}

// NewSalesService creates a new SalesService.
func NewSalesService(
	salesRepo portsrepo.SalesRepositoryFacade,
	access portssvc.AccessSvcFacade,
	loc *time.Location,
	options ...ServiceOption,
) portssvc.SalesSvcFacade {
	svc := &salesService{salesRepo: salesRepo, access: access, loc: loc}
	svc.EntityAuthorizer = access
	svc.apply(options)
	return svc
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

func (s *salesService) authorize(ctx context.Context, rawEntity, userID string) (domain.EntityCode, error) {
	entity, err := s.access.ParseEntity(rawEntity)
	if err != nil {
		return "", err
	}
	if err := s.AuthorizeEntity(ctx, userID, entity, domain.FeatureSales); err != nil {
		return "", err
	}
	return entity, nil
}

// CreateEntry records sales for an entity and day.
func (s *salesService) CreateEntry(ctx context.Context, req dto.CreateSalesRequest, userID string) (*domain.SalesEntry, error) {
	entity, err := s.authorize(ctx, req.Entity, userID)
	if err != nil {
		return nil, err
	}
	day, err := parseDay(req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	entry := domain.SalesEntry{
		ID:            uuid.NewString(),
		Date:          day,
		Entity:        entity,
		Amount:        req.Amount,
		Description:   strings.TrimSpace(req.Description),
		PaymentMethod: req.PaymentMethod,
		AuditFields:   domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.salesRepo.SaveSalesEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save sales entry", slog.String("entity", string(entity)))
		return nil, fmt.Errorf("failed to save sales entry: %w", err)
	}
	s.LogInfo(ctx, "Sales entry created", slog.String("entry_id", entry.ID), slog.String("entity", string(entity)))
	return &entry, nil
}

// GetEntry retrieves a sales entry.
func (s *salesService) GetEntry(ctx context.Context, entryID, userID string) (*domain.SalesEntry, error) {
	entry, err := s.salesRepo.FindSalesEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load sales entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeatureSales); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry edits a sales entry.
func (s *salesService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateSalesRequest, userID string) (*domain.SalesEntry, error) {
	entry, err := s.GetEntry(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if req.Date != nil {
		day, err := parseDay(*req.Date, s.loc)
		if err != nil {
			return nil, err
		}
		entry.Date = day
	}
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		entry.Amount = *req.Amount
	}
	if req.Description != nil {
		entry.Description = strings.TrimSpace(*req.Description)
	}
	if req.PaymentMethod != nil {
		entry.PaymentMethod = *req.PaymentMethod
	}
	entry.Touch(userID, s.Now())

	if err := s.salesRepo.UpdateSalesEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update sales entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update sales entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes a sales entry.
func (s *salesService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	if _, err := s.GetEntry(ctx, entryID, userID); err != nil {
		return err
	}
	if err := s.salesRepo.DeleteSalesEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete sales entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete sales entry: %w", err)
	}
	return nil
}

func (s *salesService) monthEntries(ctx context.Context, rawEntity, rawMonth, userID string) (domain.EntityCode, domain.YearMonth, []domain.SalesEntry, error) {
	entity, err := s.authorize(ctx, rawEntity, userID)
	if err != nil {
		return "", domain.YearMonth{}, nil, err
	}
	month, err := parseMonth(rawMonth)
	if err != nil {
		return "", domain.YearMonth{}, nil, err
	}
	from, to := month.Bounds(s.loc)
	entries, err := s.salesRepo.ListSalesEntries(ctx, entity, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales entries", slog.String("entity", string(entity)))
		return "", domain.YearMonth{}, nil, err
	}
	if entries == nil {
		entries = []domain.SalesEntry{}
	}
	return entity, month, entries, nil
}

// ListEntries returns an entity's sales for a month.
func (s *salesService) ListEntries(ctx context.Context, rawEntity, rawMonth, userID string) ([]domain.SalesEntry, error) {
	_, _, entries, err := s.monthEntries(ctx, rawEntity, rawMonth, userID)
	return entries, err
}

// MonthlySummary totals an entity's sales per day, by payment method and for the month.
func (s *salesService) MonthlySummary(ctx context.Context, rawEntity, rawMonth, userID string) (*domain.SalesSummary, error) {
	entity, month, entries, err := s.monthEntries(ctx, rawEntity, rawMonth, userID)
	if err != nil {
		return nil, err
	}

	summary := &domain.SalesSummary{
		Entity:  entity,
		Month:   month,
		Days:    []domain.DailySales{},
		Cash:    decimal.Zero,
		NonCash: decimal.Zero,
		Total:   decimal.Zero,
	}
	byDay := make(map[string]*domain.DailySales)
	for _, e := range entries {
		day := domain.StartOfDay(e.Date, s.loc)
		key := day.Format(domain.DateLayout)
		d, ok := byDay[key]
		if !ok {
			d = &domain.DailySales{Date: day, Total: decimal.Zero}
			byDay[key] = d
		}
		d.Total = d.Total.Add(e.Amount)
		d.Entries++

		if e.PaymentMethod == domain.PaymentNonCash {
			summary.NonCash = summary.NonCash.Add(e.Amount)
		} else {
			summary.Cash = summary.Cash.Add(e.Amount)
		}
		summary.Total = summary.Total.Add(e.Amount)
	}
	for _, d := range byDay {
		summary.Days = append(summary.Days, *d)
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date.Before(summary.Days[j].Date)
	})
	return summary, nil
}
