package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/google/uuid"
)

// cashFlowService implements the categorized cash-flow ledger. It has no
// approval gate and no carry-forward markers.
type cashFlowService struct {
	BaseService
	ledgerRepo portsrepo.LedgerEntryRepositoryFacade
	subCatRepo portsrepo.SubCategoryReader
	access     portssvc.AccessSvcFacade
	calc       *balance.Calculator
}

// NewCashFlowService creates a new CashFlowService.
func NewCashFlowService(
	ledgerRepo portsrepo.LedgerEntryRepositoryFacade,
	subCatRepo portsrepo.SubCategoryReader,
	access portssvc.AccessSvcFacade,
	calc *balance.Calculator,
	options ...ServiceOption,
) portssvc.CashFlowSvcFacade {
	svc := &cashFlowService{
		ledgerRepo: ledgerRepo,
		subCatRepo: subCatRepo,
		access:     access,
		calc:       calc,
	}
	svc.EntityAuthorizer = access
	svc.apply(options)
	return svc
}

var _ portssvc.CashFlowSvcFacade = (*cashFlowService)(nil)

func (s *cashFlowService) authorize(ctx context.Context, rawEntity, userID string) (domain.EntityCode, error) {
	entity, err := s.access.ParseEntity(rawEntity)
	if err != nil {
		return "", err
	}
	if err := s.AuthorizeEntity(ctx, userID, entity, domain.FeatureCashFlow); err != nil {
		return "", err
	}
	return entity, nil
}

// checkSubCategory requires an existing sub-category whose kind agrees with direction.
func (s *cashFlowService) checkSubCategory(ctx context.Context, subCategoryID int64, direction domain.Direction) error {
	subCat, err := s.subCatRepo.FindSubCategoryByID(ctx, subCategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: sub-category %d does not exist", apperrors.ErrValidation, subCategoryID)
		}
		return err
	}
	if !subCat.Kind.MatchesDirection(direction) {
		return fmt.Errorf("%w: sub-category %q is %s and cannot be used for direction %s",
			apperrors.ErrValidation, subCat.Name, subCat.Kind, direction)
	}
	return nil
}

// CreateEntry records a cash-flow row.
func (s *cashFlowService) CreateEntry(ctx context.Context, req dto.CreateCashFlowRequest, userID string) (*domain.Transaction, error) {
	entity, err := s.authorize(ctx, req.Entity, userID)
	if err != nil {
		return nil, err
	}
	day, err := parseDay(req.Date, s.calc.Location())
	if err != nil {
		return nil, err
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := s.checkSubCategory(ctx, req.SubCategoryID, req.Direction); err != nil {
		return nil, err
	}
	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}

	subCategoryID := req.SubCategoryID
	entry := domain.Transaction{
		ID:            uuid.NewString(),
		Ledger:        domain.LedgerCashFlow,
		Date:          day,
		Entity:        entity,
		Direction:     req.Direction,
		Amount:        req.Amount,
		Description:   strings.TrimSpace(req.Description),
		SubCategoryID: &subCategoryID,
		PaymentMethod: method,
		Kind:          domain.KindTransaction,
		AuditFields:   domain.NewAuditFields(userID, s.Now()),
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save cash-flow entry", slog.String("entity", string(entity)))
		return nil, fmt.Errorf("failed to save cash-flow entry: %w", err)
	}
	s.LogInfo(ctx, "Cash-flow entry created", slog.String("entry_id", entry.ID), slog.String("entity", string(entity)))
	return &entry, nil
}

// GetEntry retrieves a cash-flow row.
func (s *cashFlowService) GetEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load cash-flow entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.Ledger != domain.LedgerCashFlow {
		return nil, apperrors.ErrNotFound
	}
	if err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeatureCashFlow); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry edits a cash-flow row.
func (s *cashFlowService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowRequest, userID string) (*domain.Transaction, error) {
	entry, err := s.GetEntry(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		day, err := parseDay(*req.Date, s.calc.Location())
		if err != nil {
			return nil, err
		}
		entry.Date = day
	}
	if req.Direction != nil {
		entry.Direction = *req.Direction
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
	if req.SubCategoryID != nil {
		subCategoryID := *req.SubCategoryID
		entry.SubCategoryID = &subCategoryID
	}
	if req.PaymentMethod != nil {
		entry.PaymentMethod = *req.PaymentMethod
	}
	if entry.SubCategoryID == nil {
		return nil, fmt.Errorf("%w: sub-category is required", apperrors.ErrValidation)
	}
	if req.Direction != nil || req.SubCategoryID != nil {
		if err := s.checkSubCategory(ctx, *entry.SubCategoryID, entry.Direction); err != nil {
			return nil, err
		}
	}

	entry.Touch(userID, s.Now())
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update cash-flow entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update cash-flow entry: %w", err)
	}
	s.LogInfo(ctx, "Cash-flow entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes a cash-flow row.
func (s *cashFlowService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	if _, err := s.GetEntry(ctx, entryID, userID); err != nil {
		return err
	}
	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete cash-flow entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete cash-flow entry: %w", err)
	}
	s.LogInfo(ctx, "Cash-flow entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ListEntries returns entity's rows dated from..to inclusive, ordered by date then creation.
func (s *cashFlowService) ListEntries(ctx context.Context, rawEntity, rawFrom, rawTo, userID string) ([]domain.Transaction, error) {
	entity, err := s.authorize(ctx, rawEntity, userID)
	if err != nil {
		return nil, err
	}
	loc := s.calc.Location()
	from, err := parseDay(rawFrom, loc)
	if err != nil {
		return nil, err
	}
	to, err := parseDay(rawTo, loc)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", apperrors.ErrValidation)
	}

	entries, err := s.ledgerRepo.ListEntriesInRange(ctx, domain.LedgerCashFlow,
		[]domain.EntityCode{entity}, from, domain.AddDays(to, 1, loc))
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash-flow entries", slog.String("entity", string(entity)))
		return nil, err
	}
	if entries == nil {
		return []domain.Transaction{}, nil
	}
	return entries, nil
}

// DailyLedger returns the day's rows with running balances. Cash-flow days
// start from zero, so the missing-marker diagnostic does not apply.
func (s *cashFlowService) DailyLedger(ctx context.Context, rawEntity, rawDay, userID string) (*balance.DailyLedger, []balance.Diagnostic, error) {
	entity, err := s.authorize(ctx, rawEntity, userID)
	if err != nil {
		return nil, nil, err
	}
	day, err := parseDay(rawDay, s.calc.Location())
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerCashFlow, entity, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cash-flow day", slog.String("entity", string(entity)))
		return nil, nil, err
	}

	ledger, all := s.calc.DailyLedger(rows, entity, day)
	diags := make([]balance.Diagnostic, 0, len(all))
	for _, d := range all {
		if d.Kind != balance.DiagMissingCarryForward {
			diags = append(diags, d)
		}
	}
	s.LogDiagnostics(ctx, diags, slog.String("entity", string(entity)), slog.String("day", day.Format(domain.DateLayout)))
	return &ledger, diags, nil
}
