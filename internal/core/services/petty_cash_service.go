package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// pettyCashService implements the approval-gated petty-cash ledger.
type pettyCashService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	ledgerRepo   portsrepo.LedgerEntryRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	access       portssvc.AccessSvcFacade
	calc         *balance.Calculator
	threshold    decimal.Decimal
}

// NewPettyCashService creates the petty-cash service. Outflows above
// threshold start pending; everything else is approved on entry.
func NewPettyCashService(
	txManager portsrepo.TransactionManager,
	ledgerRepo portsrepo.LedgerEntryRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	access portssvc.AccessSvcFacade,
	calc *balance.Calculator,
	threshold decimal.Decimal,
	options ...ServiceOption,
) portssvc.PettyCashSvcFacade {
	svc := &pettyCashService{
		txManager:    txManager,
		ledgerRepo:   ledgerRepo,
		categoryRepo: categoryRepo,
		access:       access,
		calc:         calc,
		threshold:    threshold,
	}
	svc.EntityAuthorizer = access
	svc.apply(options)
	return svc
}

var _ portssvc.PettyCashSvcFacade = (*pettyCashService)(nil)

func (s *pettyCashService) initialStatus(direction domain.Direction, amount decimal.Decimal) domain.ApprovalStatus {
	if direction == domain.DirectionOut && amount.GreaterThan(s.threshold) {
		return domain.StatusPending
	}
	return domain.StatusApproved
}

func (s *pettyCashService) scope(ctx context.Context, rawEntity, rawDay, userID string, feature domain.Feature) (domain.EntityCode, time.Time, error) {
	entity, err := s.access.ParseEntity(rawEntity)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.AuthorizeEntity(ctx, userID, entity, feature); err != nil {
		return "", time.Time{}, err
	}
	day, err := parseDay(rawDay, s.calc.Location())
	if err != nil {
		return "", time.Time{}, err
	}
	return entity, day, nil
}

func (s *pettyCashService) resolveCategory(ctx context.Context, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", nil
	}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, label) {
			return c.Name, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, label)
}

// CreateEntry records a petty-cash row for an entity the user may use.
func (s *pettyCashService) CreateEntry(ctx context.Context, req dto.CreatePettyCashRequest, userID string) (*domain.Transaction, error) {
	entity, day, err := s.scope(ctx, req.Entity, req.Date, userID, domain.FeaturePettyCash)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}

	now := s.Now()
	entry := domain.Transaction{
		ID:             uuid.NewString(),
		Ledger:         domain.LedgerPettyCash,
		Date:           day,
		Entity:         entity,
		Direction:      req.Direction,
		Amount:         req.Amount,
		Description:    strings.TrimSpace(req.Description),
		Category:       category,
		ApprovalStatus: s.initialStatus(req.Direction, req.Amount),
		PaymentMethod:  method,
		Kind:           domain.KindTransaction,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save petty-cash entry", slog.String("entity", string(entity)))
		return nil, fmt.Errorf("failed to save petty-cash entry: %w", err)
	}

	s.LogInfo(ctx, "Petty-cash entry created",
		slog.String("entry_id", entry.ID),
		slog.String("entity", string(entity)),
		slog.String("status", string(entry.ApprovalStatus)))
	return &entry, nil
}

func (s *pettyCashService) load(ctx context.Context, entryID string) (*domain.Transaction, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load petty-cash entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.Ledger != domain.LedgerPettyCash {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// GetEntry retrieves a petty-cash row.
func (s *pettyCashService) GetEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	entry, err := s.load(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeaturePettyCash); err != nil {
		return nil, err
	}
	return entry, nil
}

// checkEditable allows changes on the local calendar day the row was created.
// Approvers may change rows at any time.
func (s *pettyCashService) checkEditable(ctx context.Context, entry *domain.Transaction, userID string) error {
	if domain.SameDay(entry.CreatedAt, s.Now(), s.calc.Location()) {
		return nil
	}
	err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeaturePettyCashApproval)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrForbidden) {
		return apperrors.ErrEditWindowClosed
	}
	return err
}

// UpdateEntry edits a row. Edits never change the approval status: a pending
// row stays pending until an approver acts on it, and moving an approved row
// over the approval threshold is left to approvers, who re-sign it.
func (s *pettyCashService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdatePettyCashRequest, userID string) (*domain.Transaction, error) {
	entry, err := s.GetEntry(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	if entry.IsCarryForward() {
		return nil, fmt.Errorf("%w: carry-forward markers cannot be edited; delete and carry forward again", apperrors.ErrValidation)
	}
	if entry.ApprovalStatus == domain.StatusRejected {
		return nil, fmt.Errorf("%w: rejected entries cannot be edited", apperrors.ErrInvalidTransition)
	}
	if err := s.checkEditable(ctx, entry, userID); err != nil {
		return nil, err
	}
	prev := *entry

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
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		entry.Category = category
	}
	if req.PaymentMethod != nil {
		entry.PaymentMethod = *req.PaymentMethod
	}

	now := s.Now()
	moneyChanged := entry.Direction != prev.Direction || !entry.Amount.Equal(prev.Amount)
	if entry.ApprovalStatus == domain.StatusApproved && moneyChanged &&
		s.initialStatus(entry.Direction, entry.Amount) == domain.StatusPending {
		if err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeaturePettyCashApproval); err != nil {
			if errors.Is(err, apperrors.ErrForbidden) {
				return nil, fmt.Errorf("%w: only an approver may raise an approved entry above %s", apperrors.ErrForbidden, s.threshold)
			}
			return nil, err
		}
		entry.ApprovedBy = &userID
		entry.ApprovedAt = &now
	}

	entry.Touch(userID, now)
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update petty-cash entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update petty-cash entry: %w", err)
	}

	s.LogInfo(ctx, "Petty-cash entry updated",
		slog.String("entry_id", entryID),
		slog.String("status", string(entry.ApprovalStatus)))
	if entry.Counts() {
		if moneyChanged || !entry.Date.Equal(prev.Date) {
			s.warnIfCarriedForward(ctx, entry.Entity, prev.Date)
		}
		if !entry.Date.Equal(prev.Date) {
			s.warnIfCarriedForward(ctx, entry.Entity, entry.Date)
		}
	}
	return entry, nil
}

// DeleteEntry removes a row within the edit window.
func (s *pettyCashService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	entry, err := s.GetEntry(ctx, entryID, userID)
	if err != nil {
		return err
	}
	if entry.IsCarryForward() {
		if err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeaturePettyCashApproval); err != nil {
			return err
		}
	} else if err := s.checkEditable(ctx, entry, userID); err != nil {
		return err
	}

	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete petty-cash entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete petty-cash entry: %w", err)
	}
	s.LogInfo(ctx, "Petty-cash entry deleted", slog.String("entry_id", entryID))
	if !entry.IsCarryForward() && entry.Counts() {
		s.warnIfCarriedForward(ctx, entry.Entity, entry.Date)
	}
	return nil
}

// ListEntries returns the day's rows in display order.
func (s *pettyCashService) ListEntries(ctx context.Context, rawEntity, rawDay, userID string) ([]domain.Transaction, error) {
	entity, day, err := s.scope(ctx, rawEntity, rawDay, userID, domain.FeaturePettyCash)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerPettyCash, entity, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to list petty-cash entries", slog.String("entity", string(entity)))
		return nil, err
	}
	if entries == nil {
		return []domain.Transaction{}, nil
	}
	balance.SortForDisplay(entries)
	return entries, nil
}

// ListPending returns pending rows of every entity the approver may use.
func (s *pettyCashService) ListPending(ctx context.Context, userID string) ([]domain.Transaction, error) {
	entities, err := s.access.PermittedEntities(ctx, userID, domain.FeaturePettyCashApproval)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return []domain.Transaction{}, nil
	}
	entries, err := s.ledgerRepo.ListPendingEntries(ctx, entities)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending entries")
		return nil, err
	}
	if entries == nil {
		return []domain.Transaction{}, nil
	}
	return entries, nil
}

func (s *pettyCashService) decide(ctx context.Context, entryID, userID string, approve bool) (*domain.Transaction, error) {
	entry, err := s.load(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeEntity(ctx, userID, entry.Entity, domain.FeaturePettyCashApproval); err != nil {
		return nil, err
	}

	now := s.Now()
	if approve {
		err = entry.Approve(userID, now)
	} else {
		err = entry.Reject(userID, now)
	}
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to store approval decision", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to store approval decision: %w", err)
	}
	s.LogInfo(ctx, "Petty-cash entry decided",
		slog.String("entry_id", entryID),
		slog.String("status", string(entry.ApprovalStatus)))
	if approve {
		s.warnIfCarriedForward(ctx, entry.Entity, entry.Date)
	}
	return entry, nil
}

// warnIfCarriedForward logs a warning when day already has a marker opening
// the next day. The marker keeps the closing it was created with until it is
// deleted and the day carried forward again.
func (s *pettyCashService) warnIfCarriedForward(ctx context.Context, entity domain.EntityCode, day time.Time) {
	next := domain.AddDays(day, 1, s.calc.Location())
	rows, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerPettyCash, entity, next)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up carry-forward marker", slog.String("entity", string(entity)))
		return
	}
	for _, r := range rows {
		if r.IsCarryForward() && r.Counts() {
			s.LogWarn(ctx, "Closed day changed; next day's opening balance is stale",
				slog.String("entity", string(entity)),
				slog.String("day", day.Format(domain.DateLayout)),
				slog.String("marker_id", r.ID))
			return
		}
	}
}

// ApproveEntry moves a pending row to approved.
func (s *pettyCashService) ApproveEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	return s.decide(ctx, entryID, userID, true)
}

// RejectEntry moves a pending row to rejected.
func (s *pettyCashService) RejectEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	return s.decide(ctx, entryID, userID, false)
}

// DailyLedger computes the day view through the balance engine.
func (s *pettyCashService) DailyLedger(ctx context.Context, rawEntity, rawDay, userID string) (*balance.DailyLedger, []balance.Diagnostic, error) {
	entity, day, err := s.scope(ctx, rawEntity, rawDay, userID, domain.FeaturePettyCash)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerPettyCash, entity, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to load petty-cash day", slog.String("entity", string(entity)))
		return nil, nil, err
	}

	ledger, diags := s.calc.DailyLedger(rows, entity, day)
	s.LogDiagnostics(ctx, diags, slog.String("entity", string(entity)), slog.String("day", day.Format(domain.DateLayout)))
	return &ledger, diags, nil
}

// CarryForward closes day and stores its closing balance as the approved
// marker that opens the following day. A day may be opened only once.
func (s *pettyCashService) CarryForward(ctx context.Context, rawEntity, rawDay, userID string) (*domain.Transaction, error) {
	entity, day, err := s.scope(ctx, rawEntity, rawDay, userID, domain.FeaturePettyCashApproval)
	if err != nil {
		return nil, err
	}
	loc := s.calc.Location()
	next := domain.AddDays(day, 1, loc)

	var marker domain.Transaction
	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		nextRows, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerPettyCash, entity, next)
		if err != nil {
			return err
		}
		for _, r := range nextRows {
			if r.IsCarryForward() && r.ApprovalStatus != domain.StatusRejected {
				return fmt.Errorf("%w: %s is already opened by marker %s", apperrors.ErrDuplicate, next.Format(domain.DateLayout), r.ID)
			}
		}

		rows, err := s.ledgerRepo.ListEntriesByDay(ctx, domain.LedgerPettyCash, entity, day)
		if err != nil {
			return err
		}
		ledger, diags := s.calc.DailyLedger(rows, entity, day)
		s.LogDiagnostics(ctx, diags, slog.String("entity", string(entity)), slog.String("day", day.Format(domain.DateLayout)))
		if ledger.Closing.IsNegative() {
			return fmt.Errorf("%w: closing balance of %s is negative (%s)", apperrors.ErrValidation, day.Format(domain.DateLayout), ledger.Closing)
		}

		now := s.Now()
		marker = domain.Transaction{
			ID:             uuid.NewString(),
			Ledger:         domain.LedgerPettyCash,
			Date:           next,
			Entity:         entity,
			Direction:      domain.DirectionIn,
			Amount:         ledger.Closing,
			Description:    domain.CarryForwardDescription(day),
			ApprovalStatus: domain.StatusApproved,
			PaymentMethod:  domain.PaymentCash,
			Kind:           domain.KindCarryForward,
			ApprovedBy:     &userID,
			ApprovedAt:     &now,
			AuditFields:    domain.NewAuditFields(userID, now),
		}
		return s.ledgerRepo.SaveEntry(ctx, marker)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to carry balance forward",
				slog.String("entity", string(entity)),
				slog.String("day", day.Format(domain.DateLayout)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Balance carried forward",
		slog.String("entity", string(entity)),
		slog.String("opens", next.Format(domain.DateLayout)),
		slog.String("amount", marker.Amount.String()))
	return &marker, nil
}
