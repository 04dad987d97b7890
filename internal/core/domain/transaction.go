package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Ledger distinguishes the approval-gated petty-cash ledger from the cash-flow ledger.
type Ledger string

const (
	LedgerPettyCash Ledger = "petty_cash"
	LedgerCashFlow  Ledger = "cash_flow"
)

// Direction indicates whether money comes in ("masuk") or goes out ("keluar").
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ApprovalStatus is the petty-cash approval state.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// PaymentMethod is descriptive only and never used in balance math.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentNonCash PaymentMethod = "non_cash"
)

// RecordKind separates real ledger activity from synthesized carry-forward markers.
type RecordKind string

const (
	KindTransaction  RecordKind = "transaction"
	KindCarryForward RecordKind = "carry_forward"
)

// CarryForwardPhrase is the legacy marker phrase. It is only consulted when
// importing or migrating old data, never by balance computation.
const CarryForwardPhrase = "sisa saldo"

// IsLegacyCarryForwardDescription reports whether a legacy description marks a
// carry-forward row.
func IsLegacyCarryForwardDescription(description string) bool {
	return strings.Contains(strings.ToLower(description), CarryForwardPhrase)
}

// CarryForwardDescription is the description stored on synthesized markers.
func CarryForwardDescription(previousDay time.Time) string {
	return "Sisa Saldo tanggal " + previousDay.Format("02/01/2006")
}

func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

func (s ApprovalStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentNonCash
}

func (k RecordKind) Valid() bool {
	return k == KindTransaction || k == KindCarryForward
}

func (l Ledger) Valid() bool {
	return l == LedgerPettyCash || l == LedgerCashFlow
}

// Transaction is a single dated row of either ledger.
type Transaction struct {
	ID             string          `json:"id"`
	Ledger         Ledger          `json:"ledger"`
	Date           time.Time       `json:"date"`
	Entity         EntityCode      `json:"entity"`
	Direction      Direction       `json:"direction"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Category       string          `json:"category,omitempty"`      // petty cash: flat label
	SubCategoryID  *int64          `json:"subCategoryID,omitempty"` // cash flow: FK -> sub_categories
	ApprovalStatus ApprovalStatus  `json:"approvalStatus,omitempty"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod,omitempty"`
	Kind           RecordKind      `json:"kind"`
	ApprovedBy     *string         `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time      `json:"approvedAt,omitempty"`
	AuditFields
}

// IsCarryForward reports whether the row is a carry-forward marker.
func (t Transaction) IsCarryForward() bool {
	return t.Kind == KindCarryForward
}

// Counts reports whether the row contributes to balances. Cash-flow rows
// always count; petty-cash rows only once approved.
func (t Transaction) Counts() bool {
	if t.Ledger == LedgerCashFlow {
		return true
	}
	return t.ApprovalStatus == StatusApproved
}

// SignedAmount is +Amount for inflows and -Amount for outflows.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionOut {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the structural requirements every stored row satisfies.
// Entity membership is checked by the caller, which knows the configured set.
func (t Transaction) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if !t.Ledger.Valid() {
		errs = append(errs, fmt.Errorf("unknown ledger %q", t.Ledger))
	}
	if t.Date.IsZero() {
		errs = append(errs, errors.New("date is required"))
	}
	if t.Entity == "" {
		errs = append(errs, errors.New("entity is required"))
	}
	if !t.Direction.Valid() {
		errs = append(errs, fmt.Errorf("unknown direction %q", t.Direction))
	}
	if t.Amount.IsNegative() {
		errs = append(errs, errors.New("amount must not be negative"))
	}
	if !t.Kind.Valid() {
		errs = append(errs, fmt.Errorf("unknown record kind %q", t.Kind))
	}
	switch t.Ledger {
	case LedgerPettyCash:
		if !t.ApprovalStatus.Valid() {
			errs = append(errs, fmt.Errorf("unknown approval status %q", t.ApprovalStatus))
		}
	case LedgerCashFlow:
		if t.Kind == KindCarryForward {
			errs = append(errs, errors.New("cash-flow ledger has no carry-forward markers"))
		}
		if t.PaymentMethod != "" && !t.PaymentMethod.Valid() {
			errs = append(errs, fmt.Errorf("unknown payment method %q", t.PaymentMethod))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, errors.Join(errs...))
}

// Approve moves a pending petty-cash entry to approved.
func (t *Transaction) Approve(approverID string, now time.Time) error {
	return t.decide(StatusApproved, approverID, now)
}

// Reject moves a pending petty-cash entry to rejected.
func (t *Transaction) Reject(approverID string, now time.Time) error {
	return t.decide(StatusRejected, approverID, now)
}

func (t *Transaction) decide(to ApprovalStatus, approverID string, now time.Time) error {
	if t.Ledger != LedgerPettyCash {
		return fmt.Errorf("%w: only petty-cash entries are approval gated", apperrors.ErrInvalidTransition)
	}
	if t.ApprovalStatus != StatusPending {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, t.ApprovalStatus, to)
	}
	t.ApprovalStatus = to
	t.ApprovedBy = &approverID
	t.ApprovedAt = &now
	t.Touch(approverID, now)
	return nil
}
