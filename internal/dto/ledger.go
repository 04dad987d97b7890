package dto

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePettyCashRequest defines the data needed to record a petty-cash entry.
type CreatePettyCashRequest struct {
	Date          string               `json:"date" binding:"required" example:"2024-01-02"`
	Entity        string               `json:"entity" binding:"required" example:"KSS"`
	Direction     domain.Direction     `json:"direction" binding:"required,direction"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string" example:"30000"`
	Description   string               `json:"description" binding:"required,max=255"`
	Category      string               `json:"category" binding:"max=100"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
}

// UpdatePettyCashRequest defines the editable fields of a petty-cash entry.
// Pointers distinguish omitted fields from zero values.
type UpdatePettyCashRequest struct {
	Date          *string               `json:"date"`
	Direction     *domain.Direction     `json:"direction" binding:"omitempty,direction"`
	Amount        *decimal.Decimal      `json:"amount" swaggertype:"string"`
	Description   *string               `json:"description" binding:"omitempty,max=255"`
	Category      *string               `json:"category" binding:"omitempty,max=100"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
}

// CarryForwardRequest asks for the closing balance of Date to be carried into the next day.
type CarryForwardRequest struct {
	Entity string `json:"entity" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

// CreateCashFlowRequest defines the data needed to record a cash-flow entry.
type CreateCashFlowRequest struct {
	Date          string               `json:"date" binding:"required" example:"2024-01-02"`
	Entity        string               `json:"entity" binding:"required" example:"KSS"`
	Direction     domain.Direction     `json:"direction" binding:"required,direction"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string" example:"5000000"`
	Description   string               `json:"description" binding:"required,max=255"`
	SubCategoryID int64                `json:"subCategoryID" binding:"required,gt=0"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
}

// UpdateCashFlowRequest defines the editable fields of a cash-flow entry.
type UpdateCashFlowRequest struct {
	Date          *string               `json:"date"`
	Direction     *domain.Direction     `json:"direction" binding:"omitempty,direction"`
	Amount        *decimal.Decimal      `json:"amount" swaggertype:"string"`
	Description   *string               `json:"description" binding:"omitempty,max=255"`
	SubCategoryID *int64                `json:"subCategoryID" binding:"omitempty,gt=0"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
}

// DayQuery selects one entity and calendar day.
type DayQuery struct {
	Entity string `form:"entity" binding:"required"`
	Date   string `form:"date" binding:"required"`
}

// RangeQuery selects one entity and an inclusive date range.
type RangeQuery struct {
	Entity string `form:"entity" binding:"required"`
	From   string `form:"from" binding:"required"`
	To     string `form:"to" binding:"required"`
}

// EntryResponse defines the data returned for a ledger row.
type EntryResponse struct {
	ID             string                `json:"id"`
	Ledger         domain.Ledger         `json:"ledger"`
	Date           string                `json:"date"`
	Entity         domain.EntityCode     `json:"entity"`
	Direction      domain.Direction      `json:"direction"`
	Amount         decimal.Decimal       `json:"amount" swaggertype:"string"`
	Description    string                `json:"description"`
	Category       string                `json:"category,omitempty"`
	SubCategoryID  *int64                `json:"subCategoryID,omitempty"`
	ApprovalStatus domain.ApprovalStatus `json:"approvalStatus,omitempty"`
	PaymentMethod  domain.PaymentMethod  `json:"paymentMethod,omitempty"`
	Kind           domain.RecordKind     `json:"kind"`
	ApprovedBy     *string               `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time            `json:"approvedAt,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// ToEntryResponse converts a domain.Transaction to EntryResponse DTO
func ToEntryResponse(t *domain.Transaction) EntryResponse {
	return EntryResponse{
		ID:             t.ID,
		Ledger:         t.Ledger,
		Date:           t.Date.Format(domain.DateLayout),
		Entity:         t.Entity,
		Direction:      t.Direction,
		Amount:         t.Amount,
		Description:    t.Description,
		Category:       t.Category,
		SubCategoryID:  t.SubCategoryID,
		ApprovalStatus: t.ApprovalStatus,
		PaymentMethod:  t.PaymentMethod,
		Kind:           t.Kind,
		ApprovedBy:     t.ApprovedBy,
		ApprovedAt:     t.ApprovedAt,
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
		LastUpdatedAt:  t.LastUpdatedAt,
		LastUpdatedBy:  t.LastUpdatedBy,
	}
}

// ToListEntryResponse converts a slice of domain.Transaction to EntryResponse DTOs
func ToListEntryResponse(entries []domain.Transaction) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}

// DiagnosticResponse reports a row left out of a computation.
type DiagnosticResponse struct {
	Kind          balance.DiagnosticKind `json:"kind"`
	TransactionID string                 `json:"transactionID,omitempty"`
	Message       string                 `json:"message"`
}

// ToDiagnosticResponses converts engine diagnostics; the result is never nil.
func ToDiagnosticResponses(diags []balance.Diagnostic) []DiagnosticResponse {
	res := make([]DiagnosticResponse, len(diags))
	for i, d := range diags {
		res[i] = DiagnosticResponse{Kind: d.Kind, TransactionID: d.TransactionID, Message: d.Message}
	}
	return res
}

// OpeningResponse describes how a day opened.
type OpeningResponse struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	PreviousDay string          `json:"previousDay"`
	Markers     int             `json:"markers"`
	Missing     bool            `json:"missing"`
}

// LedgerLineResponse is an entry with the running balance after it.
type LedgerLineResponse struct {
	Entry   EntryResponse   `json:"entry"`
	Balance decimal.Decimal `json:"balance" swaggertype:"string"`
	Counted bool            `json:"counted"`
}

// TotalsResponse is a day's movement.
type TotalsResponse struct {
	In  decimal.Decimal `json:"in" swaggertype:"string"`
	Out decimal.Decimal `json:"out" swaggertype:"string"`
	Net decimal.Decimal `json:"net" swaggertype:"string"`
}

// DailyLedgerResponse is one entity's day: opening, lines with running balance, totals and closing.
type DailyLedgerResponse struct {
	Entity      domain.EntityCode    `json:"entity"`
	Date        string               `json:"date"`
	Opening     *OpeningResponse     `json:"opening,omitempty"`
	Lines       []LedgerLineResponse `json:"lines"`
	Totals      TotalsResponse       `json:"totals"`
	Closing     decimal.Decimal      `json:"closing" swaggertype:"string"`
	Diagnostics []DiagnosticResponse `json:"diagnostics"`
}

// ToDailyLedgerResponse converts an engine DailyLedger. Cash-flow days have no
// opening, so withOpening is false for them.
func ToDailyLedgerResponse(l balance.DailyLedger, diags []balance.Diagnostic, withOpening bool) DailyLedgerResponse {
	lines := make([]LedgerLineResponse, len(l.Lines))
	for i := range l.Lines {
		lines[i] = LedgerLineResponse{
			Entry:   ToEntryResponse(&l.Lines[i].Transaction),
			Balance: l.Lines[i].Balance,
			Counted: l.Lines[i].Counted,
		}
	}
	res := DailyLedgerResponse{
		Entity:      l.Entity,
		Date:        l.Day.Format(domain.DateLayout),
		Lines:       lines,
		Totals:      TotalsResponse{In: l.Totals.In, Out: l.Totals.Out, Net: l.Totals.Net},
		Closing:     l.Closing,
		Diagnostics: ToDiagnosticResponses(diags),
	}
	if withOpening {
		res.Opening = &OpeningResponse{
			Amount:      l.Opening.Amount,
			PreviousDay: l.Opening.PreviousDay.Format(domain.DateLayout),
			Markers:     l.Opening.Markers,
			Missing:     l.Opening.Missing(),
		}
	}
	return res
}
