package services

import (
	"context"

	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/dto"
)

// PettyCashReaderSvc defines read operations on the petty-cash ledger
type PettyCashReaderSvc interface {
	GetEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error)

	// ListEntries returns every row of entity on the day, markers included.
	ListEntries(ctx context.Context, entity, day, userID string) ([]domain.Transaction, error)

	// ListPending returns pending rows across the entities the approver may use.
	ListPending(ctx context.Context, userID string) ([]domain.Transaction, error)

	// DailyLedger returns the day with opening balance, running balances and totals.
	DailyLedger(ctx context.Context, entity, day, userID string) (*balance.DailyLedger, []balance.Diagnostic, error)
}

// PettyCashWriterSvc defines write operations on the petty-cash ledger
type PettyCashWriterSvc interface {
	CreateEntry(ctx context.Context, req dto.CreatePettyCashRequest, userID string) (*domain.Transaction, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdatePettyCashRequest, userID string) (*domain.Transaction, error)
	DeleteEntry(ctx context.Context, entryID, userID string) error

	// CarryForward stores the closing balance of day as the marker opening the next day.
	CarryForward(ctx context.Context, entity, day, userID string) (*domain.Transaction, error)
}

// PettyCashApprovalSvc defines the approval workflow
type PettyCashApprovalSvc interface {
	ApproveEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error)
	RejectEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error)
}

// PettyCashSvcFacade combines all petty-cash service interfaces
type PettyCashSvcFacade interface {
	PettyCashReaderSvc
	PettyCashWriterSvc
	PettyCashApprovalSvc
}

// CashFlowReaderSvc defines read operations on the cash-flow ledger
type CashFlowReaderSvc interface {
	GetEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error)

	// ListEntries returns entity's rows dated between from and to inclusive.
	ListEntries(ctx context.Context, entity, from, to, userID string) ([]domain.Transaction, error)

	// DailyLedger returns the day's rows with running balances and totals.
	DailyLedger(ctx context.Context, entity, day, userID string) (*balance.DailyLedger, []balance.Diagnostic, error)
}

// CashFlowWriterSvc defines write operations on the cash-flow ledger
type CashFlowWriterSvc interface {
	CreateEntry(ctx context.Context, req dto.CreateCashFlowRequest, userID string) (*domain.Transaction, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowRequest, userID string) (*domain.Transaction, error)
	DeleteEntry(ctx context.Context, entryID, userID string) error
}

// CashFlowSvcFacade combines all cash-flow service interfaces
type CashFlowSvcFacade interface {
	CashFlowReaderSvc
	CashFlowWriterSvc
}

// SalesSvcFacade defines sales recording and summaries
type SalesSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateSalesRequest, userID string) (*domain.SalesEntry, error)
	GetEntry(ctx context.Context, entryID, userID string) (*domain.SalesEntry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateSalesRequest, userID string) (*domain.SalesEntry, error)
	DeleteEntry(ctx context.Context, entryID, userID string) error
	ListEntries(ctx context.Context, entity, month, userID string) ([]domain.SalesEntry, error)
	MonthlySummary(ctx context.Context, entity, month, userID string) (*domain.SalesSummary, error)
}
