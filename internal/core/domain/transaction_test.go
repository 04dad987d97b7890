package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPettyCash() domain.Transaction {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	return domain.Transaction{
		ID:             "txn_1",
		Ledger:         domain.LedgerPettyCash,
		Date:           now,
		Entity:         "KSS",
		Direction:      domain.DirectionOut,
		Amount:         decimal.NewFromInt(30000),
		Description:    "Bensin",
		ApprovalStatus: domain.StatusPending,
		PaymentMethod:  domain.PaymentCash,
		Kind:           domain.KindTransaction,
		AuditFields:    domain.NewAuditFields("user_1", now),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *domain.Transaction)
		wantErr bool
		errMsg  string
	}{
		{name: "valid petty cash entry", mutate: func(tx *domain.Transaction) {}},
		{name: "zero amount is allowed", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.Zero }},
		{
			name:    "missing id",
			mutate:  func(tx *domain.Transaction) { tx.ID = "" },
			wantErr: true,
			errMsg:  "id is required",
		},
		{
			name:    "negative amount",
			mutate:  func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(-1) },
			wantErr: true,
			errMsg:  "amount must not be negative",
		},
		{
			name:    "unknown direction",
			mutate:  func(tx *domain.Transaction) { tx.Direction = "up" },
			wantErr: true,
			errMsg:  `unknown direction "up"`,
		},
		{
			name:    "missing date",
			mutate:  func(tx *domain.Transaction) { tx.Date = time.Time{} },
			wantErr: true,
			errMsg:  "date is required",
		},
		{
			name:    "petty cash without status",
			mutate:  func(tx *domain.Transaction) { tx.ApprovalStatus = "" },
			wantErr: true,
			errMsg:  "unknown approval status",
		},
		{
			name: "cash flow carry-forward marker",
			mutate: func(tx *domain.Transaction) {
				tx.Ledger = domain.LedgerCashFlow
				tx.Kind = domain.KindCarryForward
			},
			wantErr: true,
			errMsg:  "cash-flow ledger has no carry-forward markers",
		},
		{
			name: "cash flow ignores approval status",
			mutate: func(tx *domain.Transaction) {
				tx.Ledger = domain.LedgerCashFlow
				tx.ApprovalStatus = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validPettyCash()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Counts(t *testing.T) {
	tx := validPettyCash()
	assert.False(t, tx.Counts())
	tx.ApprovalStatus = domain.StatusApproved
	assert.True(t, tx.Counts())
	tx.ApprovalStatus = domain.StatusRejected
	assert.False(t, tx.Counts())

	tx.Ledger = domain.LedgerCashFlow
	assert.True(t, tx.Counts(), "cash flow has no approval gate")
}

func TestTransaction_SignedAmount(t *testing.T) {
	tx := validPettyCash()
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(-30000)))
	tx.Direction = domain.DirectionIn
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(30000)))
}

func TestTransaction_ApprovalTransitions(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tx := validPettyCash()
	require.NoError(t, tx.Approve("boss", now))
	assert.Equal(t, domain.StatusApproved, tx.ApprovalStatus)
	require.NotNil(t, tx.ApprovedBy)
	assert.Equal(t, "boss", *tx.ApprovedBy)
	assert.Equal(t, "boss", tx.LastUpdatedBy)

	assert.ErrorIs(t, tx.Approve("boss", now), apperrors.ErrInvalidTransition)
	assert.ErrorIs(t, tx.Reject("boss", now), apperrors.ErrInvalidTransition)

	rejected := validPettyCash()
	require.NoError(t, rejected.Reject("boss", now))
	assert.Equal(t, domain.StatusRejected, rejected.ApprovalStatus)
	assert.ErrorIs(t, rejected.Approve("boss", now), apperrors.ErrInvalidTransition)

	cash := validPettyCash()
	cash.Ledger = domain.LedgerCashFlow
	assert.ErrorIs(t, cash.Approve("boss", now), apperrors.ErrInvalidTransition)
}

func TestCarryForwardDescription(t *testing.T) {
	desc := domain.CarryForwardDescription(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Sisa Saldo tanggal 01/01/2024", desc)
	assert.True(t, domain.IsLegacyCarryForwardDescription(desc))
	assert.True(t, domain.IsLegacyCarryForwardDescription("SISA SALDO kemarin"))
	assert.False(t, domain.IsLegacyCarryForwardDescription("Saldo awal"))
}
