package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorDate_KeepsCalendarDay(t *testing.T) {
	wib, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	scanned := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	got := AnchorDate(scanned, wib)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, wib), got)

	// 2024-03-01 00:30 WIB is 2024-02-29 in UTC.
	early := time.Date(2024, time.March, 1, 0, 30, 0, 0, wib)
	assert.Equal(t, "2024-03-01", DateParam(early.UTC(), wib))
}

func TestLedgerEntryMapping_NullableColumns(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	cashFlow := domain.Transaction{
		ID:        "cf-1",
		Ledger:    domain.LedgerCashFlow,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, wib),
		Entity:    "KSS",
		Direction: domain.DirectionIn,
		Amount:    decimal.NewFromInt(10),
		Kind:      domain.KindTransaction,
	}

	m := ToModelLedgerEntry(cashFlow)
	assert.Nil(t, m.ApprovalStatus)
	assert.Nil(t, m.Category)
	assert.Nil(t, m.PaymentMethod)

	back := ToDomainLedgerEntry(m, wib)
	assert.Empty(t, back.ApprovalStatus)
	assert.Empty(t, back.Category)
	assert.True(t, back.Date.Equal(cashFlow.Date))
}

func TestUserMapping_Entities(t *testing.T) {
	u := domain.User{UserID: "u1", Entities: []domain.EntityCode{"KSS", "KSB"}}
	m := ToModelUser(u)
	assert.Equal(t, []string{"KSS", "KSB"}, m.Entities)
	assert.Equal(t, u.Entities, ToDomainUser(m).Entities)
}
