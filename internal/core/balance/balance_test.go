package balance_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

var entities = []domain.EntityCode{"KSS", "KSP", "KSU", "KSB", "KSM"}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, wib)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDec(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %d, got %s %v", want, got.String(), msgAndArgs)
}

var seq int

func petty(id string, entity domain.EntityCode, date time.Time, dir domain.Direction, amount int64, status domain.ApprovalStatus) domain.Transaction {
	seq++
	return domain.Transaction{
		ID:             id,
		Ledger:         domain.LedgerPettyCash,
		Date:           date,
		Entity:         entity,
		Direction:      dir,
		Amount:         dec(amount),
		Description:    id,
		ApprovalStatus: status,
		PaymentMethod:  domain.PaymentCash,
		Kind:           domain.KindTransaction,
		AuditFields:    domain.NewAuditFields("u1", date.Add(time.Duration(seq)*time.Minute)),
	}
}

func marker(id string, entity domain.EntityCode, opens time.Time, amount int64) domain.Transaction {
	t := petty(id, entity, opens, domain.DirectionIn, amount, domain.StatusApproved)
	t.Kind = domain.KindCarryForward
	t.Description = domain.CarryForwardDescription(opens.AddDate(0, 0, -1))
	return t
}

func cashFlow(id string, entity domain.EntityCode, date time.Time, dir domain.Direction, amount int64, subCategoryID int64) domain.Transaction {
	seq++
	sc := subCategoryID
	return domain.Transaction{
		ID:            id,
		Ledger:        domain.LedgerCashFlow,
		Date:          date,
		Entity:        entity,
		Direction:     dir,
		Amount:        dec(amount),
		Description:   id,
		SubCategoryID: &sc,
		PaymentMethod: domain.PaymentNonCash,
		Kind:          domain.KindTransaction,
		AuditFields:   domain.NewAuditFields("u1", date.Add(time.Duration(seq)*time.Minute)),
	}
}

func newCalc() *balance.Calculator {
	return balance.NewCalculator(entities, wib)
}

func diagKinds(diags []balance.Diagnostic) []balance.DiagnosticKind {
	kinds := make([]balance.DiagnosticKind, 0, len(diags))
	for _, d := range diags {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

// KSS: day 1 receives 100000; day 2 opens with a marker of 100000, spends
// 30000 and has a 50000 expense still pending.
func kssScenario() []domain.Transaction {
	d1, d2 := day(2024, 1, 1), day(2024, 1, 2)
	return []domain.Transaction{
		petty("t1", "KSS", d1, domain.DirectionIn, 100000, domain.StatusApproved),
		marker("m2", "KSS", d2, 100000),
		petty("t2", "KSS", d2, domain.DirectionOut, 30000, domain.StatusApproved),
		petty("t3", "KSS", d2, domain.DirectionOut, 50000, domain.StatusPending),
	}
}

func TestDailyTotals_ScenarioDays(t *testing.T) {
	calc := newCalc()
	txns := kssScenario()

	d1, diags := calc.DailyTotals(txns, "KSS", day(2024, 1, 1))
	assert.Empty(t, diags)
	assertDec(t, 100000, d1.In)
	assertDec(t, 0, d1.Out)
	assertDec(t, 100000, d1.Net)

	d2, diags := calc.DailyTotals(txns, "KSS", day(2024, 1, 2))
	assert.Empty(t, diags)
	assertDec(t, 0, d2.In, "marker is not activity")
	assertDec(t, 30000, d2.Out, "pending outflow is excluded")
	assertDec(t, -30000, d2.Net)
}

func TestDailyTotals_EmptyInput(t *testing.T) {
	totals, diags := newCalc().DailyTotals(nil, "KSS", day(2024, 1, 1))
	assert.Empty(t, diags)
	assertDec(t, 0, totals.In)
	assertDec(t, 0, totals.Out)
	assertDec(t, 0, totals.Net)
}

func TestDailyTotals_FiltersEntityDayAndStatus(t *testing.T) {
	d := day(2024, 3, 10)
	txns := []domain.Transaction{
		petty("a", "KSS", d, domain.DirectionIn, 500, domain.StatusApproved),
		petty("b", "KSP", d, domain.DirectionIn, 700, domain.StatusApproved),
		petty("c", "KSS", d.AddDate(0, 0, 1), domain.DirectionIn, 900, domain.StatusApproved),
		petty("d", "KSS", d, domain.DirectionOut, 200, domain.StatusRejected),
		petty("e", "KSS", d, domain.DirectionOut, 100, domain.StatusPending),
	}
	totals, diags := newCalc().DailyTotals(txns, "KSS", d)
	assert.Empty(t, diags)
	assertDec(t, 500, totals.In)
	assertDec(t, 0, totals.Out)
}

func TestDailyTotals_UsesLocalCalendarDay(t *testing.T) {
	// 17:30 UTC on Jan 1 is 00:30 on Jan 2 in WIB.
	late := time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC)
	txns := []domain.Transaction{petty("a", "KSS", late, domain.DirectionIn, 100, domain.StatusApproved)}
	calc := newCalc()

	jan1, _ := calc.DailyTotals(txns, "KSS", day(2024, 1, 1))
	jan2, _ := calc.DailyTotals(txns, "KSS", day(2024, 1, 2))
	assertDec(t, 0, jan1.In)
	assertDec(t, 100, jan2.In)
}

func TestDailyTotals_Idempotent(t *testing.T) {
	calc := newCalc()
	txns := kssScenario()
	first, _ := calc.DailyTotals(txns, "KSS", day(2024, 1, 2))
	second, _ := calc.DailyTotals(txns, "KSS", day(2024, 1, 2))
	assert.True(t, first.In.Equal(second.In))
	assert.True(t, first.Out.Equal(second.Out))
	assert.True(t, first.Net.Equal(second.Net))
}

func TestDailyTotals_Additive(t *testing.T) {
	d := day(2024, 5, 5)
	a := []domain.Transaction{
		petty("a1", "KSU", d, domain.DirectionIn, 1000, domain.StatusApproved),
		petty("a2", "KSU", d, domain.DirectionOut, 250, domain.StatusApproved),
	}
	b := []domain.Transaction{
		petty("b1", "KSU", d, domain.DirectionIn, 40, domain.StatusApproved),
		petty("b2", "KSU", d, domain.DirectionOut, 3000, domain.StatusApproved),
	}
	calc := newCalc()
	ta, _ := calc.DailyTotals(a, "KSU", d)
	tb, _ := calc.DailyTotals(b, "KSU", d)
	tab, _ := calc.DailyTotals(append(append([]domain.Transaction{}, a...), b...), "KSU", d)

	assert.True(t, tab.In.Equal(ta.In.Add(tb.In)))
	assert.True(t, tab.Out.Equal(ta.Out.Add(tb.Out)))
	assert.True(t, tab.Net.Equal(ta.Net.Add(tb.Net)))
	assertDec(t, -2210, tab.Net, "net may go negative")
}

func TestDailyTotals_InvalidRowsAreExcludedWithDiagnostics(t *testing.T) {
	d := day(2024, 2, 2)
	noID := petty("", "KSS", d, domain.DirectionIn, 10, domain.StatusApproved)
	unknown := petty("x1", "XYZ", d, domain.DirectionIn, 10, domain.StatusApproved)
	negative := petty("x2", "KSS", d, domain.DirectionIn, -10, domain.StatusApproved)
	badDir := petty("x3", "KSS", d, "sideways", 10, domain.StatusApproved)
	ok := petty("ok", "KSS", d, domain.DirectionIn, 10, domain.StatusApproved)

	totals, diags := newCalc().DailyTotals([]domain.Transaction{noID, unknown, negative, badDir, ok}, "KSS", d)
	assertDec(t, 10, totals.In)
	require.Len(t, diags, 4)
	for _, diag := range diags {
		assert.Equal(t, balance.DiagInvalidInput, diag.Kind)
		assert.ErrorIs(t, diag, apperrors.ErrInvalidInput)
	}
	assert.Equal(t, "x1", diags[1].TransactionID)
}

func TestOpeningBalance_FromMarker(t *testing.T) {
	opening, diags := newCalc().OpeningBalance(kssScenario(), "KSS", day(2024, 1, 2))
	assert.Empty(t, diags)
	assertDec(t, 100000, opening.Amount)
	assert.Equal(t, 1, opening.Markers)
	assert.Equal(t, []string{"m2"}, opening.MarkerIDs)
	assert.False(t, opening.Missing())
	assert.True(t, opening.PreviousDay.Equal(day(2024, 1, 1)))
}

func TestOpeningBalance_MissingIsDistinctFromZero(t *testing.T) {
	calc := newCalc()
	d := day(2024, 1, 3)

	missing, diags := calc.OpeningBalance(kssScenario(), "KSS", d)
	assertDec(t, 0, missing.Amount)
	assert.True(t, missing.Missing())
	require.Len(t, diags, 1)
	assert.Equal(t, balance.DiagMissingCarryForward, diags[0].Kind)
	assert.True(t, errors.Is(diags[0], apperrors.ErrMissingCarryForward))

	zero, diags := calc.OpeningBalance([]domain.Transaction{marker("m0", "KSS", d, 0)}, "KSS", d)
	assert.Empty(t, diags)
	assertDec(t, 0, zero.Amount)
	assert.False(t, zero.Missing())
}

func TestOpeningBalance_SumsMultipleMarkers(t *testing.T) {
	d := day(2024, 4, 1)
	txns := []domain.Transaction{
		marker("m1", "KSB", d, 1500),
		marker("m2", "KSB", d, 2500),
		marker("other", "KSM", d, 9999),
	}
	opening, diags := newCalc().OpeningBalance(txns, "KSB", d)
	assert.Empty(t, diags)
	assertDec(t, 4000, opening.Amount)
	assert.Equal(t, 2, opening.Markers)
}

func TestOpeningBalance_IgnoresNonCountingMarkersAndOtherDays(t *testing.T) {
	d := day(2024, 4, 2)
	pending := marker("p", "KSS", d, 500)
	pending.ApprovalStatus = domain.StatusPending
	earlier := marker("e", "KSS", d.AddDate(0, 0, -1), 800)

	opening, diags := newCalc().OpeningBalance([]domain.Transaction{pending, earlier}, "KSS", d)
	assert.True(t, opening.Missing())
	assertDec(t, 0, opening.Amount)
	assert.Equal(t, []balance.DiagnosticKind{balance.DiagMissingCarryForward}, diagKinds(diags))
}

func TestWithRunningBalance_Scenario(t *testing.T) {
	txns := kssScenario()[1:]
	lines, diags := newCalc().WithRunningBalance(txns)
	assert.Empty(t, diags)
	require.Len(t, lines, 3)

	assertDec(t, 100000, lines[0].Balance)
	assertDec(t, 70000, lines[1].Balance)
	assertDec(t, 70000, lines[2].Balance, "pending row keeps the balance")
	assert.True(t, lines[1].Counted)
	assert.False(t, lines[2].Counted)
	assert.Equal(t, "t3", lines[2].Transaction.ID)
}

func TestWithRunningBalance_RejectedAndPendingKeepBalance(t *testing.T) {
	d := day(2024, 1, 2)
	lines, diags := newCalc().WithRunningBalance([]domain.Transaction{
		marker("m", "KSS", d, 100000),
		petty("r", "KSS", d, domain.DirectionOut, 40000, domain.StatusRejected),
		petty("o", "KSS", d, domain.DirectionOut, 25000, domain.StatusApproved),
		petty("p", "KSS", d, domain.DirectionOut, 60000, domain.StatusPending),
		petty("i", "KSS", d, domain.DirectionIn, 5000, domain.StatusApproved),
	})
	assert.Empty(t, diags)
	require.Len(t, lines, 5)

	assert.False(t, lines[1].Counted)
	assertDec(t, 100000, lines[1].Balance, "rejected row keeps the balance")
	assertDec(t, 75000, lines[2].Balance)
	assert.False(t, lines[3].Counted)
	assertDec(t, 75000, lines[3].Balance, "pending row keeps the balance")
	assertDec(t, 80000, lines[4].Balance)
}

func TestWithRunningBalance_Idempotent(t *testing.T) {
	d := day(2024, 1, 2)
	txns := []domain.Transaction{
		marker("m", "KSS", d, 100000),
		petty("a", "KSS", d, domain.DirectionOut, 30000, domain.StatusApproved),
		petty("p", "KSS", d, domain.DirectionOut, 50000, domain.StatusPending),
		petty("r", "KSS", d, domain.DirectionOut, 20000, domain.StatusRejected),
		petty("b", "KSS", d, domain.DirectionIn, 15000, domain.StatusApproved),
	}
	calc := newCalc()

	first, firstDiags := calc.WithRunningBalance(txns)
	second, secondDiags := calc.WithRunningBalance(txns)

	assert.Equal(t, firstDiags, secondDiags)
	require.Len(t, first, len(txns))
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Transaction.ID, second[i].Transaction.ID)
		assert.Equal(t, first[i].Counted, second[i].Counted)
		assert.Truef(t, first[i].Balance.Equal(second[i].Balance), "line %d: %s != %s", i, first[i].Balance, second[i].Balance)
	}
	assertDec(t, 85000, second[len(second)-1].Balance)
}

func TestWithRunningBalance_Empty(t *testing.T) {
	lines, diags := newCalc().WithRunningBalance(nil)
	assert.Empty(t, lines)
	assert.Empty(t, diags)
}

func TestWithRunningBalance_InvalidRowIsEmittedUncounted(t *testing.T) {
	d := day(2024, 1, 5)
	bad := petty("bad", "KSS", d, domain.DirectionIn, -5, domain.StatusApproved)
	lines, diags := newCalc().WithRunningBalance([]domain.Transaction{
		petty("a", "KSS", d, domain.DirectionIn, 10, domain.StatusApproved),
		bad,
	})
	require.Len(t, lines, 2)
	assert.False(t, lines[1].Counted)
	assertDec(t, 10, lines[1].Balance)
	assert.Equal(t, []balance.DiagnosticKind{balance.DiagInvalidInput}, diagKinds(diags))
}

func TestDailyLedger_RunningBalanceMatchesClosing(t *testing.T) {
	d2 := day(2024, 1, 2)
	txns := kssScenario()
	// marker inserted after the day's activity still leads the display
	late := txns[1]
	late.CreatedAt = d2.Add(20 * time.Hour)
	txns[1] = late

	ledger, diags := newCalc().DailyLedger(txns, "KSS", d2)
	assert.Empty(t, diags)
	require.Len(t, ledger.Lines, 3)
	assert.Equal(t, "m2", ledger.Lines[0].Transaction.ID)
	assertDec(t, 100000, ledger.Opening.Amount)
	assertDec(t, -30000, ledger.Totals.Net)
	assertDec(t, 70000, ledger.Closing)
	assert.True(t, ledger.Closing.Equal(ledger.Lines[len(ledger.Lines)-1].Balance))
}

func TestDailyLedger_ClosingFeedsNextOpening(t *testing.T) {
	calc := newCalc()
	d1, d2 := day(2024, 1, 1), day(2024, 1, 2)
	txns := []domain.Transaction{
		marker("m1", "KSS", d1, 0),
		petty("t1", "KSS", d1, domain.DirectionIn, 100000, domain.StatusApproved),
	}
	l1, _ := calc.DailyLedger(txns, "KSS", d1)
	assertDec(t, 100000, l1.Closing)

	txns = append(txns, marker("m2", "KSS", d2, l1.Closing.IntPart()))
	opening, diags := calc.OpeningBalance(txns, "KSS", d2)
	assert.Empty(t, diags)
	assert.True(t, opening.Amount.Equal(l1.Closing))
}

func TestDailyLedger_MissingMarker(t *testing.T) {
	d := day(2024, 6, 1)
	ledger, diags := newCalc().DailyLedger([]domain.Transaction{
		petty("a", "KSP", d, domain.DirectionIn, 100, domain.StatusApproved),
	}, "KSP", d)
	assert.True(t, ledger.Opening.Missing())
	assertDec(t, 100, ledger.Closing)
	assert.Equal(t, []balance.DiagnosticKind{balance.DiagMissingCarryForward}, diagKinds(diags))
}

func TestSortForDisplay_TieBreaksByID(t *testing.T) {
	d := day(2024, 1, 1)
	a := petty("b", "KSS", d, domain.DirectionIn, 1, domain.StatusApproved)
	b := petty("a", "KSS", d, domain.DirectionIn, 1, domain.StatusApproved)
	b.CreatedAt = a.CreatedAt
	rows := []domain.Transaction{a, b}
	balance.SortForDisplay(rows)
	assert.Equal(t, "a", rows[0].ID)
}

func subCategories() []domain.SubCategory {
	return []domain.SubCategory{
		{ID: 1, Kind: domain.KindIncome, Name: "PENJUALAN", SortOrder: 1},
		{ID: 2, Kind: domain.KindIncome, Name: "LAIN-LAIN", SortOrder: 1},
		{ID: 5, Kind: domain.KindExpense, Name: "GAJI", SortOrder: 1},
		{ID: 7, Kind: domain.KindExpense, Name: "OPERASIONAL", SortOrder: 0},
	}
}

func TestProfitAndLoss_GroupsAndOrders(t *testing.T) {
	jan := domain.YearMonth{Year: 2024, Month: time.January}
	txns := []domain.Transaction{
		cashFlow("c1", "KSS", day(2024, 1, 3), domain.DirectionOut, 5000000, 5),
		cashFlow("c2", "KSS", day(2024, 1, 4), domain.DirectionOut, 1000000, 7),
		cashFlow("c3", "KSP", day(2024, 1, 5), domain.DirectionOut, 500000, 7),
		cashFlow("c4", "KSS", day(2024, 1, 6), domain.DirectionIn, 8000000, 1),
		cashFlow("c5", "KSP", day(2024, 1, 6), domain.DirectionIn, 100000, 2),
		cashFlow("c6", "KSS", day(2024, 2, 1), domain.DirectionIn, 999, 1),
		cashFlow("c7", "KSU", day(2024, 1, 6), domain.DirectionIn, 777, 1),
	}

	report, diags := newCalc().ProfitAndLoss(txns, subCategories(), []domain.EntityCode{"KSS", "KSP"}, jan)
	assert.Empty(t, diags)
	assert.Equal(t, []domain.EntityCode{"KSP", "KSS"}, report.Entities)

	require.Len(t, report.Expense, 2)
	assert.Equal(t, "OPERASIONAL", report.Expense[0].Name)
	assertDec(t, 1500000, report.Expense[0].Total)
	assert.Equal(t, "GAJI", report.Expense[1].Name)

	require.Len(t, report.Income, 2)
	assert.Equal(t, int64(1), report.Income[0].SubCategoryID, "equal sort order falls back to id")
	assert.Equal(t, int64(2), report.Income[1].SubCategoryID)

	assertDec(t, 8100000, report.TotalIncome)
	assertDec(t, 6500000, report.TotalExpense)
	assertDec(t, 1600000, report.Net)
	assert.False(t, report.IsLoss)
}

func TestProfitAndLoss_NegativeNetIsLoss(t *testing.T) {
	jan := domain.YearMonth{Year: 2024, Month: time.January}
	txns := []domain.Transaction{
		cashFlow("c1", "KSM", day(2024, 1, 3), domain.DirectionIn, 100, 1),
		cashFlow("c2", "KSM", day(2024, 1, 3), domain.DirectionOut, 250, 5),
	}
	report, diags := newCalc().ProfitAndLoss(txns, subCategories(), []domain.EntityCode{"KSM"}, jan)
	assert.Empty(t, diags)
	assertDec(t, -150, report.Net)
	assert.True(t, report.IsLoss)
	assert.True(t, report.Net.Equal(report.TotalIncome.Sub(report.TotalExpense)))
}

func TestProfitAndLoss_EmptyMonth(t *testing.T) {
	report, diags := newCalc().ProfitAndLoss(nil, subCategories(), entities, domain.YearMonth{Year: 2024, Month: time.March})
	assert.Empty(t, diags)
	assert.NotNil(t, report.Income)
	assert.NotNil(t, report.Expense)
	assert.Empty(t, report.Income)
	assertDec(t, 0, report.Net)
	assert.False(t, report.IsLoss)
}

func TestProfitAndLoss_UnresolvedAndForeignRows(t *testing.T) {
	jan := domain.YearMonth{Year: 2024, Month: time.January}
	orphan := cashFlow("orphan", "KSS", day(2024, 1, 3), domain.DirectionOut, 100, 99)
	noRef := cashFlow("noref", "KSS", day(2024, 1, 3), domain.DirectionOut, 100, 0)
	noRef.SubCategoryID = nil
	pettyRow := petty("petty", "KSS", day(2024, 1, 3), domain.DirectionOut, 100, domain.StatusApproved)

	report, diags := newCalc().ProfitAndLoss([]domain.Transaction{orphan, noRef, pettyRow}, subCategories(), []domain.EntityCode{"KSS"}, jan)
	assert.Empty(t, report.Expense)
	assertDec(t, 0, report.TotalExpense)
	assert.Equal(t, []balance.DiagnosticKind{
		balance.DiagUnresolvedReference,
		balance.DiagUnresolvedReference,
		balance.DiagInvalidInput,
	}, diagKinds(diags))
	assert.ErrorIs(t, diags[0], apperrors.ErrUnresolvedReference)
}
