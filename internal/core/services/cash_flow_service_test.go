package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/core/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CashFlowServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	ledgerRepo *MockLedgerRepository
	subCatRepo *MockSubCategoryRepository
	service    portssvc.CashFlowSvcFacade
}

func (suite *CashFlowServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 1, 2, 9, 0, 0, 0, wib)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.subCatRepo = new(MockSubCategoryRepository)
	suite.subCatRepo.On("FindSubCategoryByID", mock.Anything, int64(1)).
		Return(&domain.SubCategory{ID: 1, Kind: domain.KindIncome, Name: "PENJUALAN"}, nil).Maybe()
	suite.subCatRepo.On("FindSubCategoryByID", mock.Anything, int64(5)).
		Return(&domain.SubCategory{ID: 5, Kind: domain.KindExpense, Name: "GAJI"}, nil).Maybe()
	suite.subCatRepo.On("FindSubCategoryByID", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Maybe()

	suite.service = services.NewCashFlowService(
		suite.ledgerRepo,
		suite.subCatRepo,
		newAccessFixture().access,
		newCalc(),
		fixedClock(suite.now),
	)
}

func (suite *CashFlowServiceTestSuite) TestCreateEntry_Success() {
	req := dto.CreateCashFlowRequest{
		Date:          "2024-01-02",
		Entity:        "KSS",
		Direction:     domain.DirectionOut,
		Amount:        dec(5000000),
		Description:   "Gaji Januari",
		SubCategoryID: 5,
	}
	suite.ledgerRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Ledger == domain.LedgerCashFlow &&
			t.SubCategoryID != nil && *t.SubCategoryID == 5 &&
			t.ApprovalStatus == "" &&
			t.PaymentMethod == domain.PaymentCash
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, req, kasirID)

	suite.Require().NoError(err)
	suite.True(entry.Counts())
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestCreateEntry_SubCategoryMustMatchDirection() {
	req := dto.CreateCashFlowRequest{
		Date: "2024-01-02", Entity: "KSS", Direction: domain.DirectionIn, Amount: dec(1000), Description: "x", SubCategoryID: 5,
	}
	_, err := suite.service.CreateEntry(suite.ctx, req, kasirID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req.SubCategoryID = 99
	_, err = suite.service.CreateEntry(suite.ctx, req, kasirID)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.ledgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestCreateEntry_RejectsFractionalAmount() {
	req := dto.CreateCashFlowRequest{
		Date: "2024-01-02", Entity: "KSS", Direction: domain.DirectionIn, Amount: decimal.RequireFromString("1500.5"), Description: "x", SubCategoryID: 1,
	}
	_, err := suite.service.CreateEntry(suite.ctx, req, kasirID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestUpdateEntry_RechecksKindOnDirectionChange() {
	sc := int64(1)
	existing := &domain.Transaction{
		ID:        "c1", Ledger: domain.LedgerCashFlow, Date: day(2024, 1, 2), Entity: "KSS",
		Direction: domain.DirectionIn, Amount: dec(1000), SubCategoryID: &sc,
		Kind:      domain.KindTransaction, AuditFields: domain.NewAuditFields(kasirID, suite.now),
	}
	suite.ledgerRepo.On("FindEntryByID", suite.ctx, "c1").Return(existing, nil).Once()

	out := domain.DirectionOut
	_, err := suite.service.UpdateEntry(suite.ctx, "c1", dto.UpdateCashFlowRequest{Direction: &out}, kasirID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestListEntries_InclusiveRange() {
	suite.ledgerRepo.On("ListEntriesInRange", suite.ctx, domain.LedgerCashFlow, []domain.EntityCode{"KSS"},
		sameInstant(day(2024, 1, 1)), sameInstant(day(2024, 2, 1))).Return(nil, nil).Once()

	entries, err := suite.service.ListEntries(suite.ctx, "KSS", "2024-01-01", "2024-01-31", kasirID)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)

	_, err = suite.service.ListEntries(suite.ctx, "KSS", "2024-01-31", "2024-01-01", kasirID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashFlowServiceTestSuite) TestDailyLedger_HasNoMissingMarkerDiagnostic() {
	sc := int64(1)
	row := domain.Transaction{
		ID:        "c1", Ledger: domain.LedgerCashFlow, Date: day(2024, 1, 2), Entity: "KSS",
		Direction: domain.DirectionIn, Amount: dec(250000), SubCategoryID: &sc,
		Kind:      domain.KindTransaction, AuditFields: domain.NewAuditFields(kasirID, suite.now),
	}
	suite.ledgerRepo.On("ListEntriesByDay", suite.ctx, domain.LedgerCashFlow, domain.EntityCode("KSS"), sameInstant(day(2024, 1, 2))).
		Return([]domain.Transaction{row}, nil).Once()

	ledger, diags, err := suite.service.DailyLedger(suite.ctx, "KSS", "2024-01-02", kasirID)

	suite.Require().NoError(err)
	for _, d := range diags {
		suite.NotEqual(balance.DiagMissingCarryForward, d.Kind)
	}
	suite.True(ledger.Closing.Equal(dec(250000)))
	suite.True(ledger.Totals.In.Equal(dec(250000)))
}

func (suite *CashFlowServiceTestSuite) TestGetEntry_ApproverWithoutCashFlowIsForbidden() {
	sc := int64(1)
	row := &domain.Transaction{ID: "c1", Ledger: domain.LedgerCashFlow, Entity: "KSS", SubCategoryID: &sc}
	suite.ledgerRepo.On("FindEntryByID", suite.ctx, "c1").Return(row, nil).Once()

	_, err := suite.service.GetEntry(suite.ctx, "c1", approverID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestCashFlowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashFlowServiceTestSuite))
}
