package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock PettyCashService ---
type MockPettyCashService struct {
	mock.Mock
}

func (m *MockPettyCashService) entry(args mock.Arguments) (*domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPettyCashService) GetEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}
func (m *MockPettyCashService) ListEntries(ctx context.Context, entity, day, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, entity, day, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockPettyCashService) ListPending(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockPettyCashService) DailyLedger(ctx context.Context, entity, day, userID string) (*balance.DailyLedger, []balance.Diagnostic, error) {
	args := m.Called(ctx, entity, day, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	diags, _ := args.Get(1).([]balance.Diagnostic)
	return args.Get(0).(*balance.DailyLedger), diags, args.Error(2)
}
func (m *MockPettyCashService) CreateEntry(ctx context.Context, req dto.CreatePettyCashRequest, userID string) (*domain.Transaction, error) {
	return m.entry(m.Called(ctx, req, userID))
}
func (m *MockPettyCashService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdatePettyCashRequest, userID string) (*domain.Transaction, error) {
	return m.entry(m.Called(ctx, entryID, req, userID))
}
func (m *MockPettyCashService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	return m.Called(ctx, entryID, userID).Error(0)
}
func (m *MockPettyCashService) CarryForward(ctx context.Context, entity, day, userID string) (*domain.Transaction, error) {
	return m.entry(m.Called(ctx, entity, day, userID))
}
func (m *MockPettyCashService) ApproveEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}
func (m *MockPettyCashService) RejectEntry(ctx context.Context, entryID, userID string) (*domain.Transaction, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}

var _ portssvc.PettyCashSvcFacade = (*MockPettyCashService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, month string, entities []string, userID string) (*domain.ProfitAndLossReport, []balance.Diagnostic, error) {
	args := m.Called(ctx, month, entities, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	diags, _ := args.Get(1).([]balance.Diagnostic)
	return args.Get(0).(*domain.ProfitAndLossReport), diags, args.Error(2)
}
func (m *MockReportingService) PettyCashDaily(ctx context.Context, entity, day, userID string) (*balance.DailyLedger, []balance.Diagnostic, error) {
	args := m.Called(ctx, entity, day, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	diags, _ := args.Get(1).([]balance.Diagnostic)
	return args.Get(0).(*balance.DailyLedger), diags, args.Error(2)
}
func (m *MockReportingService) RenderProfitAndLoss(ctx context.Context, month string, entities []string, pdf bool, userID string) (*portssvc.RenderedReport, error) {
	args := m.Called(ctx, month, entities, pdf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.RenderedReport), args.Error(1)
}
func (m *MockReportingService) RenderPettyCashDaily(ctx context.Context, entity, day string, pdf bool, userID string) (*portssvc.RenderedReport, error) {
	args := m.Called(ctx, entity, day, pdf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.RenderedReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}
func (m *MockUserService) ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	return m.user(m.Called(ctx, req, requestingUserID))
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	return m.user(m.Called(ctx, userID, req, requestingUserID))
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	return m.Called(ctx, userID, requestingUserID).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return m.user(m.Called(ctx, username, password))
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock AccessService ---
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) AuthorizeEntity(ctx context.Context, userID string, entity domain.EntityCode, feature domain.Feature) error {
	return m.Called(ctx, userID, entity, feature).Error(0)
}
func (m *MockAccessService) AuthorizeFeature(ctx context.Context, userID string, feature domain.Feature) error {
	return m.Called(ctx, userID, feature).Error(0)
}
func (m *MockAccessService) ResolveAccess(ctx context.Context, userID string) (*domain.Access, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Access), args.Error(1)
}
func (m *MockAccessService) PermittedEntities(ctx context.Context, userID string, feature domain.Feature) ([]domain.EntityCode, error) {
	args := m.Called(ctx, userID, feature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntityCode), args.Error(1)
}
func (m *MockAccessService) KnownEntities() []domain.EntityCode {
	return m.Called().Get(0).([]domain.EntityCode)
}
func (m *MockAccessService) ParseEntity(raw string) (domain.EntityCode, error) {
	args := m.Called(raw)
	return args.Get(0).(domain.EntityCode), args.Error(1)
}

var _ portssvc.AccessSvcFacade = (*MockAccessService)(nil)

// --- Mock SubCategoryService ---
type MockSubCategoryService struct {
	mock.Mock
}

func (m *MockSubCategoryService) sub(args mock.Arguments) (*domain.SubCategory, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubCategory), args.Error(1)
}

func (m *MockSubCategoryService) CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest, userID string) (*domain.SubCategory, error) {
	return m.sub(m.Called(ctx, req, userID))
}
func (m *MockSubCategoryService) GetSubCategory(ctx context.Context, subCategoryID int64) (*domain.SubCategory, error) {
	return m.sub(m.Called(ctx, subCategoryID))
}
func (m *MockSubCategoryService) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubCategory), args.Error(1)
}
func (m *MockSubCategoryService) UpdateSubCategory(ctx context.Context, subCategoryID int64, req dto.UpdateSubCategoryRequest, userID string) (*domain.SubCategory, error) {
	return m.sub(m.Called(ctx, subCategoryID, req, userID))
}
func (m *MockSubCategoryService) DeleteSubCategory(ctx context.Context, subCategoryID int64, userID string) error {
	return m.Called(ctx, subCategoryID, userID).Error(0)
}

var _ portssvc.SubCategorySvcFacade = (*MockSubCategoryService)(nil)
