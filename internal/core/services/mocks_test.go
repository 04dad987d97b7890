package services_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

// RunInTx runs fn directly; the mocks record what fn does.
func (m *MockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- Mock LedgerEntryRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Transaction, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.Transaction
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.Transaction)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByDay(ctx context.Context, ledger domain.Ledger, entity domain.EntityCode, day time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, ledger, entity, day)
	var entries []domain.Transaction
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Transaction)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesInRange(ctx context.Context, ledger domain.Ledger, entities []domain.EntityCode, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, ledger, entities, from, to)
	var entries []domain.Transaction
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Transaction)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) ListPendingEntries(ctx context.Context, entities []domain.EntityCode) ([]domain.Transaction, error) {
	args := m.Called(ctx, entities)
	var entries []domain.Transaction
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Transaction)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.Transaction) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.Transaction) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	return m.Called(ctx, entryID).Error(0)
}

// --- Mock SalesRepository ---
type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) FindSalesEntryByID(ctx context.Context, entryID string) (*domain.SalesEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.SalesEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.SalesEntry)
	}
	return entry, args.Error(1)
}

func (m *MockSalesRepository) ListSalesEntries(ctx context.Context, entity domain.EntityCode, from, to time.Time) ([]domain.SalesEntry, error) {
	args := m.Called(ctx, entity, from, to)
	var entries []domain.SalesEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.SalesEntry)
	}
	return entries, args.Error(1)
}

func (m *MockSalesRepository) SaveSalesEntry(ctx context.Context, entry domain.SalesEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockSalesRepository) UpdateSalesEntry(ctx context.Context, entry domain.SalesEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockSalesRepository) DeleteSalesEntry(ctx context.Context, entryID string) error {
	return m.Called(ctx, entryID).Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	var category *domain.Category
	if args.Get(0) != nil {
		category = args.Get(0).(*domain.Category)
	}
	return category, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if args.Get(0) != nil {
		categories = args.Get(0).([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	return m.Called(ctx, categoryID).Error(0)
}

// --- Mock SubCategoryRepository ---
type MockSubCategoryRepository struct {
	mock.Mock
}

func (m *MockSubCategoryRepository) FindSubCategoryByID(ctx context.Context, subCategoryID int64) (*domain.SubCategory, error) {
	args := m.Called(ctx, subCategoryID)
	var subCat *domain.SubCategory
	if args.Get(0) != nil {
		subCat = args.Get(0).(*domain.SubCategory)
	}
	return subCat, args.Error(1)
}

func (m *MockSubCategoryRepository) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	args := m.Called(ctx)
	var subCats []domain.SubCategory
	if args.Get(0) != nil {
		subCats = args.Get(0).([]domain.SubCategory)
	}
	return subCats, args.Error(1)
}

func (m *MockSubCategoryRepository) SaveSubCategory(ctx context.Context, subCategory domain.SubCategory) (int64, error) {
	args := m.Called(ctx, subCategory)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubCategoryRepository) UpdateSubCategory(ctx context.Context, subCategory domain.SubCategory) error {
	return m.Called(ctx, subCategory).Error(0)
}

func (m *MockSubCategoryRepository) DeleteSubCategory(ctx context.Context, subCategoryID int64) error {
	return m.Called(ctx, subCategoryID).Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string, updatedAt time.Time, updatedBy string) error {
	return m.Called(ctx, userID, passwordHash, updatedAt, updatedBy).Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	return m.Called(ctx, userID, deletedAt, deletedBy).Error(0)
}

// --- Mock RoleRepository ---
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID int64) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	var roles []domain.Role
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.Role)
	}
	return roles, args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockRoleRepository) DeleteRole(ctx context.Context, roleID int64) error {
	return m.Called(ctx, roleID).Error(0)
}

// --- Report collaborators ---
type MockTemplates struct {
	mock.Mock
}

func (m *MockTemplates) ProfitAndLossHTML(w io.Writer, report *domain.ProfitAndLossReport, diags []balance.Diagnostic) error {
	args := m.Called(report, diags)
	_, _ = io.WriteString(w, "<html>profit and loss</html>")
	return args.Error(0)
}

func (m *MockTemplates) PettyCashDailyHTML(w io.Writer, ledger *balance.DailyLedger, diags []balance.Diagnostic) error {
	args := m.Called(ledger, diags)
	_, _ = io.WriteString(w, "<html>petty cash</html>")
	return args.Error(0)
}

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	args := m.Called(ctx, html)
	var body []byte
	if args.Get(0) != nil {
		body = args.Get(0).([]byte)
	}
	return body, args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, key, contentType string, body []byte) error {
	return m.Called(ctx, key, contentType, body).Error(0)
}
