package services_test

import (
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/balance"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var wib = time.FixedZone("WIB", 7*60*60)

var entities = []domain.EntityCode{"KSS", "KSP", "KSU", "KSB", "KSM"}

const (
	adminID    = "user-admin"
	kasirID    = "user-kasir"
	approverID = "user-approver"
	viewerID   = "user-viewer"
)

var (
	adminRole = domain.Role{ID: 1, Name: domain.RoleAdminName}
	kasirRole = domain.Role{ID: 2, Name: "kasir", Features: []domain.Feature{
		domain.FeaturePettyCash, domain.FeatureCashFlow, domain.FeatureSales,
	}}
	approverRole = domain.Role{ID: 3, Name: "approver", Features: []domain.Feature{
		domain.FeaturePettyCash, domain.FeaturePettyCashApproval, domain.FeatureReports,
	}}
	viewerRole = domain.Role{ID: 4, Name: "viewer", Features: []domain.Feature{domain.FeatureReports}}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, wib)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// sameInstant matches a time.Time argument regardless of its location pointer.
func sameInstant(want time.Time) interface{} {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

// accessFixture wires a real access service to mocked user and role repositories
// holding four users: an admin, a cashier on KSS, an approver on KSS and KSP,
// and a report viewer on KSB.
type accessFixture struct {
	users  *MockUserRepository
	roles  *MockRoleRepository
	access portssvc.AccessSvcFacade
}

func newAccessFixture() *accessFixture {
	f := &accessFixture{users: new(MockUserRepository), roles: new(MockRoleRepository)}
	add := func(id string, role domain.Role, ents ...domain.EntityCode) {
		u := &domain.User{UserID: id, Username: id, RoleID: role.ID, Entities: ents, IsActive: true}
		f.users.On("FindUserByID", mock.Anything, id).Return(u, nil).Maybe()
	}
	add(adminID, adminRole)
	add(kasirID, kasirRole, "KSS")
	add(approverID, approverRole, "KSP", "KSS")
	add(viewerID, viewerRole, "KSB")
	for _, id := range []string{"nobody", "missing"} {
		f.users.On("FindUserByID", mock.Anything, id).Return(nil, apperrors.ErrNotFound).Maybe()
	}

	for _, r := range []domain.Role{adminRole, kasirRole, approverRole, viewerRole} {
		role := r
		f.roles.On("FindRoleByID", mock.Anything, role.ID).Return(&role, nil).Maybe()
	}
	f.access = services.NewAccessService(f.users, f.roles, entities)
	return f
}

func newCalc() *balance.Calculator {
	return balance.NewCalculator(entities, wib)
}

func fixedClock(t time.Time) services.ServiceOption {
	return services.WithClock(func() time.Time { return t })
}
