package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/core/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccessService_ResolveAccess(t *testing.T) {
	ctx := context.Background()
	f := newAccessFixture()

	admin, err := f.access.ResolveAccess(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, entities, sortedAsConfigured(admin.Entities))
	for _, feat := range domain.AllFeatures {
		assert.True(t, admin.Can(feat), feat)
	}

	approver, err := f.access.ResolveAccess(ctx, approverID)
	require.NoError(t, err)
	assert.True(t, approver.CanUseEntity("KSP"))
	assert.False(t, approver.CanUseEntity("KSU"))
	assert.True(t, approver.Can(domain.FeaturePettyCashApproval))
	assert.False(t, approver.Can(domain.FeatureUserAdmin))

	_, err = f.access.ResolveAccess(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func sortedAsConfigured(set domain.EntitySet) []domain.EntityCode {
	var out []domain.EntityCode
	for _, e := range entities {
		if set.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}

func TestAccessService_UnconfiguredEntitiesAreDropped(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	users.On("FindUserByID", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", RoleID: kasirRole.ID, Entities: []domain.EntityCode{"KSS", "OLD"}, IsActive: true}, nil)
	roles.On("FindRoleByID", mock.Anything, kasirRole.ID).Return(&kasirRole, nil)
	access := services.NewAccessService(users, roles, entities)

	got, err := access.PermittedEntities(context.Background(), "u1", domain.FeaturePettyCash)

	require.NoError(t, err)
	assert.Equal(t, []domain.EntityCode{"KSS"}, got)
}

func TestAccessService_InactiveAndDeletedUsersAreForbidden(t *testing.T) {
	deletedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	users := new(MockUserRepository)
	users.On("FindUserByID", mock.Anything, "inactive").
		Return(&domain.User{UserID: "inactive", RoleID: adminRole.ID, IsActive: false}, nil)
	users.On("FindUserByID", mock.Anything, "deleted").
		Return(&domain.User{UserID: "deleted", RoleID: adminRole.ID, IsActive: true, DeletedAt: &deletedAt}, nil)
	access := services.NewAccessService(users, new(MockRoleRepository), entities)

	for _, id := range []string{"inactive", "deleted"} {
		err := access.AuthorizeFeature(context.Background(), id, domain.FeatureReports)
		assert.ErrorIs(t, err, apperrors.ErrForbidden, id)
	}
}

func TestAccessService_AuthorizeEntity(t *testing.T) {
	ctx := context.Background()
	f := newAccessFixture()

	cases := []struct {
		name    string
		userID  string
		entity  domain.EntityCode
		feature domain.Feature
		want    error
	}{
		{"assigned entity", kasirID, "KSS", domain.FeaturePettyCash, nil},
		{"other entity", kasirID, "KSP", domain.FeaturePettyCash, apperrors.ErrForbidden},
		{"missing feature", kasirID, "KSS", domain.FeatureReports, apperrors.ErrForbidden},
		{"admin anywhere", adminID, "KSM", domain.FeatureUserAdmin, nil},
		{"unknown entity", adminID, "XYZ", domain.FeaturePettyCash, apperrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.access.AuthorizeEntity(ctx, tc.userID, tc.entity, tc.feature)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAccessService_ParseEntity(t *testing.T) {
	f := newAccessFixture()

	code, err := f.access.ParseEntity("  ksb ")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityCode("KSB"), code)

	_, err = f.access.ParseEntity("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.access.ParseEntity("ABC")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Equal(t, entities, f.access.KnownEntities())
}

func TestBaseService_NoAuthorizerAllows(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("ListCategories", mock.Anything).Return([]domain.Category{}, nil)
	repo.On("SaveCategory", mock.Anything, mock.AnythingOfType("domain.Category")).Return(int64(7), nil)
	svc := services.NewCategoryService(repo)

	category, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "ATK"}, "anyone")

	require.NoError(t, err)
	assert.Equal(t, int64(7), category.ID)
}
