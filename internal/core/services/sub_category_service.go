package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/kasbook/internal/apperrors"
	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
)

type subCategoryService struct {
	BaseService
	subCatRepo portsrepo.SubCategoryRepositoryFacade
}

// NewSubCategoryService creates the cash-flow sub-category service.
func NewSubCategoryService(subCatRepo portsrepo.SubCategoryRepositoryFacade, options ...ServiceOption) portssvc.SubCategorySvcFacade {
	svc := &subCategoryService{subCatRepo: subCatRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.SubCategorySvcFacade = (*subCategoryService)(nil)

func (s *subCategoryService) ensureUniqueName(ctx context.Context, kind domain.SubCategoryKind, name string, exceptID int64) error {
	subCats, err := s.subCatRepo.ListSubCategories(ctx)
	if err != nil {
		return err
	}
	for _, sc := range subCats {
		if sc.ID != exceptID && sc.Kind == kind && strings.EqualFold(sc.Name, name) {
			return fmt.Errorf("%w: %s sub-category %q", apperrors.ErrDuplicate, kind, sc.Name)
		}
	}
	return nil
}

func (s *subCategoryService) CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest, userID string) (*domain.SubCategory, error) {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureCategories); err != nil {
		return nil, err
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", apperrors.ErrValidation, req.Kind)
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.SortOrder < 0 {
		return nil, fmt.Errorf("%w: sort order must not be negative", apperrors.ErrValidation)
	}
	if err := s.ensureUniqueName(ctx, req.Kind, name, 0); err != nil {
		return nil, err
	}

	subCat := domain.SubCategory{
		Kind:        req.Kind,
		Name:        name,
		SortOrder:   req.SortOrder,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	id, err := s.subCatRepo.SaveSubCategory(ctx, subCat)
	if err != nil {
		s.LogError(ctx, err, "Failed to save sub-category", slog.String("name", name))
		return nil, fmt.Errorf("failed to save sub-category: %w", err)
	}
	subCat.ID = id
	s.LogInfo(ctx, "Sub-category created", slog.Int64("sub_category_id", id), slog.String("kind", string(req.Kind)))
	return &subCat, nil
}

func (s *subCategoryService) GetSubCategory(ctx context.Context, subCategoryID int64) (*domain.SubCategory, error) {
	subCat, err := s.subCatRepo.FindSubCategoryByID(ctx, subCategoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load sub-category", slog.Int64("sub_category_id", subCategoryID))
		}
		return nil, err
	}
	return subCat, nil
}

func (s *subCategoryService) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	subCats, err := s.subCatRepo.ListSubCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sub-categories")
		return nil, err
	}
	if subCats == nil {
		return []domain.SubCategory{}, nil
	}
	return subCats, nil
}

func (s *subCategoryService) UpdateSubCategory(ctx context.Context, subCategoryID int64, req dto.UpdateSubCategoryRequest, userID string) (*domain.SubCategory, error) {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureCategories); err != nil {
		return nil, err
	}
	subCat, err := s.GetSubCategory(ctx, subCategoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		if err := s.ensureUniqueName(ctx, subCat.Kind, name, subCategoryID); err != nil {
			return nil, err
		}
		subCat.Name = name
	}
	if req.SortOrder != nil {
		if *req.SortOrder < 0 {
			return nil, fmt.Errorf("%w: sort order must not be negative", apperrors.ErrValidation)
		}
		subCat.SortOrder = *req.SortOrder
	}
	subCat.Touch(userID, s.Now())

	if err := s.subCatRepo.UpdateSubCategory(ctx, *subCat); err != nil {
		s.LogError(ctx, err, "Failed to update sub-category", slog.Int64("sub_category_id", subCategoryID))
		return nil, fmt.Errorf("failed to update sub-category: %w", err)
	}
	return subCat, nil
}

// DeleteSubCategory removes an unreferenced sub-category.
func (s *subCategoryService) DeleteSubCategory(ctx context.Context, subCategoryID int64, userID string) error {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureCategories); err != nil {
		return err
	}
	if err := s.subCatRepo.DeleteSubCategory(ctx, subCategoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete sub-category", slog.Int64("sub_category_id", subCategoryID))
		}
		return err
	}
	s.LogInfo(ctx, "Sub-category deleted", slog.Int64("sub_category_id", subCategoryID))
	return nil
}
