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

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the petty-cash category service. Writes require
// the categories feature; reads are open to every signed-in user.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, options ...ServiceOption) portssvc.CategorySvcFacade {
	svc := &categoryService{categoryRepo: categoryRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	return name, nil
}

// ensureUniqueName rejects a name already used by a different category, ignoring case.
func (s *categoryService) ensureUniqueName(ctx context.Context, name string, exceptID int64) error {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, c.Name)
		}
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CategoryRequest, userID string) (*domain.Category, error) {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureCategories); err != nil {
		return nil, err
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, name, 0); err != nil {
		return nil, err
	}

	category := domain.Category{Name: name, AuditFields: domain.NewAuditFields(userID, s.Now())}
	id, err := s.categoryRepo.SaveCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	category.ID = id
	s.LogInfo(ctx, "Category created", slog.Int64("category_id", id))
	return &category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load category", slog.Int64("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// UpdateCategory renames a category. Existing petty-cash rows keep the label they were saved with.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.CategoryRequest, userID string) (*domain.Category, error) {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureCategories); err != nil {
		return nil, err
	}
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, name, categoryID); err != nil {
		return nil, err
	}

	category.Name = name
	category.Touch(userID, s.Now())
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.Int64("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID int64, userID string) error {
	if err := s.AuthorizeFeature(ctx, userID, domain.FeatureCategories); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete category", slog.Int64("category_id", categoryID))
		}
		return err
	}
	s.LogInfo(ctx, "Category deleted", slog.Int64("category_id", categoryID))
	return nil
}
