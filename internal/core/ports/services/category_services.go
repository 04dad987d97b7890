package services

import (
	"context"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/dto"
)

// CategorySvcFacade manages petty-cash categories
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CategoryRequest, userID string) (*domain.Category, error)
	GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req dto.CategoryRequest, userID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64, userID string) error
}

// SubCategorySvcFacade manages cash-flow sub-categories
type SubCategorySvcFacade interface {
	CreateSubCategory(ctx context.Context, req dto.CreateSubCategoryRequest, userID string) (*domain.SubCategory, error)
	GetSubCategory(ctx context.Context, subCategoryID int64) (*domain.SubCategory, error)
	ListSubCategories(ctx context.Context) ([]domain.SubCategory, error)
	UpdateSubCategory(ctx context.Context, subCategoryID int64, req dto.UpdateSubCategoryRequest, userID string) (*domain.SubCategory, error)
	DeleteSubCategory(ctx context.Context, subCategoryID int64, userID string) error
}
