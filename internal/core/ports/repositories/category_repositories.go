package repositories

import (
	"context"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// CategoryReader defines read operations for petty-cash categories
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for petty-cash categories
type CategoryWriter interface {
	// SaveCategory inserts the category and returns its generated ID.
	SaveCategory(ctx context.Context, category domain.Category) (int64, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// SubCategoryReader defines read operations for cash-flow sub-categories
type SubCategoryReader interface {
	FindSubCategoryByID(ctx context.Context, subCategoryID int64) (*domain.SubCategory, error)

	// ListSubCategories returns all sub-categories ordered by kind, sort order and ID.
	ListSubCategories(ctx context.Context) ([]domain.SubCategory, error)
}

// SubCategoryWriter defines write operations for cash-flow sub-categories
type SubCategoryWriter interface {
	// SaveSubCategory inserts the sub-category and returns its generated ID.
	SaveSubCategory(ctx context.Context, subCategory domain.SubCategory) (int64, error)
	UpdateSubCategory(ctx context.Context, subCategory domain.SubCategory) error

	// DeleteSubCategory fails with apperrors.ErrConflict while cash-flow rows reference it.
	DeleteSubCategory(ctx context.Context, subCategoryID int64) error
}

// SubCategoryRepositoryFacade combines all sub-category repository interfaces
type SubCategoryRepositoryFacade interface {
	SubCategoryReader
	SubCategoryWriter
}
