package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/kasbook/internal/core/domain"
	portsrepo "github.com/SscSPs/kasbook/internal/core/ports/repositories"
	"github.com/SscSPs/kasbook/internal/models"
	"github.com/SscSPs/kasbook/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, name, created_at, created_by, last_updated_at, last_updated_by`

const subCategoryColumns = `sub_category_id, kind, name, sort_order, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, mapPgError(err, "failed to find category")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, mapPgError(err, "failed to find category "+strconv.FormatInt(categoryID, 10))
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY lower(name), category_id`)
	if err != nil {
		return nil, mapPgError(err, "failed to list categories")
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, mapPgError(err, "failed to scan categories")
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (int64, error) {
	query := `INSERT INTO categories (name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5) RETURNING category_id`
	var id int64
	err := r.db(ctx).QueryRow(ctx, query,
		category.Name, category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err, "failed to save category "+category.Name)
	}
	return id, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `UPDATE categories SET name = $2, last_updated_at = $3, last_updated_by = $4 WHERE category_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query, category.ID, category.Name, category.LastUpdatedAt, category.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "failed to update category "+category.Name)
	}
	return expectOneRow(tag)
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return mapPgError(err, "failed to delete category")
	}
	return expectOneRow(tag)
}

type PgxSubCategoryRepository struct {
	BaseRepository
}

func newPgxSubCategoryRepository(pool *pgxpool.Pool) *PgxSubCategoryRepository {
	return &PgxSubCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubCategoryRepositoryFacade = (*PgxSubCategoryRepository)(nil)

func (r *PgxSubCategoryRepository) FindSubCategoryByID(ctx context.Context, subCategoryID int64) (*domain.SubCategory, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+subCategoryColumns+` FROM sub_categories WHERE sub_category_id = $1`, subCategoryID)
	if err != nil {
		return nil, mapPgError(err, "failed to find sub-category")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SubCategory])
	if err != nil {
		return nil, mapPgError(err, "failed to find sub-category "+strconv.FormatInt(subCategoryID, 10))
	}
	subCat := mapping.ToDomainSubCategory(m)
	return &subCat, nil
}

func (r *PgxSubCategoryRepository) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	query := `SELECT ` + subCategoryColumns + ` FROM sub_categories ORDER BY kind DESC, sort_order, sub_category_id`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err, "failed to list sub-categories")
	}
	subCats, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SubCategory])
	if err != nil {
		return nil, mapPgError(err, "failed to scan sub-categories")
	}
	return mapping.ToDomainSubCategorySlice(subCats), nil
}

func (r *PgxSubCategoryRepository) SaveSubCategory(ctx context.Context, subCategory domain.SubCategory) (int64, error) {
	query := `INSERT INTO sub_categories (kind, name, sort_order, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING sub_category_id`
	var id int64
	err := r.db(ctx).QueryRow(ctx, query,
		string(subCategory.Kind), subCategory.Name, subCategory.SortOrder,
		subCategory.CreatedAt, subCategory.CreatedBy, subCategory.LastUpdatedAt, subCategory.LastUpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err, "failed to save sub-category "+subCategory.Name)
	}
	return id, nil
}

func (r *PgxSubCategoryRepository) UpdateSubCategory(ctx context.Context, subCategory domain.SubCategory) error {
	query := `UPDATE sub_categories SET kind = $2, name = $3, sort_order = $4, last_updated_at = $5, last_updated_by = $6
		WHERE sub_category_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		subCategory.ID, string(subCategory.Kind), subCategory.Name, subCategory.SortOrder,
		subCategory.LastUpdatedAt, subCategory.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update sub-category "+subCategory.Name)
	}
	return expectOneRow(tag)
}

// DeleteSubCategory relies on the ledger_entries foreign key, so a referenced
// sub-category fails with apperrors.ErrConflict.
func (r *PgxSubCategoryRepository) DeleteSubCategory(ctx context.Context, subCategoryID int64) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM sub_categories WHERE sub_category_id = $1`, subCategoryID)
	if err != nil {
		return mapPgError(err, "failed to delete sub-category")
	}
	return expectOneRow(tag)
}
