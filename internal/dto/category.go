package dto

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
)

// CategoryRequest defines the data needed to create or rename a petty-cash category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse defines the data returned for a petty-cash category.
type CategoryResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, LastUpdatedAt: c.LastUpdatedAt}
}

// ToListCategoryResponse converts categories to DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}

// CreateSubCategoryRequest defines the data needed to create a cash-flow sub-category.
type CreateSubCategoryRequest struct {
	Kind      domain.SubCategoryKind `json:"kind" binding:"required,sub_category_kind"`
	Name      string                 `json:"name" binding:"required,max=100"`
	SortOrder int                    `json:"sortOrder" binding:"gte=0"`
}

// UpdateSubCategoryRequest defines the editable fields of a sub-category.
// The kind is fixed once entries may reference the sub-category.
type UpdateSubCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	SortOrder *int    `json:"sortOrder" binding:"omitempty,gte=0"`
}

// SubCategoryResponse defines the data returned for a sub-category.
type SubCategoryResponse struct {
	ID            int64                  `json:"id"`
	Kind          domain.SubCategoryKind `json:"kind"`
	Name          string                 `json:"name"`
	SortOrder     int                    `json:"sortOrder"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToSubCategoryResponse converts a domain.SubCategory to its DTO
func ToSubCategoryResponse(sc *domain.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:            sc.ID,
		Kind:          sc.Kind,
		Name:          sc.Name,
		SortOrder:     sc.SortOrder,
		CreatedAt:     sc.CreatedAt,
		LastUpdatedAt: sc.LastUpdatedAt,
	}
}

// ToListSubCategoryResponse converts sub-categories to DTOs
func ToListSubCategoryResponse(subCats []domain.SubCategory) []SubCategoryResponse {
	res := make([]SubCategoryResponse, len(subCats))
	for i := range subCats {
		res[i] = ToSubCategoryResponse(&subCats[i])
	}
	return res
}
