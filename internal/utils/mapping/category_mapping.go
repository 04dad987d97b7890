package mapping

import (
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/SscSPs/kasbook/internal/models"
)

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		ID:          m.CategoryID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}

// ToDomainSubCategory converts a model SubCategory to a domain SubCategory
func ToDomainSubCategory(m models.SubCategory) domain.SubCategory {
	return domain.SubCategory{
		ID:          m.SubCategoryID,
		Kind:        domain.SubCategoryKind(m.Kind),
		Name:        m.Name,
		SortOrder:   m.SortOrder,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubCategorySlice converts a slice of model SubCategories to domain SubCategories
func ToDomainSubCategorySlice(ms []models.SubCategory) []domain.SubCategory {
	ds := make([]domain.SubCategory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubCategory(m)
	}
	return ds
}
