package dto

import (
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSalesRequest defines the data needed to record a day's sales.
type CreateSalesRequest struct {
	Date          string               `json:"date" binding:"required" example:"2024-01-02"`
	Entity        string               `json:"entity" binding:"required" example:"KSS"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string" example:"1250000"`
	Description   string               `json:"description" binding:"max=255"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,payment_method"`
}

// UpdateSalesRequest defines the editable fields of a sales entry.
type UpdateSalesRequest struct {
	Date          *string               `json:"date"`
	Amount        *decimal.Decimal      `json:"amount" swaggertype:"string"`
	Description   *string               `json:"description" binding:"omitempty,max=255"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
}

// MonthQuery selects one entity and month.
type MonthQuery struct {
	Entity string `form:"entity" binding:"required"`
	Month  string `form:"month" binding:"required"`
}

// SalesResponse defines the data returned for a sales entry.
type SalesResponse struct {
	ID            string               `json:"id"`
	Date          string               `json:"date"`
	Entity        domain.EntityCode    `json:"entity"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string"`
	Description   string               `json:"description"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToSalesResponse converts a domain.SalesEntry to SalesResponse DTO
func ToSalesResponse(s *domain.SalesEntry) SalesResponse {
	return SalesResponse{
		ID:            s.ID,
		Date:          s.Date.Format(domain.DateLayout),
		Entity:        s.Entity,
		Amount:        s.Amount,
		Description:   s.Description,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ToListSalesResponse converts a slice of domain.SalesEntry to SalesResponse DTOs
func ToListSalesResponse(entries []domain.SalesEntry) []SalesResponse {
	res := make([]SalesResponse, len(entries))
	for i := range entries {
		res[i] = ToSalesResponse(&entries[i])
	}
	return res
}

// DailySalesResponse is one day of a monthly summary.
type DailySalesResponse struct {
	Date    string          `json:"date"`
	Total   decimal.Decimal `json:"total" swaggertype:"string"`
	Entries int             `json:"entries"`
}

// SalesSummaryResponse aggregates an entity's sales for a month.
type SalesSummaryResponse struct {
	Entity  domain.EntityCode    `json:"entity"`
	Month   string               `json:"month"`
	Days    []DailySalesResponse `json:"days"`
	Cash    decimal.Decimal      `json:"cash" swaggertype:"string"`
	NonCash decimal.Decimal      `json:"nonCash" swaggertype:"string"`
	Total   decimal.Decimal      `json:"total" swaggertype:"string"`
}

// ToSalesSummaryResponse converts a domain.SalesSummary to its DTO
func ToSalesSummaryResponse(s *domain.SalesSummary) SalesSummaryResponse {
	days := make([]DailySalesResponse, len(s.Days))
	for i, d := range s.Days {
		days[i] = DailySalesResponse{Date: d.Date.Format(domain.DateLayout), Total: d.Total, Entries: d.Entries}
	}
	return SalesSummaryResponse{
		Entity:  s.Entity,
		Month:   s.Month.String(),
		Days:    days,
		Cash:    s.Cash,
		NonCash: s.NonCash,
		Total:   s.Total,
	}
}
