package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
)

// CreateBrandRequest represents a request to create a brand
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	BrandID     uuid.UUID       `json:"brand_id" binding:"required"`
	Name        string          `json:"name" binding:"required,max=100"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	MRP         decimal.Decimal `json:"mrp" binding:"required"`
	PTR         decimal.Decimal `json:"ptr"`
	Margin      decimal.Decimal `json:"margin"`
	WeightGms   int64           `json:"weight_gms" binding:"required,min=1"`
}

// UpdateProductPricingRequest represents a pricing change. Order lines
// already captured keep their original price.
type UpdateProductPricingRequest struct {
	MRP    decimal.Decimal `json:"mrp" binding:"required"`
	Margin decimal.Decimal `json:"margin"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	BrandID    *uuid.UUID `form:"brand_id"`
	ActiveOnly bool       `form:"active_only"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	BrandID     uuid.UUID       `json:"brand_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MRP         decimal.Decimal `json:"mrp"`
	PTR         decimal.Decimal `json:"ptr"`
	Margin      decimal.Decimal `json:"margin"`
	WeightGms   int64           `json:"weight_gms"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToBrandResponse converts a domain brand to a response
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		BrandID:     p.BrandID,
		Name:        p.Name,
		Description: p.Description,
		MRP:         p.MRP,
		PTR:         p.PTR,
		Margin:      p.Margin,
		WeightGms:   p.WeightGms,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts domain products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
