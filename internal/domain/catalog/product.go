package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

// Product represents a sellable product under a brand.
// MRP is the unit price captured onto order lines at order time; editing
// a product never rewrites prices already frozen on existing lines.
type Product struct {
	shared.BaseAggregateRoot
	BrandID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	MRP         decimal.Decimal `gorm:"type:decimal(10,2);not null"` // maximum retail price
	PTR         decimal.Decimal `gorm:"type:decimal(10,2)"`          // price to retailer (optional, zero when unset)
	Margin      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	WeightGms   int64           `gorm:"not null"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(brandID uuid.UUID, name string, mrp valueobject.Money, margin decimal.Decimal, weightGms int64) (*Product, error) {
	name = strings.TrimSpace(name)
	if brandID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 100 characters")
	}
	if !mrp.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "MRP must be positive")
	}
	if margin.IsNegative() {
		return nil, shared.NewDomainError("INVALID_MARGIN", "Margin cannot be negative")
	}
	if weightGms <= 0 {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Weight must be positive")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BrandID:           brandID,
		Name:              name,
		MRP:               mrp.Amount(),
		PTR:               decimal.Zero,
		Margin:            margin,
		WeightGms:         weightGms,
		Active:            true,
	}, nil
}

// UnitPrice returns the price used for new order lines
func (p *Product) UnitPrice() valueobject.Money {
	return valueobject.NewMoneyINR(p.MRP)
}

// UpdatePricing updates MRP and margin. Lines already captured keep their price.
func (p *Product) UpdatePricing(mrp valueobject.Money, margin decimal.Decimal) error {
	if !mrp.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "MRP must be positive")
	}
	if margin.IsNegative() {
		return shared.NewDomainError("INVALID_MARGIN", "Margin cannot be negative")
	}
	p.MRP = mrp.Amount()
	p.Margin = margin
	p.UpdatedAt = time.Now()
	return nil
}

// SetPTR sets the price to retailer
func (p *Product) SetPTR(ptr valueobject.Money) error {
	if ptr.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "PTR cannot be negative")
	}
	p.PTR = ptr.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the product from new orders without deleting it
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// Activate makes the product orderable again
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
}
