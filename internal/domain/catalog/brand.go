package catalog

import (
	"strings"
	"time"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// Brand represents a product brand
type Brand struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(80);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name, description string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_NAME", "Brand name cannot be empty")
	}
	if len(name) > 80 {
		return nil, shared.NewDomainError("INVALID_BRAND_NAME", "Brand name cannot exceed 80 characters")
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the brand name
func (b *Brand) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_BRAND_NAME", "Brand name cannot be empty")
	}
	b.Name = name
	b.UpdatedAt = time.Now()
	return nil
}
