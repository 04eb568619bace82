package inventory

import (
	"time"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// StockLocation is a physical place stock is held, such as the factory
// godown or a distribution van
type StockLocation struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(80);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StockLocation) TableName() string {
	return "stock_locations"
}

// NewStockLocation creates a new stock location
func NewStockLocation(name, description string) (*StockLocation, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len(name) > 80 {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 80 characters")
	}

	return &StockLocation{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Active:      true,
	}, nil
}

// Deactivate marks the location as inactive
func (l *StockLocation) Deactivate() {
	l.Active = false
	l.UpdatedAt = time.Now()
}

// Activate marks the location as active
func (l *StockLocation) Activate() {
	l.Active = true
	l.UpdatedAt = time.Now()
}
