package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StockSnapshotLine is one product-location row of the stock report
type StockSnapshotLine struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	LocationID   uuid.UUID `json:"location_id"`
	LocationName string    `json:"location_name"`
	Quantity     int64     `json:"quantity"`
}

// StockSnapshot is the current stock position across locations
type StockSnapshot struct {
	AsOf       time.Time           `json:"as_of"`
	Lines      []StockSnapshotLine `json:"lines"`
	TotalUnits int64               `json:"total_units"`
}

// MovementActivity summarizes movement volume for a period
type MovementActivity struct {
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	UnitsIn       int64     `json:"units_in"`
	UnitsOut      int64     `json:"units_out"`
	NetAdjustment int64     `json:"net_adjustment"`
	MovementCount int64     `json:"movement_count"`
}

// InventoryReportFilter defines filtering options for inventory reports
type InventoryReportFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
}

// InventoryReportRepository defines the interface for inventory report queries
type InventoryReportRepository interface {
	// GetStockSnapshot returns the current stock position
	GetStockSnapshot(ctx context.Context, filter InventoryReportFilter) (*StockSnapshot, error)

	// GetMovementActivity summarizes movements for the period
	GetMovementActivity(ctx context.Context, filter InventoryReportFilter) (*MovementActivity, error)
}
