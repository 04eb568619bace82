package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormStockMovementRepository implements StockMovementRepository using
// GORM. The movement log is append-only: rows are inserted with Create
// and never updated or deleted.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a movement into the log
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByProductAndLocation lists movements for a product-location pair,
// newest first
func (r *GormStockMovementRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("product_id = ? AND location_id = ?", productID, locationID),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference lists movements carrying a reference, such as an
// order number
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindSince lists movements recorded at or after the cutoff
func (r *GormStockMovementRepository) FindSince(ctx context.Context, since time.Time, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("created_at >= ?", since),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumDeltas folds the signed deltas for a product-location pair.
// In and adjustment rows carry their stored quantity, out rows are
// negated, matching the aggregate's SignedDelta.
func (r *GormStockMovementRepository) SumDeltas(ctx context.Context, productID, locationID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select(`COALESCE(SUM(CASE WHEN type = ? THEN -quantity ELSE quantity END), 0)`, inventory.MovementTypeOut).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// applyFilter applies filter options to the query
func (r *GormStockMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR remarks ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockMovementSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
