package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormStockLevelRepository implements StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByID finds a stock level by ID
func (r *GormStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).First(&level, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByProductAndLocation finds the level for a product-location pair
func (r *GormStockLevelRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// FindByProduct finds all levels for a product across locations
func (r *GormStockLevelRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("product_name ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindByLocation finds all levels at a location
func (r *GormStockLevelRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockLevel{}).
			Where("location_id = ?", locationID),
		filter,
	)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// FindAll finds stock levels matching the filter
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)

	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Save creates or updates a stock level
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// SaveWithLock saves a stock level with optimistic locking (version check).
// The aggregate increments its version on every mutation, so the row is
// updated only if it still carries the previous version.
func (r *GormStockLevelRepository) SaveWithLock(ctx context.Context, level *inventory.StockLevel) error {
	result := r.db.WithContext(ctx).
		Model(level).
		Where("id = ? AND version = ?", level.ID, level.Version-1).
		Updates(map[string]interface{}{
			"product_name": level.ProductName,
			"quantity":     level.Quantity,
			"version":      level.Version,
			"updated_at":   level.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "The stock level has been modified by another transaction")
	}
	return nil
}

// Count counts stock levels matching the filter
func (r *GormStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockLevel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockLevelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StockLevelSortFields, "product_name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockLevelRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("product_name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "in_stock":
			if value == true {
				query = query.Where("quantity > 0")
			} else {
				query = query.Where("quantity = 0")
			}
		}
	}

	return query
}

// Ensure GormStockLevelRepository implements StockLevelRepository
var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
