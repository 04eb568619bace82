package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// GormStockLocationRepository implements StockLocationRepository using GORM
type GormStockLocationRepository struct {
	db *gorm.DB
}

// NewGormStockLocationRepository creates a new GormStockLocationRepository
func NewGormStockLocationRepository(db *gorm.DB) *GormStockLocationRepository {
	return &GormStockLocationRepository{db: db}
}

// FindByID finds a location by ID
func (r *GormStockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLocation, error) {
	var location inventory.StockLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByName finds a location by its unique name
func (r *GormStockLocationRepository) FindByName(ctx context.Context, name string) (*inventory.StockLocation, error) {
	var location inventory.StockLocation
	if err := r.db.WithContext(ctx).First(&location, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindActive lists active locations
func (r *GormStockLocationRepository) FindActive(ctx context.Context) ([]inventory.StockLocation, error) {
	var locations []inventory.StockLocation
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindAll lists all locations
func (r *GormStockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLocation, error) {
	var locations []inventory.StockLocation
	query := r.db.WithContext(ctx).Model(&inventory.StockLocation{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormStockLocationRepository) Save(ctx context.Context, location *inventory.StockLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete deletes a location
func (r *GormStockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockLocationRepository implements StockLocationRepository
var _ inventory.StockLocationRepository = (*GormStockLocationRepository)(nil)
