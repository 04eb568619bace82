package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// MockStockLevelRepository is a mock implementation of inventory.StockLevelRepository
type MockStockLevelRepository struct {
	mock.Mock
}

func (m *MockStockLevelRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, productID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, locationID, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) SaveWithLock(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, productID, locationID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindSince(ctx context.Context, since time.Time, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, since, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) SumDeltas(ctx context.Context, productID, locationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID, locationID)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockLocationRepository is a mock implementation of inventory.StockLocationRepository
type MockStockLocationRepository struct {
	mock.Mock
}

func (m *MockStockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLocation), args.Error(1)
}

func (m *MockStockLocationRepository) FindByName(ctx context.Context, name string) (*inventory.StockLocation, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLocation), args.Error(1)
}

func (m *MockStockLocationRepository) FindActive(ctx context.Context) ([]inventory.StockLocation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.StockLocation), args.Error(1)
}

func (m *MockStockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLocation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockLocation), args.Error(1)
}

func (m *MockStockLocationRepository) Save(ctx context.Context, location *inventory.StockLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockStockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBrand(ctx context.Context, brandID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, brandID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
