package order

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/catalog"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/inventory"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/partner"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
)

// MockEventPublisher collects published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockSalesOrderRepository is a mock implementation of order.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.SalesOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.SalesOrder, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.SalesOrder, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByStatus(ctx context.Context, status order.Status, filter shared.Filter) ([]order.SalesOrder, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]order.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, o *order.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) SaveWithLock(ctx context.Context, o *order.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	args := m.Called(ctx, orderNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockDraftOrderRepository is a mock implementation of order.DraftOrderRepository
type MockDraftOrderRepository struct {
	mock.Mock
}

func (m *MockDraftOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.DraftOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DraftOrder), args.Error(1)
}

func (m *MockDraftOrderRepository) Save(ctx context.Context, draft *order.DraftOrder) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDraftOrderRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

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

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByType(ctx context.Context, typeID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, typeID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
