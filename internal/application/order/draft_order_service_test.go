package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/order"
	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

type draftServiceFixture struct {
	service      *DraftOrderService
	orderRepo    *MockSalesOrderRepository
	draftRepo    *MockDraftOrderRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
}

func newDraftServiceFixture(t *testing.T) *draftServiceFixture {
	t.Helper()
	f := &draftServiceFixture{
		orderRepo:    new(MockSalesOrderRepository),
		draftRepo:    new(MockDraftOrderRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
	}
	scope := NewNoOpTransactionScope(f.orderRepo, f.draftRepo, new(MockStockLevelRepository), new(MockStockMovementRepository))
	f.service = NewDraftOrderService(scope, f.productRepo, f.customerRepo, zap.NewNop())
	return f
}

func TestDraftOrderService_Open(t *testing.T) {
	f := newDraftServiceFixture(t)
	f.draftRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.DraftOrder")).Return(nil)

	resp, err := f.service.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, order.DraftStatusOpen, resp.Status)
	assert.Nil(t, resp.CustomerID)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestDraftOrderService_SelectCustomer(t *testing.T) {
	f := newDraftServiceFixture(t)
	customer := testCustomer(t)
	draft := order.NewDraftOrder()

	f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.draftRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
	f.draftRepo.On("Save", mock.Anything, draft).Return(nil)

	resp, err := f.service.SelectCustomer(context.Background(), draft.ID, SelectDraftCustomerRequest{CustomerID: customer.ID})
	require.NoError(t, err)

	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, customer.ID, *resp.CustomerID)
	assert.Equal(t, customer.Name, resp.CustomerName)
}

func TestDraftOrderService_SetLine(t *testing.T) {
	f := newDraftServiceFixture(t)
	product := testProduct(t, "Banana Chips 200g", 45.00)
	draft := order.NewDraftOrder()

	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.draftRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
	f.draftRepo.On("Save", mock.Anything, draft).Return(nil)

	resp, err := f.service.SetLine(context.Background(), draft.ID, SetDraftLineRequest{ProductID: product.ID, Quantity: 6})
	require.NoError(t, err)

	require.Len(t, resp.Lines, 1)
	assert.Equal(t, int64(6), resp.Lines[0].Quantity)
	assert.True(t, resp.EstimatedTotal.Equal(decimal.NewFromFloat(270.00)))
}

func TestDraftOrderService_Confirm(t *testing.T) {
	t.Run("materializes and persists a sales order", func(t *testing.T) {
		f := newDraftServiceFixture(t)
		customer := testCustomer(t)
		product := testProduct(t, "Banana Chips 200g", 45.00)

		draft := order.NewDraftOrder()
		require.NoError(t, draft.SelectCustomer(customer.ID, customer.Name))
		require.NoError(t, draft.SetLine(product.ID, product.Name, valueobject.MustNewQuantity(6), product.UnitPrice()))

		f.draftRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
		f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("SO-2026-0042", nil)
		f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*order.SalesOrder")).Return(nil)
		f.draftRepo.On("Save", mock.Anything, draft).Return(nil)

		resp, err := f.service.Confirm(context.Background(), draft.ID)
		require.NoError(t, err)

		assert.Equal(t, "SO-2026-0042", resp.OrderNumber)
		assert.Equal(t, order.StatusPending, resp.Status)
		assert.Equal(t, order.DraftStatusConfirmed, draft.Status)
	})

	t.Run("rejects confirm of expired draft", func(t *testing.T) {
		f := newDraftServiceFixture(t)
		customer := testCustomer(t)
		product := testProduct(t, "Banana Chips 200g", 45.00)

		draft := order.NewDraftOrder()
		require.NoError(t, draft.SelectCustomer(customer.ID, customer.Name))
		require.NoError(t, draft.SetLine(product.ID, product.Name, valueobject.MustNewQuantity(6), product.UnitPrice()))
		draft.ExpiresAt = time.Now().Add(-time.Minute)

		f.draftRepo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
		f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("SO-2026-0042", nil)

		_, err := f.service.Confirm(context.Background(), draft.ID)
		assert.Error(t, err)
		f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDraftOrderService_PurgeExpired(t *testing.T) {
	f := newDraftServiceFixture(t)
	f.draftRepo.On("DeleteExpired", mock.Anything).Return(int64(3), nil)

	purged, err := f.service.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}
