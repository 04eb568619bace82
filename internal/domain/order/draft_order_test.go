package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

func openDraftWithCustomer(t *testing.T) *DraftOrder {
	draft := NewDraftOrder()
	require.NoError(t, draft.SelectCustomer(uuid.New(), "Mapusa Bakery"))
	return draft
}

func TestNewDraftOrder(t *testing.T) {
	draft := NewDraftOrder()
	assert.Equal(t, DraftStatusOpen, draft.Status)
	assert.Nil(t, draft.CustomerID)
	assert.Empty(t, draft.Lines)
	assert.False(t, draft.IsExpired())
	assert.WithinDuration(t, time.Now().Add(DraftTTL), draft.ExpiresAt, time.Minute)
}

func TestDraftOrder_SelectCustomer(t *testing.T) {
	t.Run("selects and reselects customer", func(t *testing.T) {
		draft := NewDraftOrder()
		first := uuid.New()
		require.NoError(t, draft.SelectCustomer(first, "Mapusa Bakery"))
		assert.Equal(t, first, *draft.CustomerID)

		second := uuid.New()
		require.NoError(t, draft.SelectCustomer(second, "Margao Stores"))
		assert.Equal(t, second, *draft.CustomerID)
		assert.Equal(t, "Margao Stores", draft.CustomerName)
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		draft := NewDraftOrder()
		err := draft.SelectCustomer(uuid.Nil, "Mapusa Bakery")
		assert.Error(t, err)
	})

	t.Run("rejects selection on expired draft", func(t *testing.T) {
		draft := NewDraftOrder()
		draft.ExpiresAt = time.Now().Add(-time.Minute)

		err := draft.SelectCustomer(uuid.New(), "Mapusa Bakery")
		assert.Error(t, err)
	})
}

func TestDraftOrder_SetLine(t *testing.T) {
	price := valueobject.NewMoneyINRFromFloat(45.00)

	t.Run("adds and replaces a product selection", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		productID := uuid.New()

		require.NoError(t, draft.SetLine(productID, "Banana Chips 200g", valueobject.MustNewQuantity(3), price))
		require.Len(t, draft.Lines, 1)
		assert.Equal(t, int64(3), draft.Lines[0].Quantity)

		require.NoError(t, draft.SetLine(productID, "Banana Chips 200g", valueobject.MustNewQuantity(7), price))
		require.Len(t, draft.Lines, 1)
		assert.Equal(t, int64(7), draft.Lines[0].Quantity)
	})

	t.Run("zero quantity removes the product", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		productID := uuid.New()

		require.NoError(t, draft.SetLine(productID, "Banana Chips 200g", valueobject.MustNewQuantity(3), price))
		require.NoError(t, draft.SetLine(productID, "Banana Chips 200g", valueobject.ZeroQuantity(), price))
		assert.Empty(t, draft.Lines)
	})

	t.Run("zero quantity for absent product is a no-op", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		require.NoError(t, draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.ZeroQuantity(), price))
		assert.Empty(t, draft.Lines)
	})

	t.Run("rejects set on expired draft", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		draft.ExpiresAt = time.Now().Add(-time.Minute)

		err := draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.MustNewQuantity(1), price)
		assert.Error(t, err)
	})
}

func TestDraftOrder_EstimatedTotal(t *testing.T) {
	draft := openDraftWithCustomer(t)
	require.NoError(t, draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.MustNewQuantity(10), valueobject.NewMoneyINRFromFloat(45.00)))
	require.NoError(t, draft.SetLine(uuid.New(), "Chakli 250g", valueobject.MustNewQuantity(4), valueobject.NewMoneyINRFromFloat(60.00)))

	assert.True(t, draft.EstimatedTotal().Equal(decimal.NewFromFloat(690.00)))
}

func TestDraftOrder_Confirm(t *testing.T) {
	t.Run("materializes a pending sales order", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		require.NoError(t, draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.MustNewQuantity(10), valueobject.NewMoneyINRFromFloat(45.00)))
		require.NoError(t, draft.SetLine(uuid.New(), "Chakli 250g", valueobject.MustNewQuantity(4), valueobject.NewMoneyINRFromFloat(60.00)))

		salesOrder, err := draft.Confirm("SO-2026-0042")
		require.NoError(t, err)
		require.NotNil(t, salesOrder)

		assert.Equal(t, StatusPending, salesOrder.Status)
		assert.Equal(t, *draft.CustomerID, salesOrder.CustomerID)
		assert.Len(t, salesOrder.Lines, 2)
		assert.True(t, salesOrder.TotalAmount.Equal(decimal.NewFromFloat(690.00)))

		assert.Equal(t, DraftStatusConfirmed, draft.Status)
		require.NotNil(t, draft.OrderID)
		assert.Equal(t, salesOrder.ID, *draft.OrderID)
	})

	t.Run("rejects confirm without customer", func(t *testing.T) {
		draft := NewDraftOrder()
		require.NoError(t, draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.MustNewQuantity(1), valueobject.NewMoneyINRFromFloat(45.00)))

		_, err := draft.Confirm("SO-2026-0042")
		assert.Error(t, err)
	})

	t.Run("rejects confirm without lines", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		_, err := draft.Confirm("SO-2026-0042")
		assert.Error(t, err)
	})

	t.Run("rejects confirm of expired draft", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		require.NoError(t, draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.MustNewQuantity(1), valueobject.NewMoneyINRFromFloat(45.00)))
		draft.ExpiresAt = time.Now().Add(-time.Minute)

		_, err := draft.Confirm("SO-2026-0042")
		assert.Error(t, err)
	})

	t.Run("rejects double confirm", func(t *testing.T) {
		draft := openDraftWithCustomer(t)
		require.NoError(t, draft.SetLine(uuid.New(), "Banana Chips 200g", valueobject.MustNewQuantity(1), valueobject.NewMoneyINRFromFloat(45.00)))

		_, err := draft.Confirm("SO-2026-0042")
		require.NoError(t, err)

		_, err = draft.Confirm("SO-2026-0043")
		assert.Error(t, err)
	})
}

func TestDraftOrder_Discard(t *testing.T) {
	draft := openDraftWithCustomer(t)
	require.NoError(t, draft.Discard())
	assert.Equal(t, DraftStatusDiscarded, draft.Status)

	err := draft.Discard()
	assert.Error(t, err)
}
