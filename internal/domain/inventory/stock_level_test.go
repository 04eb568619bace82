package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared/valueobject"
)

func createTestLevel(t *testing.T) *StockLevel {
	level, err := NewStockLevel(uuid.New(), uuid.New(), "Banana Chips 200g")
	require.NoError(t, err)
	return level
}

func qty(n int64) valueobject.Quantity {
	return valueobject.MustNewQuantity(n)
}

func TestNewStockLevel(t *testing.T) {
	t.Run("creates zero-quantity level", func(t *testing.T) {
		level := createTestLevel(t)
		assert.Equal(t, int64(0), level.Quantity)
		assert.False(t, level.HasStock())
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewStockLevel(uuid.Nil, uuid.New(), "Banana Chips 200g")
		assert.Error(t, err)
	})

	t.Run("rejects nil location", func(t *testing.T) {
		_, err := NewStockLevel(uuid.New(), uuid.Nil, "Banana Chips 200g")
		assert.Error(t, err)
	})
}

func TestStockLevel_AddStock(t *testing.T) {
	t.Run("increases level and returns inbound movement", func(t *testing.T) {
		level := createTestLevel(t)

		movement, err := level.AddStock(qty(50), "GRN-001", "fresh batch")
		require.NoError(t, err)

		assert.Equal(t, int64(50), level.Quantity)
		assert.Equal(t, MovementTypeIn, movement.Type)
		assert.Equal(t, int64(50), movement.Quantity)
		assert.Equal(t, int64(50), movement.SignedDelta())
		assert.Equal(t, "GRN-001", movement.Reference)
	})

	t.Run("accumulates across additions", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(50), "", "")
		require.NoError(t, err)
		_, err = level.AddStock(qty(30), "", "")
		require.NoError(t, err)

		assert.Equal(t, int64(80), level.Quantity)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(valueobject.ZeroQuantity(), "", "")
		assert.Error(t, err)
		assert.Equal(t, int64(0), level.Quantity)
	})

	t.Run("raises stock added event", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(10), "", "")
		require.NoError(t, err)

		events := level.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockAdded, events[0].EventType())
	})
}

func TestStockLevel_RemoveStock(t *testing.T) {
	t.Run("decreases level and returns outbound movement", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(50), "", "")
		require.NoError(t, err)

		movement, err := level.RemoveStock(qty(20), "SO-2026-0001", "")
		require.NoError(t, err)

		assert.Equal(t, int64(30), level.Quantity)
		assert.Equal(t, MovementTypeOut, movement.Type)
		assert.Equal(t, int64(20), movement.Quantity)
		assert.Equal(t, int64(-20), movement.SignedDelta())
	})

	t.Run("rejects removal exceeding the level", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(10), "", "")
		require.NoError(t, err)

		_, err = level.RemoveStock(qty(11), "", "")
		assert.Error(t, err)
		assert.Equal(t, int64(10), level.Quantity)
	})

	t.Run("rejects removal from empty level", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.RemoveStock(qty(1), "", "")
		assert.Error(t, err)
	})

	t.Run("allows removal down to exactly zero", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(10), "", "")
		require.NoError(t, err)

		_, err = level.RemoveStock(qty(10), "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), level.Quantity)
	})
}

func TestStockLevel_Adjust(t *testing.T) {
	t.Run("corrects level upward with signed delta", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(40), "", "")
		require.NoError(t, err)

		movement, err := level.Adjust(qty(45), "count found extra cartons")
		require.NoError(t, err)

		assert.Equal(t, int64(45), level.Quantity)
		assert.Equal(t, MovementTypeAdjustment, movement.Type)
		assert.Equal(t, int64(5), movement.SignedDelta())
	})

	t.Run("corrects level downward with negative delta", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(40), "", "")
		require.NoError(t, err)

		movement, err := level.Adjust(qty(33), "damaged stock written off")
		require.NoError(t, err)

		assert.Equal(t, int64(33), level.Quantity)
		assert.Equal(t, int64(-7), movement.SignedDelta())
	})

	t.Run("rejects adjustment without reason", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.Adjust(qty(5), "")
		assert.Error(t, err)
	})

	t.Run("rejects no-op adjustment", func(t *testing.T) {
		level := createTestLevel(t)
		_, err := level.AddStock(qty(40), "", "")
		require.NoError(t, err)

		_, err = level.Adjust(qty(40), "count matched")
		assert.Error(t, err)
	})
}

func TestStockLevel_MovementsSumToLevel(t *testing.T) {
	level := createTestLevel(t)
	movements := make([]*StockMovement, 0)

	m, err := level.AddStock(qty(100), "", "")
	require.NoError(t, err)
	movements = append(movements, m)

	m, err = level.RemoveStock(qty(35), "", "")
	require.NoError(t, err)
	movements = append(movements, m)

	m, err = level.Adjust(qty(60), "recount")
	require.NoError(t, err)
	movements = append(movements, m)

	var sum int64
	for _, movement := range movements {
		sum += movement.SignedDelta()
	}
	assert.Equal(t, level.Quantity, sum)
}

func TestStockLevel_CanFulfill(t *testing.T) {
	level := createTestLevel(t)
	_, err := level.AddStock(qty(10), "", "")
	require.NoError(t, err)

	assert.True(t, level.CanFulfill(qty(10)))
	assert.True(t, level.CanFulfill(qty(5)))
	assert.False(t, level.CanFulfill(qty(11)))
}
