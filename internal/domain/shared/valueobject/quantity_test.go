package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		wantErr bool
	}{
		{"zero is allowed", 0, false},
		{"positive is allowed", 42, false},
		{"negative is rejected", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuantity(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, q.Int64())
		})
	}
}

func TestQuantity_Arithmetic(t *testing.T) {
	ten := MustNewQuantity(10)
	three := MustNewQuantity(3)

	assert.Equal(t, int64(13), ten.Add(three).Int64())

	diff, err := ten.Subtract(three)
	require.NoError(t, err)
	assert.Equal(t, int64(7), diff.Int64())

	_, err = three.Subtract(ten)
	assert.Error(t, err)
}

func TestQuantity_Comparisons(t *testing.T) {
	five := MustNewQuantity(5)
	eight := MustNewQuantity(8)

	assert.True(t, five.LessThan(eight))
	assert.True(t, eight.GreaterThanOrEqual(five))
	assert.True(t, eight.SufficientFor(five))
	assert.False(t, five.SufficientFor(eight))
	assert.True(t, ZeroQuantity().IsZero())
	assert.True(t, five.IsPositive())
}

func TestQuantity_JSON(t *testing.T) {
	data, err := json.Marshal(MustNewQuantity(7))
	require.NoError(t, err)
	assert.Equal(t, "7", string(data))

	var q Quantity
	require.NoError(t, json.Unmarshal([]byte("12"), &q))
	assert.Equal(t, int64(12), q.Int64())

	assert.Error(t, json.Unmarshal([]byte("-3"), &q))
}

func TestQuantity_Scan(t *testing.T) {
	var q Quantity
	require.NoError(t, q.Scan(int64(9)))
	assert.Equal(t, int64(9), q.Int64())

	require.NoError(t, q.Scan([]byte("15")))
	assert.Equal(t, int64(15), q.Int64())

	require.NoError(t, q.Scan(nil))
	assert.True(t, q.IsZero())

	assert.Error(t, q.Scan(1.5))
}
