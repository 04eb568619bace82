package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
)

// Quantity is a value object representing a non-negative count of units
// (order line quantities, stock levels, movement magnitudes).
// It is immutable - all operations return new Quantity instances.
type Quantity struct {
	value int64
}

// NewQuantity builds a Quantity, rejecting negative values
func NewQuantity(value int64) (Quantity, error) {
	if value < 0 {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	return Quantity{value: value}, nil
}

// MustNewQuantity creates a Quantity and panics on error
func MustNewQuantity(value int64) Quantity {
	q, err := NewQuantity(value)
	if err != nil {
		panic(err)
	}
	return q
}

// ZeroQuantity returns a zero quantity
func ZeroQuantity() Quantity {
	return Quantity{}
}

func (q Quantity) Int64() int64     { return q.value }
func (q Quantity) IsZero() bool     { return q.value == 0 }
func (q Quantity) IsPositive() bool { return q.value > 0 }

// Add returns a new Quantity with the sum of both quantities
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value + other.value}
}

// Subtract returns a new Quantity with the difference
// Returns error if the result would be negative
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	if other.value > q.value {
		return Quantity{}, errors.New("resulting quantity would be negative")
	}
	return Quantity{value: q.value - other.value}, nil
}

// MustSubtract subtracts quantities, panics if the result would be negative
func (q Quantity) MustSubtract(other Quantity) Quantity {
	result, err := q.Subtract(other)
	if err != nil {
		panic(err)
	}
	return result
}

func (q Quantity) LessThan(other Quantity) bool           { return q.value < other.value }
func (q Quantity) GreaterThanOrEqual(other Quantity) bool { return q.value >= other.value }

// SufficientFor reports whether this quantity covers the required
// amount, the stock-reservation check.
func (q Quantity) SufficientFor(required Quantity) bool {
	return q.value >= required.value
}

func (q Quantity) String() string {
	return strconv.FormatInt(q.value, 10)
}

// MarshalJSON implements json.Marshaler
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(q.value, 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler, rejecting negative values
func (q *Quantity) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	if v < 0 {
		return errors.New("quantity cannot be negative")
	}
	q.value = v
	return nil
}

// Value implements driver.Valuer for database storage
func (q Quantity) Value() (driver.Value, error) {
	return q.value, nil
}

// Scan implements sql.Scanner for database retrieval
func (q *Quantity) Scan(value any) error {
	if value == nil {
		q.value = 0
		return nil
	}

	switch v := value.(type) {
	case int64:
		q.value = v
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity value: %w", err)
		}
		q.value = parsed
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity value: %w", err)
		}
		q.value = parsed
	default:
		return fmt.Errorf("cannot scan %T into Quantity", value)
	}
	return nil
}
