package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code.
type Currency string

const (
	INR Currency = "INR"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// DefaultCurrency is assumed whenever a stored amount carries no currency.
const DefaultCurrency = INR

// Money pairs a decimal amount with a currency. Instances are immutable,
// every operation hands back a fresh value.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney builds a Money in the given currency.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyINR builds a rupee amount.
func NewMoneyINR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: INR}
}

// NewMoneyINRFromFloat builds a rupee amount from a float64.
func NewMoneyINRFromFloat(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount), currency: INR}
}

// NewMoneyINRFromString parses a decimal string into a rupee amount.
func NewMoneyINRFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return Money{amount: d, currency: INR}, nil
}

// Zero returns zero in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// ZeroINR returns zero rupees.
func ZeroINR() Money {
	return Zero(INR)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

func (m Money) requireSameCurrency(other Money, op string) error {
	if m.currency != other.currency {
		return fmt.Errorf("cannot %s money with different currencies: %s and %s", op, m.currency, other.currency)
	}
	return nil
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other, "add"); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MustAdd is Add for amounts whose currencies are known to match. It
// panics on a mismatch.
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Subtract computes the difference of two amounts of the same currency.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.requireSameCurrency(other, "subtract"); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MustSubtract is Subtract for amounts whose currencies are known to
// match. It panics on a mismatch.
func (m Money) MustSubtract(other Money) Money {
	result, err := m.Subtract(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Multiply scales the amount by an arbitrary decimal factor.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// MultiplyByInt scales the amount by an integer factor, the common case
// for quantity times unit price.
func (m Money) MultiplyByInt(factor int64) Money {
	return m.Multiply(decimal.NewFromInt(factor))
}

// Divide splits the amount by a non-zero divisor.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, errors.New("cannot divide by zero")
	}
	return Money{amount: m.amount.Div(divisor), currency: m.currency}, nil
}

// Round rounds the amount to the given number of decimal places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// Equals reports whether both amount and currency match.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// LessThan compares two amounts of the same currency.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other, "compare"); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// GreaterThan compares two amounts of the same currency.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.requireSameCurrency(other, "compare"); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// GreaterThanOrEqual compares two amounts of the same currency.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.requireSameCurrency(other, "compare"); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// String renders the amount to two decimal places followed by the
// currency code, e.g. "499.00 INR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// StringFixed renders just the amount with a fixed number of decimals.
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON encodes the amount as a string to avoid float precision
// loss in clients.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: m.currency})
}

// UnmarshalJSON decodes the {amount, currency} form produced by
// MarshalJSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	m.currency = v.Currency
	return nil
}

// Value stores only the amount. The column type carries no currency,
// see Scan.
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan reads a numeric column back into Money. A NULL becomes zero and
// a missing currency falls back to DefaultCurrency.
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		m.currency = DefaultCurrency
		return nil
	}

	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = amount
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}

// Allocate splits the amount into parts that sum back to the original.
// Each part gets the truncated equal share and the leftover paise go to
// the earliest parts, one paisa each.
func (m Money) Allocate(parts int) ([]Money, error) {
	if parts <= 0 {
		return nil, errors.New("parts must be positive")
	}
	if parts == 1 {
		return []Money{m}, nil
	}

	n := decimal.NewFromInt(int64(parts))
	base := m.amount.Div(n).Truncate(2)
	leftoverPaise := m.amount.Sub(base.Mul(n)).Mul(decimal.NewFromInt(100)).IntPart()

	paisa := decimal.NewFromFloat(0.01)
	result := make([]Money, parts)
	for i := range parts {
		share := base
		if int64(i) < leftoverPaise {
			share = share.Add(paisa)
		}
		result[i] = Money{amount: share, currency: m.currency}
	}
	return result, nil
}
