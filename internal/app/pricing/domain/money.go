package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Money represents a peso amount with exact decimal arithmetic.
// A nil *Money means the value is absent (not surveyed), which is distinct from zero.
type Money struct {
	amount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewMoney creates a Money from an integer amount of centavos.
// Example: NewMoney(4550) represents ₱45.50
func NewMoney(centavos int64) *Money {
	return &Money{amount: decimal.New(centavos, -2)}
}

// NewMoneyFromDecimal wraps a decimal value.
func NewMoneyFromDecimal(d decimal.Decimal) *Money {
	return &Money{amount: d}
}

// NewMoneyFromFloat converts a float read from a JSON or Firestore number.
// The shortest decimal representation is used, so 45.5 becomes exactly 45.5.
func NewMoneyFromFloat(f float64) *Money {
	return &Money{amount: decimal.NewFromFloat(f)}
}

// NewMoneyFromRat converts a Spanner NUMERIC value.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return nil
	}
	return &Money{amount: decimal.NewFromBigRat(rat, 9)}
}

// ParseMoney parses a decimal string such as "45.50".
func ParseMoney(s string) (*Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return &Money{amount: d}, nil
}

// Decimal returns the underlying decimal value.
func (m *Money) Decimal() decimal.Decimal {
	return m.amount
}

// Rat returns the value as a big.Rat for Spanner NUMERIC columns.
func (m *Money) Rat() *big.Rat {
	return m.amount.Rat()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{amount: m.amount.Add(other.amount)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{amount: m.amount.Sub(other.amount)}
}

// Abs returns the magnitude of the value.
func (m *Money) Abs() *Money {
	return &Money{amount: m.amount.Abs()}
}

// PercentOf returns m / base * 100. A zero base yields zero.
func (m *Money) PercentOf(base *Money) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return m.amount.Div(base.amount).Mul(hundred)
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Cmp compares two values: -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.amount.Cmp(other.amount)
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equals returns true if this Money value equals another.
// 10 and 10.00 are equal.
func (m *Money) Equals(other *Money) bool {
	return m.amount.Equal(other.amount)
}

// SameAs reports whether two possibly-absent values are equal.
func SameAs(a, b *Money) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// key returns a canonical representation usable as a map key.
func (m *Money) key() string {
	return m.amount.String()
}

// Float64 returns an approximate float64 representation (for persistence and display only).
func (m *Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the value with two decimal places.
func (m *Money) String() string {
	return m.amount.StringFixed(2)
}

// Copy creates a copy of this Money instance.
func (m *Money) Copy() *Money {
	if m == nil {
		return nil
	}
	return &Money{amount: m.amount}
}

// MarshalJSON renders the amount as a bare JSON number.
func (m *Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.amount.UnmarshalJSON(data)
}
