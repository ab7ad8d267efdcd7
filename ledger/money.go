package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (satang). All ledger arithmetic
// happens on this integer representation; decimals only appear at the
// parse/format boundary so repeated additions never drift.
type Money int64

// ParseMoney parses a 2-decimal amount string (as stored in NUMERIC(10,2)
// columns) into minor units.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money(d.Shift(2).Round(0).IntPart()), nil
}

// MoneyFromFloat converts a request-supplied amount (e.g. 123.45) into minor
// units, rounding to 2 decimals.
func MoneyFromFloat(f float64) Money {
	return Money(decimal.NewFromFloat(f).Round(2).Shift(2).IntPart())
}

// Decimal returns the amount in major units with 2 fractional digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount as "1234.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON emits the amount as a plain JSON number with 2 decimals,
// matching what clients already consume.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// DivideEqually returns the per-member amount for an equal split across n
// members: amount / n rounded to 2 decimals. The remainder is not
// redistributed, so n shares may sum to slightly more or less than m.
func (m Money) DivideEqually(n int) Money {
	if n <= 0 {
		return 0
	}
	share := decimal.New(int64(m), 0).Div(decimal.NewFromInt(int64(n))).Round(0)
	return Money(share.IntPart())
}
