package domain

import (
	"bytes"
	"errors"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for seeded data and for zero totals of empty portfolios.
const DefaultCurrency = "INR"

func init() {
	// Yields and percents are sent as JSON numbers, same as amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// maxUnits caps unit counts; quotients at or above it saturate instead of wrapping.
var maxUnits = decimal.NewFromInt(math.MaxInt64)

// Money is a fixed point amount in major units tagged with an ISO currency code.
type Money struct {
	value decimal.Decimal
	cur   string
}

// NewMoney wraps a decimal amount in the given currency.
func NewMoney(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// M is a convenient factory for literals and tests.
func M[T int | int64 | float64 | decimal.Decimal](value T, currency string) Money {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Money{value: v, cur: currency}
	case int:
		return Money{value: decimal.NewFromInt(int64(v)), cur: currency}
	case int64:
		return Money{value: decimal.NewFromInt(v), cur: currency}
	case float64:
		return Money{value: decimal.NewFromFloat(v), cur: currency}
	}
	return Money{cur: currency}
}

func (m Money) Decimal() decimal.Decimal       { return m.value }
func (m Money) Currency() string               { return m.cur }
func (m Money) IsZero() bool                   { return m.value.IsZero() }
func (m Money) IsPositive() bool               { return m.value.IsPositive() }
func (m Money) Equal(n Money) bool             { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) LessThan(n Money) bool          { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool       { return m.value.GreaterThan(n.value) }
func (m Money) Mul(q decimal.Decimal) Money    { return Money{value: m.value.Mul(q), cur: m.cur} }
func (m Money) Add(n Money) Money              { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money              { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) InexactFloat64() float64        { return m.value.InexactFloat64() }
func (m Money) Percent(p decimal.Decimal) Money { return m.Mul(p).Div(decimal.NewFromInt(100)) }

// Div divides by a plain number, keeping the currency.
func (m Money) Div(q decimal.Decimal) Money { return Money{value: m.value.Div(q), cur: m.cur} }

// WithMarkup returns m * (1 + pct/100).
func (m Money) WithMarkup(pct decimal.Decimal) Money {
	return m.Add(m.Percent(pct))
}

// UnitsFloor is the number of whole units of price that m buys, saturating at
// math.MaxInt64.
func (m Money) UnitsFloor(price Money) int64 {
	if !price.IsPositive() || m.value.IsNegative() {
		return 0
	}
	q, _ := m.value.QuoRem(price.value, 0)
	return clampUnits(q)
}

// UnitsCeil is the number of units of price needed to cover m.
func (m Money) UnitsCeil(price Money) int64 {
	if !price.IsPositive() || m.value.IsNegative() {
		return 0
	}
	q, r := m.value.QuoRem(price.value, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return clampUnits(q)
}

func clampUnits(q decimal.Decimal) int64 {
	if q.GreaterThanOrEqual(maxUnits) {
		return math.MaxInt64
	}
	return q.IntPart()
}

// String formats the amount with the currency grapheme and thousands separators.
// Whole amounts are printed without fraction digits.
func (m Money) String() string {
	c := money.GetCurrency(m.cur)
	if c == nil {
		return m.value.String()
	}
	fraction := c.Fraction
	if m.value.Equal(m.value.Truncate(0)) {
		fraction = 0
	}
	minor := m.value.Shift(int32(fraction)).Round(0)
	if minor.Abs().GreaterThanOrEqual(maxUnits) {
		return formatWide(m.value, c, fraction)
	}
	f := money.NewFormatter(fraction, c.Decimal, c.Thousand, c.Grapheme, c.Template)
	return f.Format(minor.IntPart())
}

// formatWide renders amounts whose minor units do not fit in an int64, in the
// same layout as the go-money formatter.
func formatWide(v decimal.Decimal, c *money.Currency, fraction int) string {
	digits := v.Abs().StringFixed(int32(fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(c.Thousand)
		}
		b.WriteRune(d)
	}
	if frac != "" {
		b.WriteString(c.Decimal)
		b.WriteString(frac)
	}

	out := strings.Replace(c.Template, "1", b.String(), 1)
	out = strings.Replace(out, "$", c.Grapheme, 1)
	if v.IsNegative() {
		out = "-" + out
	}
	return out
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted number. The currency is left
// untouched and must be set by the caller.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		return errors.New("money: empty amount")
	}
	v, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	m.value = v
	return nil
}

// makes the "" currency weak so zero totals can be summed into.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}
