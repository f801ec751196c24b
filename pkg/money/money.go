package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the currency marker used by Format.
const Symbol = "₹"

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Money represents a rupee amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a Money from a whole rupee amount
func NewMoney(rupees int64) Money {
	return Money{decimal.NewFromInt(rupees)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Rupees truncates toward zero to whole rupees.
func (m Money) Rupees() int64 {
	return m.Decimal.IntPart()
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount rounded to whole rupees.
func (m Money) String() string {
	return m.Decimal.StringFixed(0)
}

// Format renders the amount with the rupee symbol and Indian digit grouping,
// e.g. ₹12,34,567.
func (m Money) Format() string {
	return FormatRupees(m.Decimal.Round(0).IntPart())
}

// FormatRupees formats a whole rupee amount using lakh/crore grouping.
func FormatRupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + Symbol + GroupIndian(amount)
}

// GroupIndian groups the absolute value of n as 3 digits then pairs: 1,23,45,678.
func GroupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	s = strings.TrimPrefix(s, "-")
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}

// GrowthFactor returns (1 + ratePct/100)^periods, computed exactly.
// Non-positive periods yield 1.
func GrowthFactor(ratePct decimal.Decimal, periods int) decimal.Decimal {
	step := one.Add(ratePct.Shift(-2))
	factor := one
	for i := 0; i < periods; i++ {
		factor = factor.Mul(step)
	}
	return factor
}

// Compound grows principal at ratePct percent per year for periods years with
// annual compounding and truncates the result to whole rupees.
func Compound(principal int64, ratePct decimal.Decimal, periods int) int64 {
	return decimal.NewFromInt(principal).Mul(GrowthFactor(ratePct, periods)).IntPart()
}

// PercentOf returns pct percent of amount, truncated to whole rupees.
func PercentOf(amount int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(pct).Shift(-2).IntPart()
}
