package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12345)
	assert.Equal(t, "12345", m.String())

	d := decimal.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	assert.True(t, m2.Decimal.Equal(d))

	m3, err := NewMoneyFromString("123.45")
	require.NoError(t, err)
	assert.Equal(t, int64(123), m3.Rupees())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestPeriodConversions(t *testing.T) {
	m := NewMoney(30000)
	assert.Equal(t, "360000", m.Annual().String())
	assert.Equal(t, "30000", m.Annual().Monthly().String())
}

func TestArithmetic(t *testing.T) {
	a := NewMoney(1000)
	b := NewMoney(250)
	assert.Equal(t, int64(1250), a.Add(b).Rupees())
	assert.Equal(t, int64(750), a.Sub(b).Rupees())
	assert.Equal(t, int64(1040), a.Mul(decimal.RequireFromString("1.04")).Rupees())
	assert.True(t, Min(a, b).Equal(b.Decimal))
	assert.True(t, Max(a, b).Equal(a.Decimal))
	assert.True(t, Zero().IsZero())
}

func TestGroupIndian(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{-4500000, "45,00,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupIndian(tt.in), "GroupIndian(%d)", tt.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹12,34,567", NewMoney(1234567).Format())
	assert.Equal(t, "-₹5,000", FormatRupees(-5000))
	assert.Equal(t, "₹1,000", NewMoneyFromDecimal(decimal.RequireFromString("999.6")).Format())
}

func TestCompound(t *testing.T) {
	r := decimal.RequireFromString("7.1")

	// zero periods and zero rate are identities
	assert.Equal(t, int64(300000), Compound(300000, r, 0))
	assert.Equal(t, int64(300000), Compound(300000, decimal.Zero, 25))

	assert.Equal(t, int64(321300), Compound(300000, r, 1))
	// 400000 * 1.03^2 = 424360
	assert.Equal(t, int64(424360), Compound(400000, decimal.NewFromInt(3), 2))
	// truncation toward zero, not floor
	assert.Equal(t, int64(-1039), Compound(-1000, decimal.RequireFromString("3.95"), 1))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, int64(48000), PercentOf(400000, decimal.NewFromInt(12)))
	assert.Equal(t, int64(20000), PercentOf(400000, decimal.NewFromInt(5)))
	// 412000 * 5% = 20600; 412345 * 12.5% = 51543.125
	assert.Equal(t, int64(51543), PercentOf(412345, decimal.RequireFromString("12.5")))
}

func TestGrowthFactor(t *testing.T) {
	f := GrowthFactor(decimal.NewFromInt(10), 3)
	assert.True(t, f.Equal(decimal.RequireFromString("1.331")), "got %s", f)
	assert.True(t, GrowthFactor(decimal.NewFromInt(10), -2).Equal(decimal.NewFromInt(1)))
}
