package output

import (
	"strconv"

	"github.com/fhcalc/financial-health-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole rupees with lakh/crore grouping.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatRupees formats a whole rupee amount.
func FormatRupees(amount int64) string { return money.FormatRupees(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func int64ToString(i int64) string { return strconv.FormatInt(i, 10) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
