package calculation

import (
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. One regime (slabs, surcharge, cess) is applied to every projection year
//    - No indexing of slab thresholds
//
// 2. Deductions: employer PF is excluded from taxable income, 80C and NPS
//    are capped by the regime (150000 / 50000 in the reference regime)
//
// 3. Surcharge uses marginal relief: the tax on income just above a
//    surcharge threshold never exceeds the tax at the threshold plus the
//    excess income
//
// 4. Cess is levied on tax plus surcharge

var hundred = decimal.NewFromInt(100)

// TaxCalculator computes income tax under a fixed regime. It holds no mutable
// state and is safe for concurrent use.
type TaxCalculator struct {
	Regime domain.TaxRegime
}

// NewTaxCalculator creates a tax calculator for the given regime. Slab and
// surcharge thresholds must be in descending order; see TaxRegime.Validate.
func NewTaxCalculator(regime domain.TaxRegime) *TaxCalculator {
	return &TaxCalculator{Regime: regime}
}

// NewDefaultTaxCalculator creates a calculator for the reference regime
func NewDefaultTaxCalculator() *TaxCalculator {
	return NewTaxCalculator(domain.DefaultTaxRegime())
}

// Compute returns the tax computation for one year's gross income.
func (tc *TaxCalculator) Compute(grossIncome, employerPF, declared80C, declaredNPS int64) domain.TaxResult {
	deduction80C := min(tc.Regime.Deduction80CCap, declared80C)
	deductionNPS := min(tc.Regime.DeductionNPSCap, declaredNPS)

	taxableIncome := grossIncome - employerPF - deduction80C - deductionNPS
	result := domain.TaxResult{
		GrossIncome:   grossIncome,
		TaxableIncome: taxableIncome,
		PrimaryTax:    decimal.Zero,
		SurchargeRate: decimal.Zero,
		SurchargedTax: decimal.Zero,
		Cess:          decimal.Zero,
		TotalTax:      decimal.Zero,
	}

	// Non-positive taxable income pays nothing.
	if taxableIncome > 0 {
		taxable := decimal.NewFromInt(taxableIncome)
		result.PrimaryTax = tc.SlabTax(taxable)
		result.SurchargeRate, result.SurchargedTax = tc.applySurcharge(taxable, result.PrimaryTax)
		result.Cess = result.SurchargedTax.Mul(tc.Regime.CessRate).Div(hundred)
		result.TotalTax = result.SurchargedTax.Add(result.Cess)
	}

	result.AfterTaxIncome = decimal.NewFromInt(grossIncome).Sub(result.TotalTax).IntPart()
	return result
}

// SlabTax is the primary tax before surcharge and cess. Each slab taxes the
// income above its threshold, and the remainder falls through to the next
// lower slab.
func (tc *TaxCalculator) SlabTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, slab := range tc.Regime.Slabs {
		if taxable.GreaterThan(decimal.NewFromInt(slab.Threshold)) {
			threshold := decimal.NewFromInt(slab.Threshold)
			tax = tax.Add(taxable.Sub(threshold).Mul(slab.Rate).Div(hundred))
			taxable = threshold
		}
	}
	return tax
}

// surchargeBracket finds the highest surcharge bracket whose threshold is
// strictly exceeded.
func (tc *TaxCalculator) surchargeBracket(taxable decimal.Decimal) (domain.Slab, bool) {
	for _, s := range tc.Regime.Surcharge {
		if taxable.GreaterThan(decimal.NewFromInt(s.Threshold)) {
			return s, true
		}
	}
	return domain.Slab{Rate: decimal.Zero}, false
}

// applySurcharge returns the surcharge rate and the tax after surcharge with
// marginal relief applied.
func (tc *TaxCalculator) applySurcharge(taxable, primaryTax decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	bracket, ok := tc.surchargeBracket(taxable)
	if !ok {
		return decimal.Zero, primaryTax
	}

	atRate := primaryTax.Mul(hundred.Add(bracket.Rate)).Div(hundred)

	threshold := decimal.NewFromInt(bracket.Threshold)
	thresholdBracket, _ := tc.surchargeBracket(threshold)
	atThreshold := tc.SlabTax(threshold).Mul(hundred.Add(thresholdBracket.Rate)).Div(hundred)
	marginalCap := atThreshold.Add(taxable.Sub(threshold))

	return bracket.Rate, decimal.Min(atRate, marginalCap)
}
