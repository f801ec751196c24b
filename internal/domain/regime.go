package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Slab is a (threshold, rate%) pair. Income strictly above Threshold is
// taxed (or surcharged) at Rate percent.
type Slab struct {
	Threshold int64           `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxRegime is the progressive income-tax regime applied every year.
// Slabs and Surcharge must be ordered from the highest threshold down.
type TaxRegime struct {
	Slabs           []Slab          `yaml:"slabs" json:"slabs"`
	Surcharge       []Slab          `yaml:"surcharge" json:"surcharge"`
	CessRate        decimal.Decimal `yaml:"cess_rate" json:"cess_rate"` // percent, applied on tax + surcharge
	Deduction80CCap int64           `yaml:"deduction_80c_cap" json:"deduction_80c_cap"`
	DeductionNPSCap int64           `yaml:"deduction_nps_cap" json:"deduction_nps_cap"`
}

// DefaultTaxRegime returns the reference slab, surcharge and cess tables.
func DefaultTaxRegime() TaxRegime {
	return TaxRegime{
		Slabs: []Slab{
			{Threshold: 1000000, Rate: decimal.NewFromInt(30)},
			{Threshold: 500000, Rate: decimal.NewFromInt(20)},
			{Threshold: 250000, Rate: decimal.NewFromInt(5)},
		},
		Surcharge: []Slab{
			{Threshold: 50000000, Rate: decimal.NewFromInt(37)},
			{Threshold: 20000000, Rate: decimal.NewFromInt(25)},
			{Threshold: 10000000, Rate: decimal.NewFromInt(15)},
			{Threshold: 5000000, Rate: decimal.NewFromInt(10)},
			{Threshold: 0, Rate: decimal.Zero},
		},
		CessRate:        decimal.NewFromInt(4),
		Deduction80CCap: 150000,
		DeductionNPSCap: 50000,
	}
}

// Validate rejects tables the calculator would silently mis-handle.
func (r TaxRegime) Validate() error {
	if len(r.Slabs) == 0 {
		return fmt.Errorf("%w: at least one slab is required", ErrInvalidRegime)
	}
	if err := validateSlabs("slabs", r.Slabs); err != nil {
		return err
	}
	if err := validateSlabs("surcharge", r.Surcharge); err != nil {
		return err
	}
	if r.CessRate.IsNegative() {
		return fmt.Errorf("%w: cess rate cannot be negative", ErrInvalidRegime)
	}
	if r.Deduction80CCap < 0 || r.DeductionNPSCap < 0 {
		return fmt.Errorf("%w: deduction caps cannot be negative", ErrInvalidRegime)
	}
	return nil
}

func validateSlabs(name string, slabs []Slab) error {
	for i, s := range slabs {
		if s.Rate.IsNegative() {
			return fmt.Errorf("%w: %s[%d] rate cannot be negative", ErrInvalidRegime, name, i)
		}
		if i > 0 && s.Threshold >= slabs[i-1].Threshold {
			return fmt.Errorf("%w: %s thresholds must be strictly descending (%d after %d)",
				ErrInvalidRegime, name, s.Threshold, slabs[i-1].Threshold)
		}
	}
	return nil
}
