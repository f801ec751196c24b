package calculation

import (
	"fmt"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CrossoverResult describes when an alternative projection's total savings
// first overtakes a baseline's.
type CrossoverResult struct {
	YearIndex int             // index into both projections
	Year      int             // calendar year of YearIndex
	Fraction  decimal.Decimal // position within the preceding year where the gap closed, 1 = at year end
	Gap       int64           // alt - base at YearIndex
}

// CalendarYear is the interpolated crossing point, e.g. 2031.25.
func (r *CrossoverResult) CalendarYear() decimal.Decimal {
	if r.YearIndex == 0 {
		return decimal.NewFromInt(int64(r.Year))
	}
	return decimal.NewFromInt(int64(r.Year - 1)).Add(r.Fraction)
}

// CalculateCrossover finds the first year in which alt's total savings
// strictly exceed base's. Projections are aligned by index, which is also
// calendar-year aligned since both start in the same year; the shorter one
// bounds the search. A nil result with no error means alt never overtakes.
func CalculateCrossover(base, alt *domain.Projection) (*CrossoverResult, error) {
	if base == nil || alt == nil || len(base.Total) == 0 || len(alt.Total) == 0 {
		return nil, fmt.Errorf("one or both projections are empty")
	}
	if base.StartYear != alt.StartYear {
		return nil, fmt.Errorf("projections start in different years (%d, %d)", base.StartYear, alt.StartYear)
	}

	n := min(len(base.Total), len(alt.Total))
	for i := 0; i < n; i++ {
		currDiff := alt.Total[i] - base.Total[i]
		if currDiff <= 0 {
			continue
		}
		result := &CrossoverResult{
			YearIndex: i,
			Year:      alt.Years[i],
			Fraction:  decimal.NewFromInt(1),
			Gap:       currDiff,
		}
		if i > 0 {
			// Linear interpolation of the gap across the year.
			prevDiff := decimal.NewFromInt(alt.Total[i-1] - base.Total[i-1])
			denom := decimal.NewFromInt(currDiff).Sub(prevDiff)
			if !denom.IsZero() {
				result.Fraction = prevDiff.Neg().Div(denom).Round(4)
			}
		}
		return result, nil
	}
	return nil, nil
}
