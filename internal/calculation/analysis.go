package calculation

import (
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// bestScenario picks the highest retirement corpus; ties go to the earlier entry.
func bestScenario(summaries []domain.ScenarioSummary) string {
	var best string
	var bestCorpus int64
	for i, s := range summaries {
		if i == 0 || s.RetirementCorpus > bestCorpus {
			best = s.Name
			bestCorpus = s.RetirementCorpus
		}
	}
	return best
}

// yearsCovered is corpus / annual expense to 2 decimal places, or zero when
// the expense is not positive.
func yearsCovered(corpus, expense int64) decimal.Decimal {
	if expense <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(corpus).Div(decimal.NewFromInt(expense)).Round(2)
}
