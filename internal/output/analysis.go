package output

import (
	"sort"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	Corpus           int64
	CorpusChange     int64
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the what-if scenario with the largest retirement
// corpus and measures it against the baseline. Ties keep the scenario listed
// first. The zero Recommendation means there were no scenarios.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	ranks := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].RetirementCorpus > ranks[j].RetirementCorpus })
	best := ranks[0]

	baseline := results.Baseline.RetirementCorpus
	delta := best.RetirementCorpus - baseline
	pct := decimal.Zero
	if baseline != 0 {
		pct = decimal.NewFromInt(delta).Div(decimal.NewFromInt(baseline)).Mul(decimal.NewFromInt(100))
	}
	return Recommendation{ScenarioName: best.Name, Corpus: best.RetirementCorpus, CorpusChange: delta, PercentageChange: pct}
}

// sortedScenarios returns the baseline followed by the scenarios in name order.
func sortedScenarios(results *domain.ScenarioComparison) []domain.ScenarioSummary {
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return append([]domain.ScenarioSummary{results.Baseline}, scenarios...)
}
