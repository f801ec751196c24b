package output

import (
	"encoding/json"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON,
// with each scenario's projection flattened to its selected series.
type JSONFormatter struct {
	Filter SeriesFilter
}

func (j JSONFormatter) Name() string { return "json" }

// ScenarioReport is the JSON view of one scenario.
type ScenarioReport struct {
	Name                   string              `json:"name"`
	RetirementYear         int                 `json:"retirement_year"`
	RetirementCorpus       int64               `json:"retirement_corpus"`
	FinalExpense           int64               `json:"final_expense"`
	YearsOfExpensesCovered decimal.Decimal     `json:"years_of_expenses_covered"`
	CrossoverYear          int                 `json:"crossover_year,omitempty"`
	Series                 []domain.Series     `json:"series"`
	Yearly                 []domain.YearDetail `json:"yearly,omitempty"`
}

// ComparisonReport is the JSON document produced by JSONFormatter.
type ComparisonReport struct {
	Baseline     ScenarioReport   `json:"baseline"`
	Scenarios    []ScenarioReport `json:"scenarios"`
	BestScenario string           `json:"best_scenario"`
	Assumptions  []string         `json:"assumptions"`
}

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(j.Report(results), "", "  ")
}

// Report builds the JSON view of results.
func (j JSONFormatter) Report(results *domain.ScenarioComparison) ComparisonReport {
	report := ComparisonReport{
		Baseline:     j.scenario(results.Baseline),
		Scenarios:    make([]ScenarioReport, 0, len(results.Scenarios)),
		BestScenario: results.BestScenario,
		Assumptions:  assumptionsFor(results),
	}
	for _, sc := range results.Scenarios {
		report.Scenarios = append(report.Scenarios, j.scenario(sc))
	}
	return report
}

func (j JSONFormatter) scenario(sc domain.ScenarioSummary) ScenarioReport {
	r := ScenarioReport{
		Name:                   sc.Name,
		RetirementYear:         sc.RetirementYear,
		RetirementCorpus:       sc.RetirementCorpus,
		FinalExpense:           sc.FinalExpense,
		YearsOfExpensesCovered: sc.YearsOfExpensesCovered,
		CrossoverYear:          sc.CrossoverYear,
		Series:                 []domain.Series{},
	}
	if sc.Projection == nil {
		return r
	}
	r.Series = j.Filter.Apply(sc.Projection.Series())
	for _, y := range sc.Projection.Yearly {
		if j.Filter.InRange(y.Year) {
			r.Yearly = append(r.Yearly, y)
		}
	}
	return r
}
