package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scenario is a named what-if variant of the baseline parameters.
type Scenario struct {
	Name      string            `yaml:"name" json:"name"`
	Overrides map[string]string `yaml:"overrides" json:"overrides"`
}

// Apply returns the baseline with the scenario's overrides applied.
func (s Scenario) Apply(base Parameters) (Parameters, error) {
	p, err := base.With(s.Overrides)
	if err != nil {
		return Parameters{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return p, nil
}

// Configuration represents the complete input configuration
type Configuration struct {
	Regime     TaxRegime  `yaml:"regime" json:"regime"`
	Parameters Parameters `yaml:"parameters" json:"parameters"`
	Scenarios  []Scenario `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// DefaultConfiguration returns the reference regime and inputs with no scenarios.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Regime:     DefaultTaxRegime(),
		Parameters: DefaultParameters(),
	}
}

// GenerateAssumptions creates dynamic assumptions list from actual config values
func (c *Configuration) GenerateAssumptions() []string {
	r := c.Parameters.Rates
	return []string{
		fmt.Sprintf("Fixed expenses grow with inflation: %s%% annually", r.Inflation.StringFixed(1)),
		fmt.Sprintf("Income and basic salary growth: %s%% annually", r.IncomeGrowth.StringFixed(1)),
		"NPS and PF contributions stay at the same % of basic until retirement",
		fmt.Sprintf("MF / equity contributions step up %s%% / %s%% annually", r.MFStepUp.StringFixed(1), r.EquityStepUp.StringFixed(1)),
		fmt.Sprintf("PPF matures after %d more installments and moves to FD", c.Parameters.Income.PPFInstallmentsLeft),
		fmt.Sprintf("80C deductions held flat at %d (capped at %d)", c.Parameters.Income.Deductions80C, c.Regime.Deduction80CCap),
		fmt.Sprintf("Tax slabs held constant, cess %s%%", c.Regime.CessRate.StringFixed(1)),
		"Income left after tax, expenses and contributions goes to FD (negative means a withdrawal)",
	}
}

// ScenarioSummary provides a summary of key metrics for a projection run
type ScenarioSummary struct {
	Name                   string          `json:"name"`
	RetirementYear         int             `json:"retirement_year"`
	RetirementCorpus       int64           `json:"retirement_corpus"`
	FinalExpense           int64           `json:"final_expense"`
	YearsOfExpensesCovered decimal.Decimal `json:"years_of_expenses_covered"`
	CrossoverYear          int             `json:"crossover_year,omitempty"` // first year ahead of the baseline, 0 if never
	Projection             *Projection     `json:"projection"`
}

// ScenarioComparison compares the baseline with every what-if scenario
type ScenarioComparison struct {
	Baseline     ScenarioSummary   `json:"baseline"`
	Scenarios    []ScenarioSummary `json:"scenarios"`
	BestScenario string            `json:"best_scenario"`
	Assumptions  []string          `json:"assumptions"`
}

// All returns the baseline followed by every scenario.
func (sc *ScenarioComparison) All() []ScenarioSummary {
	return append([]ScenarioSummary{sc.Baseline}, sc.Scenarios...)
}
