package calculation

import (
	"fmt"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/pkg/money"
)

// BaselineName labels the unmodified parameters in a comparison.
const BaselineName = "Baseline"

// NewProjectionEngineForConfig creates an engine using the configuration's regime
func NewProjectionEngineForConfig(config *domain.Configuration) (*ProjectionEngine, error) {
	if err := config.Regime.Validate(); err != nil {
		return nil, err
	}
	return NewProjectionEngine(config.Regime), nil
}

// RunScenario projects a named parameter set and summarizes it.
func (pe *ProjectionEngine) RunScenario(name string, params domain.Parameters) (*domain.ScenarioSummary, error) {
	proj, err := pe.Project(params)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", name, err)
	}
	return &domain.ScenarioSummary{
		Name:                   name,
		RetirementYear:         proj.RetirementYear(),
		RetirementCorpus:       proj.FinalTotal(),
		FinalExpense:           proj.FinalExpense(),
		YearsOfExpensesCovered: yearsCovered(proj.FinalTotal(), proj.FinalExpense()),
		Projection:             proj,
	}, nil
}

// RunScenarios runs the baseline and every scenario and returns a comparison
func (pe *ProjectionEngine) RunScenarios(config *domain.Configuration) (*domain.ScenarioComparison, error) {
	baseline, err := pe.RunScenario(BaselineName, config.Parameters)
	if err != nil {
		return nil, fmt.Errorf("RunScenario failed: %w", err)
	}

	scenarios := make([]domain.ScenarioSummary, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		params, err := scenario.Apply(config.Parameters)
		if err != nil {
			return nil, err
		}
		summary, err := pe.RunScenario(scenario.Name, params)
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}

		crossover, err := CalculateCrossover(baseline.Projection, summary.Projection)
		if err != nil {
			return nil, fmt.Errorf("scenario %q crossover: %w", scenario.Name, err)
		}
		if crossover != nil {
			summary.CrossoverYear = crossover.Year
		}
		scenarios[i] = *summary

		pe.Logger.Debugf("scenario %q: corpus %s at %d", scenario.Name,
			money.FormatRupees(summary.RetirementCorpus), summary.RetirementYear)
	}

	comparison := &domain.ScenarioComparison{
		Baseline:    *baseline,
		Scenarios:   scenarios,
		Assumptions: config.GenerateAssumptions(),
	}
	comparison.BestScenario = bestScenario(comparison.All())
	return comparison, nil
}
