package output

import (
	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when a comparison carries none of its own.
var DefaultAssumptions = domain.DefaultConfiguration().GenerateAssumptions()

func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) > 0 {
		return results.Assumptions
	}
	return DefaultAssumptions
}
