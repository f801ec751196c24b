package output

import (
	"bytes"
	"fmt"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// ConsoleLiteFormatter provides a concise console style summary via the formatter interface.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FINANCIAL HEALTH SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Baseline Corpus: %s\n", FormatRupees(results.Baseline.RetirementCorpus))
	fmt.Fprintln(&buf)
	for _, sc := range sortedScenarios(results) {
		fmt.Fprintf(&buf, "%s: Corpus=%s Retire=%d NextYearExpense=%s Covered=%sy\n",
			sc.Name,
			FormatRupees(sc.RetirementCorpus),
			sc.RetirementYear,
			FormatRupees(sc.FinalExpense),
			sc.YearsOfExpensesCovered.StringFixed(2),
		)
		if sc.CrossoverYear != 0 {
			fmt.Fprintf(&buf, "  AheadOfBaselineFrom=%d\n", sc.CrossoverYear)
		}
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatRupees(rec.CorpusChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
