package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// CSVDetailedExporter provides the raw cash flows of every simulated year per scenario.
type CSVDetailedExporter struct {
	Filter SeriesFilter
}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "Basic", "Income", "TaxableIncome", "TotalTax", "AfterTaxIncome", "Expense",
		"NPS", "EmployerPF", "EmployeePF", "PPF", "MF", "Equity", "FDPlug",
		"PPFMatured", "PPFMaturityAmount", "TotalSavings",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		if sc.Projection == nil {
			continue
		}
		for _, yr := range sc.Projection.Yearly {
			if !c.Filter.InRange(yr.Year) {
				continue
			}
			row := []string{
				sc.Name,
				intToString(yr.Year),
				int64ToString(yr.Basic),
				int64ToString(yr.Income),
				int64ToString(yr.Tax.TaxableIncome),
				yr.Tax.TotalTax.StringFixed(2),
				int64ToString(yr.Tax.AfterTaxIncome),
				int64ToString(yr.Expense),
				int64ToString(yr.Contributions[domain.NPS]),
				int64ToString(yr.EmployerPF),
				int64ToString(yr.EmployeePF),
				int64ToString(yr.Contributions[domain.PPF]),
				int64ToString(yr.Contributions[domain.MF]),
				int64ToString(yr.Contributions[domain.Equity]),
				int64ToString(yr.FDPlug()),
				boolToString(yr.PPFMatured),
				int64ToString(yr.PPFMaturityAmt),
				int64ToString(sc.Projection.Total[yr.Index+1]),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
