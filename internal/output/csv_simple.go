package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// CSVSeriesExporter writes every selected series in long form, one row per
// scenario, series and year. The baseline comes first.
type CSVSeriesExporter struct {
	Filter SeriesFilter
}

func (c CSVSeriesExporter) Name() string { return "csv" }

func (c CSVSeriesExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Amount", "Savings Instrument"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		if sc.Projection == nil {
			continue
		}
		for _, s := range c.Filter.Apply(sc.Projection.Series()) {
			for _, p := range s.Points {
				row := []string{sc.Name, intToString(p.Year), int64ToString(p.Amount), s.Label}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
