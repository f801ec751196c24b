package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a summary table and
// one savings table per scenario.
type HTMLFormatter struct {
	Filter SeriesFilter
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rupees": FormatRupees,
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
}).Parse(htmlTemplateSource))

type htmlScenario struct {
	domain.ScenarioSummary
	Labels []string
	Rows   []tableRow
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	var scenarios []htmlScenario
	for _, sc := range sortedScenarios(results) {
		view := htmlScenario{ScenarioSummary: sc}
		if sc.Projection != nil {
			view.Labels, view.Rows = seriesTable(h.Filter.Apply(sc.Projection.Series()))
		}
		scenarios = append(scenarios, view)
	}

	data := struct {
		Scenarios      []htmlScenario
		BestScenario   string
		Recommendation Recommendation
		Assumptions    []string
	}{scenarios, results.BestScenario, AnalyzeScenarios(results), assumptionsFor(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
