package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestComparison runs the engine for one year from 2025 with the
// reference inputs and two what-if scenarios.
func buildTestComparison(t *testing.T) *domain.ScenarioComparison {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	config := domain.DefaultConfiguration()
	config.Parameters.Income.YearsTillRetirement = 1
	config.Scenarios = []domain.Scenario{
		{Name: "Weak Equity", Overrides: map[string]string{"equity_ror": "2"}},
		{Name: "Higher MF Returns", Overrides: map[string]string{"mf_ror": "10"}},
	}

	engine, err := calculation.NewProjectionEngineForConfig(config)
	require.NoError(t, err)
	results, err := engine.RunScenarios(config)
	require.NoError(t, err)
	return results
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, strings.Repeat("=", 72)+"\nFINANCIAL HEALTH PROJECTION\n"))
	assert.Contains(t, content, "• Fixed expenses grow with inflation: 7.0% annually")
	assert.Contains(t, content, "SCENARIO 1: Baseline")
	assert.Contains(t, content, "SCENARIO 2: Higher MF Returns")
	assert.Contains(t, content, "SCENARIO 3: Weak Equity")
	assert.Contains(t, content, "Retirement corpus (2026):    ₹25,03,794")
	assert.Contains(t, content, "Years of expenses covered:  6.50")
	assert.Contains(t, content, "Ahead of baseline from:     2026")
	assert.Contains(t, content, "₹1,02,344", "FD plug")
	assert.Contains(t, content, "Best scenario: Higher MF Returns")
	assert.Contains(t, content, "Corpus change vs baseline: ₹10,000 (0.40%)")
}

func TestConsoleFormatter_Filter(t *testing.T) {
	f := ConsoleFormatter{Filter: SeriesFilter{Labels: []string{"NPS"}, StartYear: 2026}}
	out, err := f.Format(buildTestComparison(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "₹1,30,000")
	assert.NotContains(t, content, "₹1,00,000", "2025 opening balances are filtered out")
	assert.NotContains(t, content, "₹10,00,000", "2025 cash flows are filtered out")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "Baseline Corpus: ₹25,03,794")
	assert.Contains(t, content, "Weak Equity: Corpus=₹24,73,794 Retire=2026")
	assert.Contains(t, content, "Recommended: Higher MF Returns")
}

func TestCSVSeriesExporter(t *testing.T) {
	out, err := CSVSeriesExporter{}.Format(buildTestComparison(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+3*10*2, "header + 3 scenarios x 10 series x 2 years")
	assert.Equal(t, "Scenario,Year,Amount,Savings Instrument", lines[0])
	assert.Equal(t, "Baseline,2025,1805000,Total Savings", lines[1])
	assert.Equal(t, "Baseline,2026,2503794,Total Savings", lines[2])
	assert.True(t, strings.HasPrefix(lines[21], "Higher MF Returns,"), "scenarios sorted by name after baseline")
	assert.True(t, strings.HasPrefix(lines[41], "Weak Equity,"))
}

func TestCSVSeriesExporter_Filter(t *testing.T) {
	f := CSVSeriesExporter{Filter: SeriesFilter{Labels: []string{"total savings"}, StartYear: 2026}}
	out, err := f.Format(buildTestComparison(t))
	require.NoError(t, err)

	assert.Equal(t, "Scenario,Year,Amount,Savings Instrument\n"+
		"Baseline,2026,2503794,Total Savings\n"+
		"Higher MF Returns,2026,2513794,Total Savings\n"+
		"Weak Equity,2026,2473794,Total Savings\n", string(out))
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestComparison(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Year,Basic,Income,TaxableIncome,TotalTax"))
	assert.Equal(t, "Baseline,2025,400000,1000000,782000,71656.00,928344,360000,20000,48000,48000,150000,200000,0,102344,false,0,2503794", lines[1])
}

func TestJSONFormatter(t *testing.T) {
	f := JSONFormatter{Filter: SeriesFilter{Labels: []string{"Total Savings", "FD"}}}
	out, err := f.Format(buildTestComparison(t))
	require.NoError(t, err)

	var report ComparisonReport
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, "Baseline", report.Baseline.Name)
	assert.Equal(t, int64(2503794), report.Baseline.RetirementCorpus)
	assert.Equal(t, "Higher MF Returns", report.BestScenario)
	require.Len(t, report.Baseline.Series, 2)
	assert.Equal(t, "Total Savings", report.Baseline.Series[0].Label)
	assert.Equal(t, "FD", report.Baseline.Series[1].Label)
	assert.Equal(t, int64(310344), report.Baseline.Series[1].Last().Amount)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "Weak Equity", report.Scenarios[0].Name, "scenario order follows the configuration")
	assert.Equal(t, 2026, report.Scenarios[1].CrossoverYear)
	assert.NotEmpty(t, report.Assumptions)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestComparison(t))
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "Scenario Summary")
	assert.Contains(t, content, "Key Assumptions")
	assert.Contains(t, content, "<td>₹25,03,794</td>")
	assert.Contains(t, content, "<td>6.50</td>")
	assert.Contains(t, content, `<tr class="best">`)
	assert.Contains(t, content, "Recommended: <strong>Higher MF Returns</strong>")
	assert.Contains(t, content, "<h3>Weak Equity: Savings by Instrument</h3>")
}

func TestHTMLFormatter_DefaultAssumptions(t *testing.T) {
	results := buildTestComparison(t)
	results.Assumptions = nil

	out, err := HTMLFormatter{}.Format(results)
	require.NoError(t, err)
	assert.Contains(t, string(out), DefaultAssumptions[0])
}

func TestFormatters_NoScenarios(t *testing.T) {
	results := buildTestComparison(t)
	results.Scenarios = nil

	for _, f := range builtInFormatters {
		t.Run(f.Name(), func(t *testing.T) {
			out, err := f.Format(results)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
			assert.NotContains(t, string(out), "Recommended")
		})
	}
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, AvailableFormatterNames())
	assert.Equal(t, "detailed-csv", GetFormatterByName(" CSV-Detailed ").Name())
	assert.Equal(t, "console", GetFormatterByName("text").Name())
	assert.Nil(t, GetFormatterByName("pdf"))

	f, err := NewFormatter("html-report", SeriesFilter{StartYear: 2030})
	require.NoError(t, err)
	assert.Equal(t, HTMLFormatter{Filter: SeriesFilter{StartYear: 2030}}, f)

	_, err = NewFormatter("pdf", SeriesFilter{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorContains(t, err, "console, console-lite")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "static", F: func(*domain.ScenarioComparison) ([]byte, error) { return []byte("ok"), nil }}
	out, err := f.Format(nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, "static", f.Name())
}

// Formatting is deterministic: the same inputs give byte-identical reports.
func TestFormattersDeterministic(t *testing.T) {
	first, second := buildTestComparison(t), buildTestComparison(t)
	for _, f := range builtInFormatters {
		a, err := f.Format(first)
		require.NoError(t, err)
		b, err := f.Format(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), f.Name())
	}
}

func TestWriteFormatted(t *testing.T) {
	chdirForTest(t, t.TempDir())

	name, err := WriteFormatted(CSVSeriesExporter{}, buildTestComparison(t), "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "financial_health_report_"))
	assert.Equal(t, ".csv", filepath.Ext(name))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Scenario,Year,Amount"))
}
