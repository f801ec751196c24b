package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// ConsoleFormatter renders the detailed console report: assumptions, then
// every scenario's summary, yearly cash flows and savings by instrument.
type ConsoleFormatter struct {
	Filter SeriesFilter
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, "FINANCIAL HEALTH PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range sortedScenarios(results) {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		fmt.Fprintf(&buf, "Retirement corpus (%d):    %s\n", sc.RetirementYear, FormatRupees(sc.RetirementCorpus))
		fmt.Fprintf(&buf, "Next year's expenses:       %s\n", FormatRupees(sc.FinalExpense))
		fmt.Fprintf(&buf, "Years of expenses covered:  %s\n", sc.YearsOfExpensesCovered.StringFixed(2))
		if sc.CrossoverYear != 0 {
			fmt.Fprintf(&buf, "Ahead of baseline from:     %d\n", sc.CrossoverYear)
		}
		fmt.Fprintln(&buf)

		if sc.Projection != nil {
			fmt.Fprintln(&buf, "YEARLY CASH FLOWS:")
			if err := c.writeCashFlows(&buf, sc.Projection); err != nil {
				return nil, err
			}
			fmt.Fprintln(&buf)
			fmt.Fprintln(&buf, "SAVINGS BY INSTRUMENT:")
			if err := writeSeriesTable(&buf, c.Filter.Apply(sc.Projection.Series())); err != nil {
				return nil, err
			}
			fmt.Fprintln(&buf)
		}
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "Corpus change vs baseline: %s (%s)\n", FormatRupees(rec.CorpusChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeCashFlows(out io.Writer, proj *domain.Projection) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Year\tIncome\tTax\tExpense\tContributions\tFD Plug\tTotal Savings")
	for _, y := range proj.Yearly {
		if !c.Filter.InRange(y.Year) {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			y.Year,
			FormatRupees(y.Income),
			FormatCurrency(y.Tax.TotalTax),
			FormatRupees(y.Expense),
			FormatRupees(y.TotalContributions()-y.FDPlug()),
			FormatRupees(y.FDPlug()),
			FormatRupees(proj.Total[y.Index+1]),
		)
	}
	return tw.Flush()
}

func writeSeriesTable(out io.Writer, series []domain.Series) error {
	labels, rows := seriesTable(series)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Year\t%s\n", strings.Join(labels, "\t"))
	for _, r := range rows {
		cells := make([]string, len(r.Values))
		for i, v := range r.Values {
			cells[i] = FormatRupees(v)
		}
		fmt.Fprintf(tw, "%d\t%s\n", r.Year, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
