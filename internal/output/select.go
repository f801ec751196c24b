package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// ErrUnknownSeries is returned by ParseLabels for a name that is not a series label.
var ErrUnknownSeries = errors.New("unknown series")

// SeriesFilter selects which series and years a formatter renders.
// The zero value selects everything.
type SeriesFilter struct {
	Labels    []string
	StartYear int
	EndYear   int
}

// Apply returns the series selected by the filter.
func (f SeriesFilter) Apply(series []domain.Series) []domain.Series {
	return SelectSeries(series, f.Labels, f.StartYear, f.EndYear)
}

// InRange reports whether year falls inside the filter's year bounds.
func (f SeriesFilter) InRange(year int) bool {
	return inRange(year, f.StartYear, f.EndYear)
}

// SelectSeries keeps the series whose label is in labels (all of them when
// labels is empty) and, within each, the points with startYear <= year <=
// endYear. A zero bound is open. Labels match case-insensitively and the
// input order is preserved.
func SelectSeries(series []domain.Series, labels []string, startYear, endYear int) []domain.Series {
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[strings.ToLower(strings.TrimSpace(l))] = true
	}

	out := make([]domain.Series, 0, len(series))
	for _, s := range series {
		if len(want) > 0 && !want[strings.ToLower(s.Label)] {
			continue
		}
		points := make([]domain.Point, 0, len(s.Points))
		for _, p := range s.Points {
			if inRange(p.Year, startYear, endYear) {
				points = append(points, p)
			}
		}
		out = append(out, domain.Series{Label: s.Label, Points: points})
	}
	return out
}

func inRange(year, start, end int) bool {
	if start != 0 && year < start {
		return false
	}
	if end != 0 && year > end {
		return false
	}
	return true
}

// ParseLabels splits a comma-separated list of series labels and returns
// them in canonical spelling. An empty list selects every series.
func ParseLabels(list string) ([]string, error) {
	canonical := make(map[string]string)
	for _, l := range domain.SeriesLabels() {
		canonical[strings.ToLower(l)] = l
	}

	var labels []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		label, ok := canonical[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w %q (expected one of: %s)", ErrUnknownSeries, name, strings.Join(domain.SeriesLabels(), ", "))
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// tableRow is one year of a series table.
type tableRow struct {
	Year   int
	Values []int64
}

// seriesTable pivots year-aligned series into rows, one column per series.
func seriesTable(series []domain.Series) ([]string, []tableRow) {
	labels := make([]string, len(series))
	for i, s := range series {
		labels[i] = s.Label
	}
	if len(series) == 0 {
		return labels, nil
	}

	rows := make([]tableRow, len(series[0].Points))
	for r, p := range series[0].Points {
		rows[r] = tableRow{Year: p.Year, Values: make([]int64, len(series))}
		for c, s := range series {
			rows[r].Values[c] = s.Points[r].Amount
		}
	}
	return labels, rows
}
