package output

import (
	"io"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
)

// FileExtension is the file extension used when a formatter's output is saved.
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "console", "console-lite":
		return "txt"
	case "detailed-csv":
		return "csv"
	}
	return f.Name()
}

// ContentType is the MIME type of a formatter's output.
func ContentType(f Formatter) string {
	switch f.Name() {
	case "csv", "detailed-csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "json":
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// GenerateReport formats results in the named format and writes them to a
// timestamped file in the working directory, returning the file name.
func GenerateReport(results *domain.ScenarioComparison, format string, filter SeriesFilter) (string, error) {
	f, err := NewFormatter(format, filter)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, results, FileExtension(f))
}

// WriteReport formats results in the named format and writes them to w.
func WriteReport(w io.Writer, results *domain.ScenarioComparison, format string, filter SeriesFilter) error {
	f, err := NewFormatter(format, filter)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
