package output_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "₹1,23,457", output.FormatCurrency(decimal.RequireFromString("123456.5")))
	assert.Equal(t, "-₹2,50,000", output.FormatRupees(-250000))
	assert.Equal(t, "12.34%", output.FormatPercentage(decimal.NewFromFloat(12.34)))
}

func TestFileExtensionAndContentType(t *testing.T) {
	tests := []struct {
		format, ext, contentType string
	}{
		{"console", "txt", "text/plain; charset=utf-8"},
		{"console-lite", "txt", "text/plain; charset=utf-8"},
		{"csv", "csv", "text/csv; charset=utf-8"},
		{"detailed-csv", "csv", "text/csv; charset=utf-8"},
		{"html", "html", "text/html; charset=utf-8"},
		{"json", "json", "application/json"},
	}
	for _, tt := range tests {
		f := output.GetFormatterByName(tt.format)
		require.NotNil(t, f, tt.format)
		assert.Equal(t, tt.ext, output.FileExtension(f), tt.format)
		assert.Equal(t, tt.contentType, output.ContentType(f), tt.format)
	}
}

func emptyComparison() *domain.ScenarioComparison {
	return &domain.ScenarioComparison{Baseline: domain.ScenarioSummary{Name: "Baseline"}}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteReport(&buf, emptyComparison(), "json-pretty", output.SeriesFilter{}))
	assert.Contains(t, buf.String(), `"best_scenario": ""`)

	err := output.WriteReport(&buf, emptyComparison(), "xlsx", output.SeriesFilter{})
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}

func TestGenerateReport(t *testing.T) {
	chdirForExternalTest(t, t.TempDir())

	name, err := output.GenerateReport(emptyComparison(), "console-lite", output.SeriesFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".txt"))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "FINANCIAL HEALTH SUMMARY"))

	_, err = output.GenerateReport(emptyComparison(), "pdf", output.SeriesFilter{})
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}
