package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(filepath.Join("testdata", "example_config.yaml"))
	require.NoError(t, err)

	p := config.Parameters
	assert.Equal(t, int64(250000), p.Savings.NPS)
	assert.Equal(t, int64(1800000), p.Income.AnnualIncome)
	assert.Equal(t, 20, p.Income.YearsTillRetirement)
	assert.True(t, p.Rates.Inflation.Equal(decimal.RequireFromString("6.5")))
	assert.True(t, p.Rates.PPFReturn.Equal(decimal.RequireFromString("7.1")))

	// Omitted sections keep their defaults
	assert.True(t, p.Rates.NPSReturn.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(200000), p.Contributions.MF)
	assert.True(t, p.BasicPct.EmployerPF.Equal(decimal.NewFromInt(12)))

	assert.Len(t, config.Regime.Slabs, 3)
	assert.Len(t, config.Regime.Surcharge, 5)
	assert.True(t, config.Regime.CessRate.Equal(decimal.NewFromInt(4)))

	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, "Aggressive Equity", config.Scenarios[0].Name)
	assert.Equal(t, "120000", config.Scenarios[0].Overrides["equity_contribution"])
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoad_EmptyUsesDefaults(t *testing.T) {
	config, err := NewInputParser().Load(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultParameters().Values(), config.Parameters.Values())
	assert.Empty(t, config.Scenarios)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "parameters: [unclosed"},
		{name: "unknown field", yaml: "parameters:\n  rates:\n    inflaton_rate: 7\n"},
		{name: "fractional amount", yaml: "parameters:\n  income_and_expenses:\n    annual_income: 10.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewInputParser().Load([]byte(tt.yaml))
			assert.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "failed to parse YAML")
		})
	}
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(parser.CreateExampleConfiguration()))
}

func TestValidateConfiguration_InvalidHorizon(t *testing.T) {
	config := domain.DefaultConfiguration()
	config.Parameters.Income.YearsTillRetirement = 0

	err := NewInputParser().ValidateConfiguration(config)
	assert.ErrorIs(t, err, domain.ErrInvalidHorizon)
}

func TestValidateConfiguration_UnorderedRegime(t *testing.T) {
	yaml := "regime:\n  slabs:\n    - threshold: 250000\n      rate: 5\n    - threshold: 500000\n      rate: 20\n"
	_, err := NewInputParser().Load([]byte(yaml))
	assert.ErrorIs(t, err, domain.ErrInvalidRegime)
}

func TestValidateScenario_Errors(t *testing.T) {
	tests := []struct {
		name     string
		scenario domain.Scenario
		wantErr  error
		contains string
	}{
		{
			name:     "empty name",
			scenario: domain.Scenario{Overrides: map[string]string{"mf_ror": "9"}},
			contains: "scenario name is required",
		},
		{
			name:     "no overrides",
			scenario: domain.Scenario{Name: "Nothing"},
			contains: "no overrides",
		},
		{
			name:     "unknown field",
			scenario: domain.Scenario{Name: "Typo", Overrides: map[string]string{"mf_roi": "9"}},
			wantErr:  domain.ErrUnknownParameter,
		},
		{
			name:     "bad value",
			scenario: domain.Scenario{Name: "Bad", Overrides: map[string]string{"mf_ror": "nine"}},
			wantErr:  domain.ErrInvalidParameter,
		},
		{
			name:     "zero horizon",
			scenario: domain.Scenario{Name: "Now", Overrides: map[string]string{"years_till_retirement": "0"}},
			wantErr:  domain.ErrInvalidHorizon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := domain.DefaultConfiguration()
			config.Scenarios = []domain.Scenario{tt.scenario}

			err := NewInputParser().ValidateConfiguration(config)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateConfiguration_DuplicateScenario(t *testing.T) {
	config := domain.DefaultConfiguration()
	s := domain.Scenario{Name: "Same", Overrides: map[string]string{"mf_ror": "9"}}
	config.Scenarios = []domain.Scenario{s, s}

	err := NewInputParser().ValidateConfiguration(config)
	assert.ErrorContains(t, err, "duplicate name")
}

func TestParseForm(t *testing.T) {
	parser := NewInputParser()
	values := url.Values{}
	for name, v := range domain.DefaultParameters().Values() {
		values.Set(name, v)
	}
	values.Add("annual_income", "999")
	values.Set("instruments", "NPS,PF")

	params, err := parser.ParseForm(values)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), params.Income.AnnualIncome, "first value wins")

	values.Del("nps_ror")
	_, err = parser.ParseForm(values)
	assert.ErrorIs(t, err, domain.ErrMissingParameter)

	values.Set("nps_ror", "10")
	values.Set("years_till_retirement", "-2")
	_, err = parser.ParseForm(values)
	assert.ErrorIs(t, err, domain.ErrInvalidHorizon)
}

func TestHasParameters(t *testing.T) {
	parser := NewInputParser()
	assert.False(t, parser.HasParameters(url.Values{"instruments": {"NPS"}}))
	assert.True(t, parser.HasParameters(url.Values{"fd_ror": {"4"}}))
}

func TestApplyOverrides(t *testing.T) {
	parser := NewInputParser()
	config := domain.DefaultConfiguration()

	require.NoError(t, parser.ApplyOverrides(config, []string{"monthly_fixed_expense=40000", " inflation_rate =6"}))
	assert.Equal(t, int64(40000), config.Parameters.Income.MonthlyFixedExpense)
	assert.True(t, config.Parameters.Rates.Inflation.Equal(decimal.NewFromInt(6)))

	assert.Error(t, parser.ApplyOverrides(config, []string{"no-equals-sign"}))
	assert.ErrorIs(t, parser.ApplyOverrides(config, []string{"nope=1"}), domain.ErrUnknownParameter)
	assert.ErrorIs(t, parser.ApplyOverrides(config, []string{"years_till_retirement=0"}), domain.ErrInvalidHorizon)
	assert.Equal(t, 25, config.Parameters.Income.YearsTillRetirement, "failed overrides leave the config untouched")
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "fhcalc.yaml")

	require.NoError(t, parser.SaveConfiguration(config, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "80c_deductions")
	assert.Contains(t, string(data), "current_savings_by_instrument:")

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Parameters.Values(), loaded.Parameters.Values())
	assert.Len(t, loaded.Scenarios, len(config.Scenarios))
	assert.Len(t, loaded.Regime.Surcharge, 5)
}

func TestCreateExampleConfiguration(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()
	assert.NotEmpty(t, config.Scenarios)
	assert.Equal(t, domain.DefaultParameters().Values(), config.Parameters.Values())
}
