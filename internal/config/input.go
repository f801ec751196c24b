package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of configuration files and request parameters
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file. Sections or fields the
// file leaves out keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Load(data)
}

// Load parses YAML configuration bytes on top of the default configuration.
func (ip *InputParser) Load(data []byte) (*domain.Configuration, error) {
	config := domain.DefaultConfiguration()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Regime.Validate(); err != nil {
		return err
	}

	if err := config.Parameters.Validate(); err != nil {
		return fmt.Errorf("parameters validation failed: %w", err)
	}

	names := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(config.Parameters, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if names[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate name %q", i, scenario.Name)
		}
		names[scenario.Name] = true
	}

	return nil
}

// validateScenario checks that the overrides name real fields and produce
// runnable parameters.
func (ip *InputParser) validateScenario(base domain.Parameters, scenario *domain.Scenario) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(scenario.Overrides) == 0 {
		return fmt.Errorf("scenario %q has no overrides", scenario.Name)
	}
	params, err := scenario.Apply(base)
	if err != nil {
		return err
	}
	return params.Validate()
}

// ParseForm builds parameters from request values. Every parameter name must
// be present; other keys are ignored. Repeated keys use the first value.
func (ip *InputParser) ParseForm(values url.Values) (domain.Parameters, error) {
	flat := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			flat[key] = vals[0]
		}
	}
	params, err := domain.ParseParameters(flat)
	if err != nil {
		return domain.Parameters{}, err
	}
	if err := params.Validate(); err != nil {
		return domain.Parameters{}, err
	}
	return params, nil
}

// HasParameters reports whether values carries any parameter name.
func (ip *InputParser) HasParameters(values url.Values) bool {
	for _, f := range domain.ParameterFields() {
		if _, ok := values[f.Name]; ok {
			return true
		}
	}
	return false
}

// ApplyOverrides applies name=value assignments to the configuration's
// baseline parameters.
func (ip *InputParser) ApplyOverrides(config *domain.Configuration, assignments []string) error {
	overrides := make(map[string]string, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid override %q: expected name=value", a)
		}
		overrides[strings.TrimSpace(name)] = value
	}

	params, err := config.Parameters.With(overrides)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}
	config.Parameters = params
	return nil
}

// SaveConfiguration writes the configuration as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration with a few
// what-if scenarios
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	config := domain.DefaultConfiguration()
	config.Scenarios = []domain.Scenario{
		{
			Name:      "Step Up Equity",
			Overrides: map[string]string{"equity_contribution": "100000", "equity_step_up": "10"},
		},
		{
			Name:      "Retire Five Years Later",
			Overrides: map[string]string{"years_till_retirement": "30"},
		},
		{
			Name:      "High Inflation",
			Overrides: map[string]string{"inflation_rate": "9"},
		},
	}
	return config
}
