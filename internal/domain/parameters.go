package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OpeningBalances holds the current value of every savings instrument.
type OpeningBalances struct {
	NPS          int64 `yaml:"nps_corpus" json:"nps_corpus"`
	PF           int64 `yaml:"pf_corpus" json:"pf_corpus"`
	PPF          int64 `yaml:"ppf_corpus" json:"ppf_corpus"`
	MF           int64 `yaml:"mf_corpus" json:"mf_corpus"`
	Equity       int64 `yaml:"equity_corpus" json:"equity_corpus"`
	FD           int64 `yaml:"fd_corpus" json:"fd_corpus"`
	Savings      int64 `yaml:"savings_corpus" json:"savings_corpus"`
	OtherSavings int64 `yaml:"other_savings_corpus" json:"other_savings_corpus"`
}

// BasicPctContributions are contributions expressed as a percentage of basic salary
type BasicPctContributions struct {
	NPS        decimal.Decimal `yaml:"nps_contribution" json:"nps_contribution"`
	EmployerPF decimal.Decimal `yaml:"employer_pf_contribution" json:"employer_pf_contribution"`
	EmployeePF decimal.Decimal `yaml:"employee_pf_contribution" json:"employee_pf_contribution"`
}

// YearlyContributions are flat first-year amounts; MF and equity step up every year.
type YearlyContributions struct {
	PPF    int64 `yaml:"ppf_contribution" json:"ppf_contribution"`
	MF     int64 `yaml:"mf_contribution" json:"mf_contribution"`
	Equity int64 `yaml:"equity_contribution" json:"equity_contribution"`
}

// IncomeAndExpenses holds income, expense and horizon inputs
type IncomeAndExpenses struct {
	AnnualIncome        int64 `yaml:"annual_income" json:"annual_income"`
	AnnualBasic         int64 `yaml:"annual_basic" json:"annual_basic"`
	MonthlyFixedExpense int64 `yaml:"monthly_fixed_expense" json:"monthly_fixed_expense"`
	YearsTillRetirement int   `yaml:"years_till_retirement" json:"years_till_retirement"`
	PPFInstallmentsLeft int   `yaml:"ppf_installments_left" json:"ppf_installments_left"`
	Deductions80C       int64 `yaml:"80c_deductions" json:"80c_deductions"`
}

// Rates are annual percentages (7.1 means 7.1%).
type Rates struct {
	Inflation          decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	IncomeGrowth       decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	NPSReturn          decimal.Decimal `yaml:"nps_ror" json:"nps_ror"`
	PFReturn           decimal.Decimal `yaml:"pf_ror" json:"pf_ror"`
	PPFReturn          decimal.Decimal `yaml:"ppf_ror" json:"ppf_ror"`
	MFReturn           decimal.Decimal `yaml:"mf_ror" json:"mf_ror"`
	EquityReturn       decimal.Decimal `yaml:"equity_ror" json:"equity_ror"`
	FDReturn           decimal.Decimal `yaml:"fd_ror" json:"fd_ror"`
	SavingsReturn      decimal.Decimal `yaml:"savings_ror" json:"savings_ror"`
	OtherSavingsReturn decimal.Decimal `yaml:"other_savings_ror" json:"other_savings_ror"`
	MFStepUp           decimal.Decimal `yaml:"mf_step_up" json:"mf_step_up"`
	EquityStepUp       decimal.Decimal `yaml:"equity_step_up" json:"equity_step_up"`
}

// Parameters is the complete typed input bundle for one projection run.
type Parameters struct {
	Savings       OpeningBalances       `yaml:"current_savings_by_instrument" json:"current_savings_by_instrument"`
	BasicPct      BasicPctContributions `yaml:"basic_pct_contributions" json:"basic_pct_contributions"`
	Contributions YearlyContributions   `yaml:"contributions" json:"contributions"`
	Income        IncomeAndExpenses     `yaml:"income_and_expenses" json:"income_and_expenses"`
	Rates         Rates                 `yaml:"rates" json:"rates"`
}

// DefaultParameters returns the reference inputs.
func DefaultParameters() Parameters {
	return Parameters{
		Savings: OpeningBalances{
			NPS:          100000,
			PF:           100000,
			PPF:          300000,
			MF:           500000,
			Equity:       500000,
			FD:           200000,
			Savings:      100000,
			OtherSavings: 5000,
		},
		BasicPct: BasicPctContributions{
			NPS:        decimal.NewFromInt(5),
			EmployerPF: decimal.NewFromInt(12),
			EmployeePF: decimal.NewFromInt(12),
		},
		Contributions: YearlyContributions{
			PPF:    150000,
			MF:     200000,
			Equity: 0,
		},
		Income: IncomeAndExpenses{
			AnnualIncome:        1000000,
			AnnualBasic:         400000,
			MonthlyFixedExpense: 30000,
			YearsTillRetirement: 25,
			PPFInstallmentsLeft: 10,
			Deductions80C:       150000,
		},
		Rates: Rates{
			Inflation:          decimal.NewFromInt(7),
			IncomeGrowth:       decimal.NewFromInt(3),
			NPSReturn:          decimal.NewFromInt(10),
			PFReturn:           decimal.NewFromInt(8),
			PPFReturn:          decimal.RequireFromString("7.1"),
			MFReturn:           decimal.NewFromInt(8),
			EquityReturn:       decimal.NewFromInt(8),
			FDReturn:           decimal.NewFromInt(4),
			SavingsReturn:      decimal.NewFromInt(3),
			OtherSavingsReturn: decimal.NewFromInt(3),
			MFStepUp:           decimal.NewFromInt(5),
			EquityStepUp:       decimal.NewFromInt(5),
		},
	}
}

// MaxHorizon is the longest projection, in years, that Validate accepts.
const MaxHorizon = 100

// Validate checks the constraints the engine relies on. Negative balances
// and rates are accepted as given.
func (p Parameters) Validate() error {
	if h := p.Income.YearsTillRetirement; h <= 0 || h > MaxHorizon {
		return fmt.Errorf("%w: years_till_retirement must be between 1 and %d, got %d", ErrInvalidHorizon, MaxHorizon, h)
	}
	if p.Income.PPFInstallmentsLeft < 0 {
		return invalid("ppf_installments_left", strconv.Itoa(p.Income.PPFInstallmentsLeft), "must not be negative")
	}
	return nil
}

// ParameterGroup names a logical input section.
type ParameterGroup string

const (
	GroupSavings       ParameterGroup = "Current Savings By Instrument"
	GroupBasicPct      ParameterGroup = "Contributions (% basic salary)"
	GroupContributions ParameterGroup = "Yearly Contributions"
	GroupIncome        ParameterGroup = "Income and Expenses"
	GroupRates         ParameterGroup = "Rates"
)

// FieldKind tells the boundary parser how to read a raw value.
type FieldKind int

const (
	KindAmount FieldKind = iota // whole rupees
	KindCount                   // whole number of years/installments
	KindRate                    // decimal percentage
)

// ParameterField binds an external parameter name to its slot in Parameters.
type ParameterField struct {
	Name   string
	Group  ParameterGroup
	Kind   FieldKind
	amount func(*Parameters) *int64
	count  func(*Parameters) *int
	rate   func(*Parameters) *decimal.Decimal
}

func amountField(name string, g ParameterGroup, f func(*Parameters) *int64) ParameterField {
	return ParameterField{Name: name, Group: g, Kind: KindAmount, amount: f}
}

func countField(name string, g ParameterGroup, f func(*Parameters) *int) ParameterField {
	return ParameterField{Name: name, Group: g, Kind: KindCount, count: f}
}

func rateField(name string, g ParameterGroup, f func(*Parameters) *decimal.Decimal) ParameterField {
	return ParameterField{Name: name, Group: g, Kind: KindRate, rate: f}
}

var parameterFields = []ParameterField{
	amountField("nps_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.NPS }),
	amountField("pf_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.PF }),
	amountField("ppf_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.PPF }),
	amountField("mf_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.MF }),
	amountField("equity_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.Equity }),
	amountField("fd_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.FD }),
	amountField("savings_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.Savings }),
	amountField("other_savings_corpus", GroupSavings, func(p *Parameters) *int64 { return &p.Savings.OtherSavings }),

	rateField("nps_contribution", GroupBasicPct, func(p *Parameters) *decimal.Decimal { return &p.BasicPct.NPS }),
	rateField("employer_pf_contribution", GroupBasicPct, func(p *Parameters) *decimal.Decimal { return &p.BasicPct.EmployerPF }),
	rateField("employee_pf_contribution", GroupBasicPct, func(p *Parameters) *decimal.Decimal { return &p.BasicPct.EmployeePF }),

	amountField("ppf_contribution", GroupContributions, func(p *Parameters) *int64 { return &p.Contributions.PPF }),
	amountField("mf_contribution", GroupContributions, func(p *Parameters) *int64 { return &p.Contributions.MF }),
	amountField("equity_contribution", GroupContributions, func(p *Parameters) *int64 { return &p.Contributions.Equity }),

	amountField("annual_income", GroupIncome, func(p *Parameters) *int64 { return &p.Income.AnnualIncome }),
	amountField("annual_basic", GroupIncome, func(p *Parameters) *int64 { return &p.Income.AnnualBasic }),
	amountField("monthly_fixed_expense", GroupIncome, func(p *Parameters) *int64 { return &p.Income.MonthlyFixedExpense }),
	countField("years_till_retirement", GroupIncome, func(p *Parameters) *int { return &p.Income.YearsTillRetirement }),
	countField("ppf_installments_left", GroupIncome, func(p *Parameters) *int { return &p.Income.PPFInstallmentsLeft }),
	amountField("80c_deductions", GroupIncome, func(p *Parameters) *int64 { return &p.Income.Deductions80C }),

	rateField("inflation_rate", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.Inflation }),
	rateField("income_growth_rate", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.IncomeGrowth }),
	rateField("nps_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.NPSReturn }),
	rateField("pf_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.PFReturn }),
	rateField("ppf_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.PPFReturn }),
	rateField("mf_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.MFReturn }),
	rateField("equity_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.EquityReturn }),
	rateField("fd_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.FDReturn }),
	rateField("savings_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.SavingsReturn }),
	rateField("other_savings_ror", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.OtherSavingsReturn }),
	rateField("mf_step_up", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.MFStepUp }),
	rateField("equity_step_up", GroupRates, func(p *Parameters) *decimal.Decimal { return &p.Rates.EquityStepUp }),
}

// ParameterFields returns every named input in display order.
func ParameterFields() []ParameterField {
	return append([]ParameterField(nil), parameterFields...)
}

// LookupField finds a field by its external name.
func LookupField(name string) (ParameterField, bool) {
	for _, f := range parameterFields {
		if f.Name == name {
			return f, true
		}
	}
	return ParameterField{}, false
}

// Set parses raw and stores it in p.
func (f ParameterField) Set(p *Parameters, raw string) error {
	v := strings.TrimSpace(raw)
	if v == "" {
		return missing(f.Name)
	}
	switch f.Kind {
	case KindRate:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return invalid(f.Name, raw, "not a number")
		}
		*f.rate(p) = d
	case KindAmount:
		n, err := parseWhole(v)
		if err != nil {
			return invalid(f.Name, raw, err.Error())
		}
		*f.amount(p) = n
	case KindCount:
		n, err := parseWhole(v)
		if err != nil {
			return invalid(f.Name, raw, err.Error())
		}
		if int64(int(n)) != n {
			return invalid(f.Name, raw, "out of range")
		}
		*f.count(p) = int(n)
	}
	return nil
}

// Get renders the current value of the field in p.
func (f ParameterField) Get(p Parameters) string {
	switch f.Kind {
	case KindRate:
		return f.rate(&p).String()
	case KindAmount:
		return strconv.FormatInt(*f.amount(&p), 10)
	default:
		return strconv.Itoa(*f.count(&p))
	}
}

// parseWhole accepts integers and whole-valued decimals such as "1000.0".
func parseWhole(v string) (int64, error) {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("must be a whole number")
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("out of range")
	}
	return d.IntPart(), nil
}

// ParseParameters builds a Parameters bundle from raw string values. Every
// named field must be present; keys that are not parameter names are ignored.
func ParseParameters(values map[string]string) (Parameters, error) {
	var p Parameters
	for _, f := range parameterFields {
		raw, ok := values[f.Name]
		if !ok {
			return Parameters{}, missing(f.Name)
		}
		if err := f.Set(&p, raw); err != nil {
			return Parameters{}, err
		}
	}
	return p, nil
}

// With returns a copy of p with the named fields replaced.
func (p Parameters) With(overrides map[string]string) (Parameters, error) {
	out := p
	for name, raw := range overrides {
		f, ok := LookupField(name)
		if !ok {
			return Parameters{}, &ParameterError{Field: name, Err: ErrUnknownParameter}
		}
		if err := f.Set(&out, raw); err != nil {
			return Parameters{}, err
		}
	}
	return out, nil
}

// Values flattens p into name -> raw string.
func (p Parameters) Values() map[string]string {
	out := make(map[string]string, len(parameterFields))
	for _, f := range parameterFields {
		out[f.Name] = f.Get(p)
	}
	return out
}
