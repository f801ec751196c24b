package calculation

import (
	"fmt"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// ProjectionEngine simulates the savings corpus year by year until
// retirement. It is immutable after construction apart from its logger.
type ProjectionEngine struct {
	TaxCalc *TaxCalculator
	Logger  Logger
}

// NewProjectionEngine creates a projection engine taxing income under regime
func NewProjectionEngine(regime domain.TaxRegime) *ProjectionEngine {
	return &ProjectionEngine{
		TaxCalc: NewTaxCalculator(regime),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Project runs the simulation for params.Income.YearsTillRetirement years.
// Every series in the result has horizon+1 entries.
func (pe *ProjectionEngine) Project(params domain.Parameters) (*domain.Projection, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	horizon := params.Income.YearsTillRetirement
	startYear := nowFunc().Year()
	proj := newProjection(horizon, startYear)

	for _, inst := range domain.Instruments() {
		proj.Balances[inst][0] = params.Savings.Opening(inst)
	}
	proj.Total[0] = sumAt(proj, 0)

	annualExpense := 12 * params.Income.MonthlyFixedExpense
	proj.Expenses[0] = annualExpense

	pe.Logger.Debugf("projecting %d years from %d, opening corpus %s", horizon, startYear, money.FormatRupees(proj.Total[0]))

	for i := 0; i < horizon; i++ {
		detail := pe.step(params, proj, i)
		proj.Yearly[i] = detail
		proj.Expenses[i+1] = money.Compound(annualExpense, params.Rates.Inflation, i+1)
		proj.Total[i+1] = sumAt(proj, i+1)

		if detail.FDPlug() < 0 {
			pe.Logger.Debugf("year %d: expenses exceed disposable income, FD withdrawal %s", detail.Year, money.FormatRupees(-detail.FDPlug()))
		}
		if detail.PPFMatured {
			pe.Logger.Debugf("year %d: PPF matured, %s moved to FD", detail.Year, money.FormatRupees(detail.PPFMaturityAmt))
		}
	}

	pe.Logger.Infof("projection complete: corpus at %d is %s", proj.RetirementYear(), money.FormatRupees(proj.FinalTotal()))
	return proj, nil
}

// step simulates year i: contributions, tax, the FD plug and the year-end
// balances written at index i+1.
func (pe *ProjectionEngine) step(params domain.Parameters, proj *domain.Projection, i int) domain.YearDetail {
	rates := params.Rates
	income := params.Income

	basic := money.Compound(income.AnnualBasic, rates.IncomeGrowth, i)
	employerPF := money.PercentOf(basic, params.BasicPct.EmployerPF)
	employeePF := money.PercentOf(basic, params.BasicPct.EmployeePF)

	var contrib [domain.NumInstruments]int64
	contrib[domain.NPS] = money.PercentOf(basic, params.BasicPct.NPS)
	contrib[domain.PF] = employerPF + employeePF
	contrib[domain.MF] = money.Compound(params.Contributions.MF, rates.MFStepUp, i)
	contrib[domain.Equity] = money.Compound(params.Contributions.Equity, rates.EquityStepUp, i)
	if i < income.PPFInstallmentsLeft {
		contrib[domain.PPF] = params.Contributions.PPF
	}

	grossIncome := money.Compound(income.AnnualIncome, rates.IncomeGrowth, i)
	tax := pe.TaxCalc.Compute(grossIncome, employerPF, income.Deductions80C, contrib[domain.NPS])
	expense := money.Compound(12*income.MonthlyFixedExpense, rates.Inflation, i)

	// Whatever is left after expenses and the other contributions lands in FD.
	contrib[domain.FD] = tax.AfterTaxIncome - expense -
		contrib[domain.NPS] - contrib[domain.PF] - contrib[domain.MF] -
		contrib[domain.Equity] - contrib[domain.PPF]

	for _, inst := range domain.Instruments() {
		proj.Balances[inst][i+1] = yearEnd(proj.Balances[inst][i], rates.ReturnRate(inst), contrib[inst])
	}

	detail := domain.YearDetail{
		Index:         i,
		Year:          proj.Years[i],
		Basic:         basic,
		Income:        grossIncome,
		Tax:           tax,
		Expense:       expense,
		EmployerPF:    employerPF,
		EmployeePF:    employeePF,
		Contributions: contrib,
	}

	if i == income.PPFInstallmentsLeft-1 {
		matured := proj.Balances[domain.PPF][i+1]
		proj.Balances[domain.FD][i+1] += matured
		proj.Balances[domain.PPF][i+1] = 0
		detail.PPFMatured = true
		detail.PPFMaturityAmt = matured
	}
	return detail
}

// yearEnd grows balance for one year and adds the year's contribution.
func yearEnd(balance int64, ratePct decimal.Decimal, contribution int64) int64 {
	return money.Compound(balance, ratePct, 1) + contribution
}

func newProjection(horizon, startYear int) *domain.Projection {
	n := horizon + 1
	proj := &domain.Projection{
		Horizon:   horizon,
		StartYear: startYear,
		Years:     make([]int, n),
		Total:     make([]int64, n),
		Expenses:  make([]int64, n),
		Yearly:    make([]domain.YearDetail, horizon),
	}
	for i := range proj.Years {
		proj.Years[i] = startYear + i
	}
	for inst := range proj.Balances {
		proj.Balances[inst] = make([]int64, n)
	}
	return proj
}

func sumAt(proj *domain.Projection, idx int) int64 {
	var total int64
	for inst := range proj.Balances {
		total += proj.Balances[inst][idx]
	}
	return total
}
