package domain

import (
	"github.com/shopspring/decimal"
)

// Instrument identifies one savings instrument tracked by the projection.
type Instrument int

const (
	NPS Instrument = iota
	PF
	PPF
	MF
	Equity
	FD
	Savings
	OtherSavings

	NumInstruments = 8
)

var instrumentKeys = [NumInstruments]string{
	"nps_corpus", "pf_corpus", "ppf_corpus", "mf_corpus",
	"equity_corpus", "fd_corpus", "savings_corpus", "other_savings_corpus",
}

var instrumentLabels = [NumInstruments]string{
	"NPS", "PF", "PPF", "MF", "Equity", "FD", "Savings", "Other Savings",
}

// Series labels that are not instruments
const (
	LabelTotalSavings     = "Total Savings"
	LabelNextYearExpenses = "Next Year's Expenses"
)

// Instruments returns all instruments in display order.
func Instruments() []Instrument {
	out := make([]Instrument, NumInstruments)
	for i := range out {
		out[i] = Instrument(i)
	}
	return out
}

// Key is the parameter name of the instrument's opening balance.
func (i Instrument) Key() string { return instrumentKeys[i] }

// Label is the human-readable series label.
func (i Instrument) Label() string { return instrumentLabels[i] }

func (i Instrument) String() string { return i.Label() }

// Opening returns the opening balance of inst.
func (b OpeningBalances) Opening(inst Instrument) int64 {
	switch inst {
	case NPS:
		return b.NPS
	case PF:
		return b.PF
	case PPF:
		return b.PPF
	case MF:
		return b.MF
	case Equity:
		return b.Equity
	case FD:
		return b.FD
	case Savings:
		return b.Savings
	default:
		return b.OtherSavings
	}
}

// ReturnRate returns the annual rate of return (percent) of inst.
func (r Rates) ReturnRate(inst Instrument) decimal.Decimal {
	switch inst {
	case NPS:
		return r.NPSReturn
	case PF:
		return r.PFReturn
	case PPF:
		return r.PPFReturn
	case MF:
		return r.MFReturn
	case Equity:
		return r.EquityReturn
	case FD:
		return r.FDReturn
	case Savings:
		return r.SavingsReturn
	default:
		return r.OtherSavingsReturn
	}
}

// SeriesLabels lists every output series label in chart order.
func SeriesLabels() []string {
	labels := []string{LabelTotalSavings}
	for _, inst := range Instruments() {
		labels = append(labels, inst.Label())
	}
	return append(labels, LabelNextYearExpenses)
}

// TaxResult is one year's income-tax computation
type TaxResult struct {
	GrossIncome    int64           `json:"gross_income"`
	TaxableIncome  int64           `json:"taxable_income"`
	PrimaryTax     decimal.Decimal `json:"primary_tax"`
	SurchargeRate  decimal.Decimal `json:"surcharge_rate"`
	SurchargedTax  decimal.Decimal `json:"surcharged_tax"`
	Cess           decimal.Decimal `json:"cess"`
	TotalTax       decimal.Decimal `json:"total_income_tax"`
	AfterTaxIncome int64           `json:"after_tax_income"`
}

// YearDetail records the cash flows of one simulated year.
type YearDetail struct {
	Index          int                   `json:"index"`
	Year           int                   `json:"year"`
	Basic          int64                 `json:"basic"`
	Income         int64                 `json:"income"`
	Tax            TaxResult             `json:"tax"`
	Expense        int64                 `json:"expense"`
	EmployerPF     int64                 `json:"employer_pf"`
	EmployeePF     int64                 `json:"employee_pf"`
	Contributions  [NumInstruments]int64 `json:"contributions"` // FD entry is the residual plug
	PPFMatured     bool                  `json:"ppf_matured"`
	PPFMaturityAmt int64                 `json:"ppf_maturity_amount"`
}

// FDPlug is the residual cash flow into (or out of) FD for the year.
func (y YearDetail) FDPlug() int64 { return y.Contributions[FD] }

// TotalContributions sums every instrument contribution including the FD plug.
func (y YearDetail) TotalContributions() int64 {
	var sum int64
	for _, c := range y.Contributions {
		sum += c
	}
	return sum
}

// Projection is the year-indexed result of one run. Every series has
// Horizon+1 entries; index 0 is the opening position.
type Projection struct {
	Horizon   int                     `json:"horizon"`
	StartYear int                     `json:"start_year"`
	Years     []int                   `json:"years"`
	Balances  [NumInstruments][]int64 `json:"balances"`
	Total     []int64                 `json:"total_savings"`
	Expenses  []int64                 `json:"next_year_expenses"`
	Yearly    []YearDetail            `json:"yearly"`
}

// Balance returns the balance series of inst.
func (p *Projection) Balance(inst Instrument) []int64 {
	return p.Balances[inst]
}

// FinalTotal is the total savings corpus at retirement.
func (p *Projection) FinalTotal() int64 {
	return p.Total[len(p.Total)-1]
}

// FinalExpense is the projected expense for the first year after retirement.
func (p *Projection) FinalExpense() int64 {
	return p.Expenses[len(p.Expenses)-1]
}

// RetirementYear is the calendar year of the last index.
func (p *Projection) RetirementYear() int {
	return p.Years[len(p.Years)-1]
}

// Point is one (year, amount) observation.
type Point struct {
	Year   int   `json:"year"`
	Amount int64 `json:"amount"`
}

// Series is a labeled, year-ordered sequence of points.
type Series struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// Last returns the final point, or a zero Point for an empty series.
func (s Series) Last() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[len(s.Points)-1]
}

// Series returns all labeled series in chart order: total, the eight
// instruments, then next year's expenses. Expenses are not part of the total.
func (p *Projection) Series() []Series {
	out := make([]Series, 0, NumInstruments+2)
	out = append(out, p.series(LabelTotalSavings, p.Total))
	for _, inst := range Instruments() {
		out = append(out, p.series(inst.Label(), p.Balances[inst]))
	}
	return append(out, p.series(LabelNextYearExpenses, p.Expenses))
}

func (p *Projection) series(label string, values []int64) Series {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Year: p.Years[i], Amount: v}
	}
	return Series{Label: label, Points: points}
}
