package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/labstack/echo/v4"
)

// TaxHandler handles income-tax HTTP requests
type TaxHandler struct {
	calc *calculation.TaxCalculator
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(calc *calculation.TaxCalculator) *TaxHandler {
	return &TaxHandler{calc: calc}
}

// TaxResponse represents the tax computation API response
type TaxResponse struct {
	GrossIncome    int64  `json:"grossIncome"`
	TaxableIncome  int64  `json:"taxableIncome"`
	PrimaryTax     string `json:"primaryTax"`
	SurchargeRate  string `json:"surchargeRate"`
	SurchargedTax  string `json:"surchargedTax"`
	Cess           string `json:"cess"`
	TotalTax       string `json:"totalTax"`
	AfterTaxIncome int64  `json:"afterTaxIncome"`
}

// GetTax handles GET /api/v1/tax
// gross_income is required; employer_pf, deductions_80c and nps default to 0
// and must not be negative.
func (h *TaxHandler) GetTax(c echo.Context) error {
	var errs []ValidationError
	amount := func(name string, required, nonNegative bool) int64 {
		raw := strings.TrimSpace(c.QueryParam(name))
		if raw == "" {
			if required {
				errs = append(errs, ValidationError{Field: name, Message: "Required"})
			}
			return 0
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{Field: name, Message: "Must be a whole number"})
		case nonNegative && n < 0:
			errs = append(errs, ValidationError{Field: name, Message: "Must not be negative"})
		}
		return n
	}

	gross := amount("gross_income", true, false)
	employerPF := amount("employer_pf", false, true)
	deductions80C := amount("deductions_80c", false, true)
	nps := amount("nps", false, true)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid tax inputs", errs)
	}

	return c.JSON(http.StatusOK, toTaxResponse(h.calc.Compute(gross, employerPF, deductions80C, nps)))
}

func toTaxResponse(r domain.TaxResult) TaxResponse {
	return TaxResponse{
		GrossIncome:    r.GrossIncome,
		TaxableIncome:  r.TaxableIncome,
		PrimaryTax:     r.PrimaryTax.StringFixed(2),
		SurchargeRate:  r.SurchargeRate.StringFixed(2),
		SurchargedTax:  r.SurchargedTax.StringFixed(2),
		Cess:           r.Cess.StringFixed(2),
		TotalTax:       r.TotalTax.StringFixed(2),
		AfterTaxIncome: r.AfterTaxIncome,
	}
}
