package handler

import (
	"net/http"
	"strconv"

	"github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/config"
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/internal/output"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HeaderRunID carries the id assigned to each projection run.
const HeaderRunID = "X-Run-ID"

// ProjectionHandler serves projections, reports and the default inputs.
// The engine and configuration are shared read-only across requests.
type ProjectionHandler struct {
	engine *calculation.ProjectionEngine
	config *domain.Configuration
	parser *config.InputParser
}

// NewProjectionHandler creates a new ProjectionHandler. Requests without
// parameters use cfg's baseline; reports include cfg's scenarios.
func NewProjectionHandler(engine *calculation.ProjectionEngine, cfg *domain.Configuration) *ProjectionHandler {
	return &ProjectionHandler{
		engine: engine,
		config: cfg,
		parser: config.NewInputParser(),
	}
}

// ParameterGroupResponse lists the parameter names of one input section
type ParameterGroupResponse struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// DefaultsResponse represents the default inputs API response
type DefaultsResponse struct {
	Parameters map[string]string        `json:"parameters"`
	Groups     []ParameterGroupResponse `json:"groups"`
}

// ProjectionResponse represents the projection API response
type ProjectionResponse struct {
	RunID                  string              `json:"runId"`
	StartYear              int                 `json:"startYear"`
	RetirementYear         int                 `json:"retirementYear"`
	RetirementCorpus       int64               `json:"retirementCorpus"`
	FinalExpense           int64               `json:"finalExpense"`
	YearsOfExpensesCovered string              `json:"yearsOfExpensesCovered"`
	Series                 []domain.Series     `json:"series"`
	Yearly                 []domain.YearDetail `json:"yearly"`
}

// GetDefaults handles GET /api/v1/defaults
func (h *ProjectionHandler) GetDefaults(c echo.Context) error {
	var groups []ParameterGroupResponse
	for _, f := range domain.ParameterFields() {
		if n := len(groups); n == 0 || groups[n-1].Name != string(f.Group) {
			groups = append(groups, ParameterGroupResponse{Name: string(f.Group)})
		}
		last := &groups[len(groups)-1]
		last.Fields = append(last.Fields, f.Name)
	}
	return c.JSON(http.StatusOK, DefaultsResponse{
		Parameters: h.config.Parameters.Values(),
		Groups:     groups,
	})
}

// GetProjection handles GET /api/v1/projection
// With no parameter names in the query the configured defaults are used;
// otherwise every parameter must be present. instruments, start_year and
// end_year narrow the returned series.
func (h *ProjectionHandler) GetProjection(c echo.Context) error {
	params, err := h.parameters(c)
	if err != nil {
		return respondError(c, err, "Failed to parse parameters")
	}
	filter, err := seriesFilter(c)
	if err != nil {
		return respondError(c, err, "Failed to parse filter")
	}

	runID := uuid.New()
	summary, err := h.engine.RunScenario(calculation.BaselineName, params)
	if err != nil {
		return respondError(c, err, "Failed to run projection")
	}
	proj := summary.Projection

	log.Debug().
		Str("run_id", runID.String()).
		Int("horizon", proj.Horizon).
		Int64("corpus", summary.RetirementCorpus).
		Msg("Projection computed")

	var yearly []domain.YearDetail
	for _, y := range proj.Yearly {
		if filter.InRange(y.Year) {
			yearly = append(yearly, y)
		}
	}

	c.Response().Header().Set(HeaderRunID, runID.String())
	return c.JSON(http.StatusOK, ProjectionResponse{
		RunID:                  runID.String(),
		StartYear:              proj.StartYear,
		RetirementYear:         summary.RetirementYear,
		RetirementCorpus:       summary.RetirementCorpus,
		FinalExpense:           summary.FinalExpense,
		YearsOfExpensesCovered: summary.YearsOfExpensesCovered.StringFixed(2),
		Series:                 filter.Apply(proj.Series()),
		Yearly:                 yearly,
	})
}

// GetReport handles GET /api/v1/report
// Renders the baseline and the configured scenarios in the requested format
// (html by default).
func (h *ProjectionHandler) GetReport(c echo.Context) error {
	params, err := h.parameters(c)
	if err != nil {
		return respondError(c, err, "Failed to parse parameters")
	}
	filter, err := seriesFilter(c)
	if err != nil {
		return respondError(c, err, "Failed to parse filter")
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "html"
	}
	f, err := output.NewFormatter(format, filter)
	if err != nil {
		return respondError(c, err, "Failed to create formatter")
	}

	cfg := &domain.Configuration{
		Regime:     h.config.Regime,
		Parameters: params,
		Scenarios:  h.config.Scenarios,
	}
	results, err := h.engine.RunScenarios(cfg)
	if err != nil {
		return respondError(c, err, "Failed to run scenarios")
	}

	data, err := f.Format(results)
	if err != nil {
		return respondError(c, err, "Failed to format report")
	}
	return c.Blob(http.StatusOK, output.ContentType(f), data)
}

func (h *ProjectionHandler) parameters(c echo.Context) (domain.Parameters, error) {
	values := c.QueryParams()
	if !h.parser.HasParameters(values) {
		return h.config.Parameters, nil
	}
	return h.parser.ParseForm(values)
}

// seriesFilter reads the instruments, start_year and end_year query values.
func seriesFilter(c echo.Context) (output.SeriesFilter, error) {
	labels, err := output.ParseLabels(c.QueryParam("instruments"))
	if err != nil {
		return output.SeriesFilter{}, err
	}
	filter := output.SeriesFilter{Labels: labels}

	for _, bound := range []struct {
		name string
		dst  *int
	}{{"start_year", &filter.StartYear}, {"end_year", &filter.EndYear}} {
		raw := c.QueryParam(bound.name)
		if raw == "" {
			continue
		}
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			return output.SeriesFilter{}, &domain.ParameterError{Field: bound.name, Value: raw, Err: domain.ErrInvalidParameter, Reason: "must be a valid year"}
		}
		*bound.dst = year
	}
	return filter, nil
}
