package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/internal/output"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://fhcalc.app/errors/validation"
	ErrorTypeInternal   = "https://fhcalc.app/errors/internal"
	ErrorTypeRateLimit  = "https://fhcalc.app/errors/rate-limit"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewRateLimitError creates a rate limit response asking the client to wait
// retryAfter seconds
func NewRateLimitError(c echo.Context, retryAfter int) error {
	return c.JSON(http.StatusTooManyRequests, ProblemDetails{
		Type:     ErrorTypeRateLimit,
		Title:    "Rate Limit Exceeded",
		Status:   http.StatusTooManyRequests,
		Detail:   fmt.Sprintf("Too many requests. Please retry after %d seconds.", retryAfter),
		Instance: c.Request().URL.Path,
	})
}

// respondError maps input errors to a 400 naming the offending field and
// anything else to a logged 500.
func respondError(c echo.Context, err error, msg string) error {
	var pe *domain.ParameterError
	switch {
	case errors.As(err, &pe):
		return NewValidationError(c, err.Error(), []ValidationError{{Field: pe.Field, Message: pe.Err.Error()}})
	case errors.Is(err, domain.ErrInvalidHorizon):
		return NewValidationError(c, err.Error(), []ValidationError{{Field: "years_till_retirement", Message: fmt.Sprintf("Must be between 1 and %d years", domain.MaxHorizon)}})
	case errors.Is(err, output.ErrUnknownSeries):
		return NewValidationError(c, err.Error(), []ValidationError{{Field: "instruments", Message: "Unknown series label"}})
	case errors.Is(err, output.ErrUnsupportedFormat):
		return NewValidationError(c, err.Error(), []ValidationError{{Field: "format", Message: "Unsupported format"}})
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(msg)
	return NewInternalError(c, msg)
}
