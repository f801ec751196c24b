package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, projectionHandler *ProjectionHandler, taxHandler *TaxHandler, mw ...echo.MiddlewareFunc) {
	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API version 1
	api := e.Group("/api/v1", mw...)
	api.GET("/defaults", projectionHandler.GetDefaults)
	api.GET("/projection", projectionHandler.GetProjection)
	api.GET("/report", projectionHandler.GetReport)
	api.GET("/tax", taxHandler.GetTax)
}
