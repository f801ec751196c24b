package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/config"
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/internal/handler"
	"github.com/fhcalc/financial-health-calculator/internal/logging"
	"github.com/fhcalc/financial-health-calculator/internal/middleware"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Long: `Serve projections over HTTP.

Settings come from the environment (or a .env file): PORT, ENV, LOG_LEVEL,
RATE_LIMIT_PER_MINUTE, RATE_LIMIT_BURST and FHCALC_CONFIG. --config takes
precedence over FHCALC_CONFIG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	srvCfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}
	logger, err := logging.Setup(logging.Options{Level: srvCfg.LogLevel, Production: srvCfg.IsProduction(), Out: os.Stderr})
	if err != nil {
		return err
	}

	path := opts.configFile
	if path == "" {
		path = srvCfg.ConfigFile
	}
	cfg, err := loadConfiguration(path)
	if err != nil {
		logger.Error().Err(err).Str("config", path).Msg("Failed to load configuration")
		return err
	}

	engine, err := calculation.NewProjectionEngineForConfig(cfg)
	if err != nil {
		return err
	}
	engine.SetLogger(logging.NewEngineLogger(logger, "projection"))

	rl := middleware.NewRateLimiterWithConfig(srvCfg.RateLimitPerMinute, srvCfg.RateLimitBurst)
	defer rl.Stop()

	e := newServer(engine, cfg, rl, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", srvCfg.Port).Int("scenarios", len(cfg.Scenarios)).Msg("Starting server")
		if err := e.Start(":" + srvCfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("Server failed")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	logger.Info().Msg("Server exited")
	return nil
}

// newServer wires middleware and routes. Rate limiting applies to the API
// group only so health checks are never throttled.
func newServer(engine *calculation.ProjectionEngine, cfg *domain.Configuration, rl *middleware.RateLimiter, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.Recover())

	handler.RegisterRoutes(e,
		handler.NewProjectionHandler(engine, cfg),
		handler.NewTaxHandler(engine.TaxCalc),
		middleware.RateLimitMiddleware(rl),
	)
	return e
}
