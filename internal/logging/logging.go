// Package logging configures zerolog for the CLI and HTTP server and adapts
// it to the calculation engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls global logger setup
type Options struct {
	Level      string // debug, info, warn, error; empty means info
	Production bool   // JSON output when true, console writer otherwise
	Out        io.Writer
}

// Setup configures the global zerolog logger and returns it.
func Setup(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.Production {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger, nil
}

// EngineLogger adapts a zerolog.Logger to calculation.Logger.
type EngineLogger struct {
	logger zerolog.Logger
}

// NewEngineLogger wraps l, tagging every event with the given component.
func NewEngineLogger(l zerolog.Logger, component string) *EngineLogger {
	return &EngineLogger{logger: l.With().Str("component", component).Logger()}
}

func (e *EngineLogger) Debugf(format string, args ...any) { e.logger.Debug().Msgf(format, args...) }
func (e *EngineLogger) Infof(format string, args ...any)  { e.logger.Info().Msgf(format, args...) }
func (e *EngineLogger) Warnf(format string, args ...any)  { e.logger.Warn().Msgf(format, args...) }
func (e *EngineLogger) Errorf(format string, args ...any) { e.logger.Error().Msgf(format, args...) }
