// Package cli implements the fhcalc command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/config"
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/fhcalc/financial-health-calculator/internal/logging"
	"github.com/fhcalc/financial-health-calculator/internal/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
	logger     zerolog.Logger
}

// NewRootCommand builds the fhcalc command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "fhcalc",
		Short:         "Project a multi-instrument savings corpus until retirement",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.Setup(logging.Options{Level: opts.logLevel, Out: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file (defaults are used when omitted)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newProjectCommand(opts),
		newCompareCommand(opts),
		newTaxCommand(opts),
		newServeCommand(opts),
		newInitConfigCommand(),
	)
	return root
}

// Execute runs the root command and reports any error on stderr.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadConfiguration reads path, or returns the defaults when path is empty.
func loadConfiguration(path string) (*domain.Configuration, error) {
	if path == "" {
		return domain.DefaultConfiguration(), nil
	}
	return config.NewInputParser().LoadFromFile(path)
}

func (o *rootOptions) newEngine(cfg *domain.Configuration) (*calculation.ProjectionEngine, error) {
	engine, err := calculation.NewProjectionEngineForConfig(cfg)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logging.NewEngineLogger(o.logger, "projection"))
	return engine, nil
}

// reportFlags are shared by the commands that render a comparison.
type reportFlags struct {
	overrides   []string
	format      string
	outputFile  string
	instruments string
	from, to    int
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.overrides, "set", nil, "override a parameter, name=value (repeatable)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "console", "output format: console, console-lite, csv, detailed-csv, json, html")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&f.instruments, "instruments", "", "comma-separated series labels to include (default all)")
	cmd.Flags().IntVar(&f.from, "from", 0, "first calendar year to include")
	cmd.Flags().IntVar(&f.to, "to", 0, "last calendar year to include")
}

func (f *reportFlags) filter() (output.SeriesFilter, error) {
	labels, err := output.ParseLabels(f.instruments)
	if err != nil {
		return output.SeriesFilter{}, err
	}
	return output.SeriesFilter{Labels: labels, StartYear: f.from, EndYear: f.to}, nil
}

// render writes results to the output file or to out.
func (f *reportFlags) render(out io.Writer, results *domain.ScenarioComparison) error {
	filter, err := f.filter()
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(f.format, filter)
	if err != nil {
		return err
	}
	data, err := formatter.Format(results)
	if err != nil {
		return fmt.Errorf("format %s report: %w", formatter.Name(), err)
	}

	if f.outputFile == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(f.outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", f.outputFile, err)
	}
	fmt.Fprintf(out, "Report written to %s\n", f.outputFile)
	return nil
}
