package cli

import (
	"errors"

	"github.com/fhcalc/financial-health-calculator/internal/config"
	"github.com/spf13/cobra"
)

func newCompareCommand(opts *rootOptions) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the baseline with the what-if scenarios of a configuration file",
		Example: `  fhcalc compare -c fhcalc.yaml
  fhcalc compare -c fhcalc.yaml --set inflation_rate=6 -f detailed-csv -o compare.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configFile == "" {
				return errors.New("compare needs a configuration file with scenarios (--config)")
			}
			cfg, err := loadConfiguration(opts.configFile)
			if err != nil {
				return err
			}
			if len(cfg.Scenarios) == 0 {
				return errors.New("configuration has no scenarios to compare")
			}
			parser := config.NewInputParser()
			if err := parser.ApplyOverrides(cfg, flags.overrides); err != nil {
				return err
			}
			if err := parser.ValidateConfiguration(cfg); err != nil {
				return err
			}

			engine, err := opts.newEngine(cfg)
			if err != nil {
				return err
			}
			results, err := engine.RunScenarios(cfg)
			if err != nil {
				return err
			}
			return flags.render(cmd.OutOrStdout(), results)
		},
	}
	flags.register(cmd)
	return cmd
}
