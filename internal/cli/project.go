package cli

import (
	"github.com/fhcalc/financial-health-calculator/internal/config"
	"github.com/spf13/cobra"
)

func newProjectCommand(opts *rootOptions) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the baseline inputs year by year until retirement",
		Example: `  fhcalc project
  fhcalc project --set years_till_retirement=20 --set mf_ror=10 --format csv
  fhcalc project -c fhcalc.yaml --instruments "Total Savings,NPS" --from 2030 -f html -o report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(opts.configFile)
			if err != nil {
				return err
			}
			if err := config.NewInputParser().ApplyOverrides(cfg, flags.overrides); err != nil {
				return err
			}
			// Scenarios belong to compare.
			cfg.Scenarios = nil

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
