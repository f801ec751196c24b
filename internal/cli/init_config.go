package cli

import (
	"fmt"
	"os"

	"github.com/fhcalc/financial-health-calculator/internal/config"
	"github.com/fhcalc/financial-health-calculator/internal/domain"
	"github.com/spf13/cobra"
)

func newInitConfigCommand() *cobra.Command {
	var bare, force bool
	cmd := &cobra.Command{
		Use:   "init-config <file>",
		Short: "Write the default configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			parser := config.NewInputParser()
			cfg := parser.CreateExampleConfiguration()
			if bare {
				cfg = domain.DefaultConfiguration()
			}
			if err := parser.SaveConfiguration(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&bare, "bare", false, "omit the example scenarios")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
