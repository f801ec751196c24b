package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fhcalc/financial-health-calculator/internal/calculation"
	"github.com/fhcalc/financial-health-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newTaxCommand(opts *rootOptions) *cobra.Command {
	var (
		income, employerPF, deductions80C, nps int64
		asJSON                                 bool
	)
	cmd := &cobra.Command{
		Use:     "tax",
		Short:   "Compute income tax with surcharge, marginal relief and cess",
		Example: `  fhcalc tax --income 5000100 --80c 150000 --nps 50000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfiguration(opts.configFile)
			if err != nil {
				return err
			}
			result := calculation.NewTaxCalculator(cfg.Regime).Compute(income, employerPF, deductions80C, nps)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "Gross income:     %s\n", output.FormatRupees(result.GrossIncome))
			fmt.Fprintf(out, "Taxable income:   %s\n", output.FormatRupees(result.TaxableIncome))
			fmt.Fprintf(out, "Slab tax:         %s\n", output.FormatCurrency(result.PrimaryTax))
			fmt.Fprintf(out, "Surcharge rate:   %s\n", output.FormatPercentage(result.SurchargeRate))
			fmt.Fprintf(out, "After surcharge:  %s\n", output.FormatCurrency(result.SurchargedTax))
			fmt.Fprintf(out, "Cess:             %s\n", output.FormatCurrency(result.Cess))
			fmt.Fprintf(out, "Total tax:        %s\n", output.FormatCurrency(result.TotalTax))
			fmt.Fprintf(out, "After-tax income: %s\n", output.FormatRupees(result.AfterTaxIncome))
			return nil
		},
	}
	cmd.Flags().Int64Var(&income, "income", 0, "gross annual income")
	cmd.Flags().Int64Var(&employerPF, "employer-pf", 0, "employer PF contribution")
	cmd.Flags().Int64Var(&deductions80C, "80c", 0, "declared 80C deductions")
	cmd.Flags().Int64Var(&nps, "nps", 0, "declared NPS contribution")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
