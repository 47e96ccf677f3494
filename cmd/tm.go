package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/sdm"
	"github.com/jjtimmons/sdm/internal/thermo"
)

var tmOutput string

// tmCmd reports the mismatch-aware Tm of a primer against a template window.
var tmCmd = &cobra.Command{
	Use:   "tm [primer] [template]",
	Short: "Calculate the Tm of a primer, optionally against a mismatched template",
	Long: `Calculate the nearest-neighbor Tm of a primer.

With a template, the primer is annealed to the complement of the template,
which must be the same length and written 5' to 3' like the primer. Every
mismatch, its position relative to the 3' end and the thermodynamic breakdown
are reported.

Reaction conditions come from the settings file and SDM_ environment
variables (SDM_NA, SDM_MG, SDM_PRIMER_CONC, SDM_DANGLING_ENDS).`,
	Example: `  sdm tm ACGTTGCAAGCTGACCTGAA
  sdm tm ACGTTGCAAGCTGACCTGAA ACGTTGCAAGGTGACCTGAA --output json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		template := args[0]
		if len(args) == 2 {
			template = args[1]
		}
		result, err := thermo.MismatchTm(args[0], template, conf.Conditions)
		if err != nil {
			return err
		}

		if tmOutput != "text" {
			return sdm.Write(cmd.OutOrStdout(), sdm.Format(tmOutput), result)
		}

		var b strings.Builder
		if result.WillNotBind {
			fmt.Fprintf(&b, "%s\n", tierStyles[sdm.Poor].Render("will not bind"))
		} else {
			fmt.Fprintf(&b, "%s %.1f °C\n", headingStyle.Render("Tm"), result.Tm)
		}
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("ΔH %.1f kcal/mol, ΔS %.1f cal/(K·mol), %s salt correction",
			result.DH, result.DS, result.SaltModel)))

		if len(result.Mismatches) > 0 {
			tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "\nposition\tprimer\ttemplate\tterminal\t3' proximal")
			for _, m := range result.Mismatches {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%t\n", m.Position, m.PrimerBase, m.TemplateBase, m.IsTerminal, m.Is3PrimeProximal)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
		return err
	},
}

func init() {
	RootCmd.AddCommand(tmCmd)

	tmCmd.Flags().StringVarP(&tmOutput, "output", "o", "text", "output format: text, json or yaml")
}
