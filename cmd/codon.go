package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jjtimmons/sdm/internal/seq"
)

var codonOrganism string

// codonCmd shows which codon a codon change would use.
var codonCmd = &cobra.Command{
	Use:   "codon [codon] [amino-acid]",
	Short: "Choose the codon a codon change would use",
	Long: `Choose the codon for an amino acid that needs the fewest base changes
from the current codon. Ties go to the codon the organism uses most.`,
	Example: "  sdm codon GAA D --organism ecoli",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args[1]) != 1 {
			return fmt.Errorf("amino acid %q is not a single letter", args[1])
		}

		table := seq.CodonTable{}
		aa := strings.ToUpper(args[1])[0]
		chosen, err := table.Choose(args[0], aa, codonOrganism)
		if err != nil {
			return err
		}

		original := strings.ToUpper(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s (%d changes)\n",
			headingStyle.Render(string(aa)), original, chosen, seq.Hamming(original, chosen))
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", mutedStyle.Render("codons: "+strings.Join(table.Codons(aa), " ")))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(codonCmd)

	codonCmd.Flags().StringVar(&codonOrganism, "organism", "", "break ties with codon usage: "+strings.Join(seq.Organisms(), " or "))
}
