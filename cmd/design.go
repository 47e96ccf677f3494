package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/sdm"
	"github.com/jjtimmons/sdm/internal/seq"
)

var (
	designFile   string
	designOutput string
)

// designCmd designs a primer pair for a single mutation.
var designCmd = &cobra.Command{
	Use:   "design [sequence] [mutation]",
	Short: "Design a primer pair that introduces a mutation",
	Long: `Design a primer pair that introduces a mutation into a template.

Mutations are written type:position:payload with 0-based positions:

  sub:40:G      substitute the base at 40 with G (or several bases, sub:40:GA)
  ins:40:GGC    insert GGC before position 40
  del:40:6      delete 6 bases starting at 40
  codon:120:K   change the codon starting at 120 to one encoding lysine

Every pair of primers at five split points around the mutation is scored with
a cheap penalty, the best are checked for hairpins, off-target binding and
mismatch Tm, and the winner comes from the best non-empty quality tier:
excellent, good, acceptable or poor.

If no back-to-back pair fits the settings, overlapping primers are tried. If
nothing fits either, the error explains which constraints failed and what to
relax.`,
	Example: `  sdm design ATGGCTAGCAAAGGAGAAGAACTTTTCACTGGAGTTGTCCCAATTCTTGTTGAATTAGATGGT sub:30:G
  sdm design --file pUC19.gb codon:150:K --output yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDesign,
}

func runDesign(cmd *cobra.Command, args []string) error {
	conf, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	sequence, mutation, circular, err := designArgs(args)
	if err != nil {
		return err
	}

	t, err := sdm.NewTemplate(sequence, conf.Circular || circular)
	if err != nil {
		return err
	}
	m, err := sdm.ParseMutation(mutation)
	if err != nil {
		return err
	}

	design, err := sdm.NewDesigner(sdm.WithLogger(logger)).Design(t, m, conf)
	if err != nil {
		return err
	}

	if designOutput == "text" {
		return renderDesign(cmd.OutOrStdout(), design)
	}
	return sdm.Write(cmd.OutOrStdout(), sdm.Format(designOutput), design)
}

// designArgs reads the template from --file or the first argument. A file's
// first record is used and it's circular if its header says so.
func designArgs(args []string) (sequence, mutation string, circular bool, err error) {
	if designFile != "" {
		if len(args) != 1 {
			return "", "", false, fmt.Errorf("expected just a mutation with --file, got %d arguments", len(args))
		}
		records, err := seq.Read(designFile)
		if err != nil {
			return "", "", false, err
		}
		if len(records) > 1 {
			logger.Info("using the first sequence in the file", zap.String("file", designFile), zap.String("id", records[0].ID))
		}
		return records[0].Seq, args[0], records[0].Circular, nil
	}

	if len(args) != 2 {
		return "", "", false, fmt.Errorf("expected a sequence and a mutation, got %d arguments", len(args))
	}
	return args[0], args[1], false, nil
}

func init() {
	RootCmd.AddCommand(designCmd)

	d := config.Defaults()
	flags := designCmd.Flags()

	flags.StringVarP(&designFile, "file", "f", "", "path to a FASTA or GenBank file with the template sequence")
	flags.StringVarP(&designOutput, "output", "o", "text", "output format: text, json or yaml")

	flags.Float64("min-tm", d.MinTm, "minimum primer Tm (°C)")
	flags.Float64("max-tm", d.MaxTm, "maximum primer Tm (°C)")
	flags.Float64("min-gc", d.MinGC, "minimum primer GC (%)")
	flags.Float64("max-gc", d.MaxGC, "maximum primer GC (%)")
	flags.Int("min-annealing-length", d.MinAnnealingLength, "minimum length of the part of a primer that anneals to the template")
	flags.Int("max-annealing-length", d.MaxAnnealingLength, "maximum length of the part of a primer that anneals to the template")
	flags.Int("min-primer-length", d.MinPrimerLength, "minimum primer length")
	flags.Int("max-primer-length", d.MaxPrimerLength, "maximum primer length")
	flags.StringP("strategy", "s", string(d.Strategy), "primer strategy: back-to-back or overlapping")
	flags.String("organism", d.Organism, "codon usage for codon changes: ecoli or human")
	flags.BoolP("circular", "c", d.Circular, "the template is circular")
	flags.Bool("confine-to-5-tails", d.ConfineTo5Tails, "apply the Tm window to the 3' annealing portion only")
	flags.Bool("gc-clamp", d.GCClampRequired, "require a G or C at each primer's 3' end")
	flags.Bool("check-off-targets", d.CheckOffTargets, "count secondary binding sites of the best pairs")
	flags.Bool("exhaustive", d.ExhaustiveSearch, "enrich the 100 cheapest pairs rather than 10")
	flags.Float64("primer-conc", d.Conditions.PrimerConc, "primer concentration (mol/L)")
	flags.Float64("na", d.Conditions.Na, "monovalent cation concentration (mol/L)")
	flags.Float64("mg", d.Conditions.Mg, "Mg2+ concentration (mol/L)")
	flags.Bool("dangling-ends", d.Conditions.DanglingEnds, "apply dangling end corrections to terminal mismatches")

	// Bind the parameters to viper
	for _, key := range config.Keys {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			stderr.Fatal(err)
		}
	}
}
