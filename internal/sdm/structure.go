package sdm

import (
	"fmt"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/fold"
)

const (
	// hairpinWarn and hairpinCritical are self-fold ΔG thresholds (kcal/mol)
	hairpinWarn     = -3.0
	hairpinCritical = -6.0

	// dimerWarn is the heterodimer ΔG (kcal/mol) that's flagged
	dimerWarn = -6.0
)

// StructureCheck is the secondary structure of a chosen pair.
type StructureCheck struct {
	ForwardHairpin *fold.Structure `json:"forwardHairpin,omitempty" yaml:"forwardHairpin,omitempty"`
	ReverseHairpin *fold.Structure `json:"reverseHairpin,omitempty" yaml:"reverseHairpin,omitempty"`

	// Heterodimer is unset for overlapping pairs, which are complementary by design
	Heterodimer *fold.Dimer `json:"heterodimer,omitempty" yaml:"heterodimer,omitempty"`
}

// checkStructure folds both primers of a pair and finds their best dimer.
func (d *Designer) checkStructure(p *Pair) StructureCheck {
	var check StructureCheck
	check.ForwardHairpin = d.hairpin(p.Forward.Sequence)
	check.ReverseHairpin = d.hairpin(p.Reverse.Sequence)
	if p.Strategy == config.BackToBack {
		dimer := fold.BestDimer(p.Forward.Sequence, p.Reverse.Sequence, foldTemp)
		check.Heterodimer = &dimer
	}
	return check
}

func (d *Designer) hairpin(s string) *fold.Structure {
	structures, err := d.folder.Fold(s, foldTemp)
	if err != nil || len(structures) == 0 {
		return nil
	}
	return &structures[0]
}

// warnings lists everything about a pair worth telling the user about.
func warnings(p *Pair, check StructureCheck) []Warning {
	var out []Warning

	for _, h := range []struct {
		name      string
		structure *fold.Structure
	}{{"forward", check.ForwardHairpin}, {"reverse", check.ReverseHairpin}} {
		if h.structure == nil || h.structure.Energy >= hairpinWarn {
			continue
		}
		severity := Caution
		if h.structure.Energy < hairpinCritical {
			severity = Critical
		}
		out = append(out, Warning{
			Kind:     Hairpin,
			Severity: severity,
			Message:  fmt.Sprintf("%s primer hairpin with ΔG %.2f kcal/mol", h.name, h.structure.Energy),
		})
	}

	if dimer := check.Heterodimer; dimer != nil && dimer.DG < dimerWarn {
		out = append(out, Warning{
			Kind:     Heterodimer,
			Severity: Caution,
			Message:  fmt.Sprintf("primers form a dimer with ΔG %.2f kcal/mol over %d consecutive bases", dimer.DG, dimer.LongestRun),
		})
	}

	for _, side := range []struct {
		name   string
		primer Primer
	}{{"forward", p.Forward}, {"reverse", p.Reverse}} {
		e := side.primer.Enrichment
		if e == nil {
			continue
		}
		if e.OffTargets != nil && *e.OffTargets > 0 {
			out = append(out, Warning{
				Kind:     OffTarget,
				Severity: Caution,
				Message:  fmt.Sprintf("%s primer has %d secondary binding sites", side.name, *e.OffTargets),
			})
		}
		switch e.GQuadruplex {
		case G4High:
			out = append(out, Warning{
				Kind:     GQuadruplex,
				Severity: Critical,
				Message:  fmt.Sprintf("%s primer can form a G-quadruplex", side.name),
			})
		case G4Moderate:
			out = append(out, Warning{
				Kind:     GQuadruplex,
				Severity: Info,
				Message:  fmt.Sprintf("%s primer has a GGGG run", side.name),
			})
		}
	}

	if p.rescue() {
		out = append(out, Warning{
			Kind:     RescueMode,
			Severity: Caution,
			Message:  fmt.Sprintf("a primer's Tm is above the window, accepted under the %.0f °C rescue ceiling", rescueCeiling),
		})
	}
	if p.ContextPenalty > 0 {
		out = append(out, Warning{
			Kind:     ContextIssue,
			Severity: Info,
			Message:  "the split point sits in a repetitive, GC-rich or palindromic context",
		})
	}
	return out
}
