package sdm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/fold"
)

func Test_warnings(t *testing.T) {
	tests := []struct {
		name  string
		pair  *Pair
		check StructureCheck
		want  []Warning
	}{
		{
			"clean",
			&Pair{},
			StructureCheck{ForwardHairpin: &fold.Structure{Energy: -1}, Heterodimer: &fold.Dimer{DG: -2}},
			nil,
		},
		{
			"hairpins",
			&Pair{},
			StructureCheck{ForwardHairpin: &fold.Structure{Energy: -4}, ReverseHairpin: &fold.Structure{Energy: -7}},
			[]Warning{
				{Kind: Hairpin, Severity: Caution, Message: "forward primer hairpin with ΔG -4.00 kcal/mol"},
				{Kind: Hairpin, Severity: Critical, Message: "reverse primer hairpin with ΔG -7.00 kcal/mol"},
			},
		},
		{
			"heterodimer",
			&Pair{},
			StructureCheck{Heterodimer: &fold.Dimer{DG: -8.5, LongestRun: 6}},
			[]Warning{
				{Kind: Heterodimer, Severity: Caution, Message: "primers form a dimer with ΔG -8.50 kcal/mol over 6 consecutive bases"},
			},
		},
		{
			"enrichment problems",
			&Pair{
				Forward: Primer{Enrichment: &Enrichment{OffTargets: ptr(2), GQuadruplex: G4High}},
				Reverse: Primer{Enrichment: &Enrichment{OffTargets: ptr(0), GQuadruplex: G4Moderate}},
			},
			StructureCheck{},
			[]Warning{
				{Kind: OffTarget, Severity: Caution, Message: "forward primer has 2 secondary binding sites"},
				{Kind: GQuadruplex, Severity: Critical, Message: "forward primer can form a G-quadruplex"},
				{Kind: GQuadruplex, Severity: Info, Message: "reverse primer has a GGGG run"},
			},
		},
		{
			"rescue and context",
			&Pair{Forward: Primer{IsRescue: true}, ContextPenalty: contextCost},
			StructureCheck{},
			[]Warning{
				{Kind: RescueMode, Severity: Caution, Message: "a primer's Tm is above the window, accepted under the 76 °C rescue ceiling"},
				{Kind: ContextIssue, Severity: Info, Message: "the split point sits in a repetitive, GC-rich or palindromic context"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, warnings(tt.pair, tt.check))
		})
	}
}

func TestDesigner_checkStructure(t *testing.T) {
	fwd := Primer{Sequence: "GCGCAAGCTTTTGCGCTTACCGA"}
	rev := Primer{Sequence: "TTCGGTAAGCAATGCAACGTTGA"}

	b2b := NewDesigner().checkStructure(&Pair{Forward: fwd, Reverse: rev, Strategy: config.BackToBack})
	assert.NotNil(t, b2b.Heterodimer)
	assert.NotNil(t, b2b.ForwardHairpin, "GCGC...GCGC folds")

	overlapping := NewDesigner().checkStructure(&Pair{Forward: fwd, Reverse: rev, Strategy: config.Overlapping})
	assert.Nil(t, overlapping.Heterodimer)
}
