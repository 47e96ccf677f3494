package sdm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/seq"
)

// egfp is the first 243 bp of the EGFP coding sequence
const egfp = "ATGGTGAGCAAGGGCGAGGAGCTGTTCACCGGGGTGGTGCCCATCCTGGTCGAGCTGGACGGCGACGTAAACGGCCACAAGTTCAGCGTGTCCGGCGAGGGCGAGGGCGATGCCACCTACGGCAAGCTGACCCTGAAGTTCATCTGCACCACCGGCAAGCTGCCCGTGCCCTGGCCCACCCTCGTGACCACCCTGACCTACGGCGTGCAGTGCTTCAGCCGCTACCCCGACCACATGAAGCAG"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// arc is n bases of s starting at i, wrapping around the end
func arc(s string, i, n int) string {
	var b strings.Builder
	for k := 0; k < n; k++ {
		b.WriteByte(s[(i+k)%len(s)])
	}
	return b.String()
}

// assertBackToBack checks the geometry of a back-to-back pair in mutated
// sequence coordinates.
func assertBackToBack(t *testing.T, product string, p Pair) {
	t.Helper()
	n := len(product)

	assert.Equal(t, config.BackToBack, p.Strategy)
	assert.Equal(t, (p.Forward.Start-1+n)%n, p.Reverse.Start, "reverse 5' end abuts the forward 5' end")
	assert.Equal(t, arc(product, p.Forward.Start, p.Forward.Length), p.Forward.Sequence)
	assert.Equal(t, arc(product, p.Reverse.End, p.Reverse.Length), seq.ReverseComplement(p.Reverse.Sequence))
	assert.Equal(t, len(p.Forward.Sequence), p.Forward.Length)
	assert.Equal(t, len(p.Reverse.Sequence), p.Reverse.Length)
}

func TestDesigner_Design_Substitution(t *testing.T) {
	template := Template{Sequence: egfp}
	m := Mutation{Type: Substitution, Position: 90, Bases: "G"}

	design, err := NewDesigner().Design(template, m, config.Defaults())
	require.NoError(t, err)

	assertBackToBack(t, design.Mutated.Sequence, design.Pair)
	assert.LessOrEqual(t, design.TmDiff, 8.0)
	assert.NotEqual(t, Poor, design.Tier)

	// the forward primer carries the new base
	fwd := design.Forward
	require.LessOrEqual(t, fwd.Start, 90)
	require.Greater(t, fwd.Start+fwd.Length, 90)
	assert.Equal(t, byte('G'), fwd.Sequence[90-fwd.Start])

	// only the cheapest pairs are enriched, and the winner is one of them
	require.NotNil(t, design.Score)
	require.NotNil(t, fwd.Enrichment)
	require.NotNil(t, fwd.Enrichment.MismatchTm)
	assert.Equal(t, 1, fwd.Enrichment.MismatchTm.MismatchCount)
	assert.NotNil(t, design.Structure.Heterodimer)

	assert.Equal(t, "Q5 site-directed mutagenesis", design.Protocol.Name)
	assert.NotEmpty(t, design.Alternates)
	for _, alt := range design.Alternates {
		if alt.Strategy == config.BackToBack {
			assertBackToBack(t, design.Mutated.Sequence, *alt)
		}
	}
}

func TestDesigner_Design_Types(t *testing.T) {
	tests := []struct {
		name     string
		mutation Mutation
	}{
		{"insertion", Mutation{Type: Insertion, Position: 120, Bases: "GGATCC"}},
		{"deletion", Mutation{Type: Deletion, Position: 120, Length: 6}},
		{"codon change", Mutation{Type: CodonChange, Position: 63, AminoAcid: "E"}},
		{"multi base substitution", Mutation{Type: Substitution, Position: 150, Bases: "TAA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			design, err := NewDesigner().Design(Template{Sequence: egfp}, tt.mutation, config.Defaults())
			require.NoError(t, err)

			mut := design.Mutated
			assertBackToBack(t, mut.Sequence, design.Pair)

			// the forward primer spans the mutated region
			fwd := design.Forward
			assert.LessOrEqual(t, fwd.Start, mut.Start)
			assert.GreaterOrEqual(t, fwd.Start+fwd.Length, mut.End)

			switch tt.mutation.Type {
			case Deletion:
				assert.LessOrEqual(t, fwd.Start, mut.Start-minJunction, "deletion primers bind upstream of the junction")
				assert.Equal(t, len(egfp)-6, len(mut.Sequence))
			case Insertion:
				assert.Contains(t, fwd.Sequence, "GGATCC")
			case CodonChange:
				aa, ok := seq.AminoAcid(mut.Sequence[63:66])
				require.True(t, ok)
				assert.Equal(t, byte('E'), aa)
				assert.Equal(t, mut.Sequence[63:66], mut.Codon)
			}
		})
	}
}

func TestDesigner_Design_Overlapping(t *testing.T) {
	c := config.Defaults()
	c.Strategy = config.Overlapping
	m := Mutation{Type: Substitution, Position: 90, Bases: "G"}

	design, err := NewDesigner().Design(Template{Sequence: egfp}, m, c)
	require.NoError(t, err)

	assert.Equal(t, config.Overlapping, design.Strategy)
	assert.Equal(t, seq.ReverseComplement(design.Forward.Sequence), design.Reverse.Sequence)
	assert.Equal(t, design.Forward.End, design.Reverse.Start)
	assert.Equal(t, design.Forward.Start, design.Reverse.End)
	assert.Equal(t, design.Mutated.Sequence[design.Forward.Start:design.Forward.End+1], design.Forward.Sequence)

	// the mutation sits with at least minArm bases on either side
	assert.GreaterOrEqual(t, 90-design.Forward.Start, minArm-2)
	assert.GreaterOrEqual(t, design.Forward.End-90, minArm-2)

	assert.Nil(t, design.Structure.Heterodimer)
	assert.Equal(t, "QuikChange site-directed mutagenesis", design.Protocol.Name)
	assert.Equal(t, 12, design.Protocol.Cycles)
}

func TestDesigner_Design_Fallback(t *testing.T) {
	// too close to the 5' end for a back-to-back reverse primer
	m := Mutation{Type: Substitution, Position: 12, Bases: "T"}

	design, err := NewDesigner().Design(Template{Sequence: egfp}, m, config.Defaults())
	require.NoError(t, err)

	assert.Equal(t, config.Overlapping, design.Strategy)
	var kinds []WarningKind
	for _, w := range design.Warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Contains(t, kinds, StrategyFallback)
	for _, alt := range design.Alternates {
		assert.Equal(t, config.Overlapping, alt.Strategy)
	}
}

func TestDesigner_Design_Deterministic(t *testing.T) {
	m := Mutation{Type: Substitution, Position: 90, Bases: "G"}
	c := config.Defaults()

	first, err := NewDesigner().Design(Template{Sequence: egfp}, m, c)
	require.NoError(t, err)
	second, err := NewDesigner().Design(Template{Sequence: egfp}, m, c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.ID, second.ID)

	other, err := NewDesigner().Design(Template{Sequence: egfp}, Mutation{Type: Substitution, Position: 90, Bases: "A"}, c)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestDesigner_Design_CircularWrap(t *testing.T) {
	const plasmid = "GATTACAGCTAGCATCGATCGTACGATCGATGCTAGCTACGTAGCTAGCA"
	m := Mutation{Type: Substitution, Position: 2, Bases: "G"}
	c := config.Defaults()
	c.CheckOffTargets = false

	design, err := NewDesigner().Design(Template{Sequence: plasmid, Circular: true}, m, c)
	require.NoError(t, err)
	require.True(t, design.Circular)

	n := len(plasmid)
	for _, p := range []Primer{design.Forward, design.Reverse} {
		assert.True(t, p.Start >= 0 && p.Start < n, "start %d outside the plasmid", p.Start)
		assert.True(t, p.End >= 0 && p.End < n, "end %d outside the plasmid", p.End)
	}
	assertBackToBack(t, design.Mutated.Sequence, design.Pair)
	assert.Equal(t, byte('G'), design.Mutated.Sequence[2])
}

func TestDesigner_Design_DownstreamTooShort(t *testing.T) {
	// 5 bp downstream can't hold the shortest annealing region
	m := Mutation{Type: Substitution, Position: len(egfp) - 5, Bases: "T"}
	c := config.Defaults()
	template := Template{Sequence: egfp}

	_, err := NewDesigner().Design(template, m, c)
	require.Error(t, err)
	assert.True(t, IsNoCandidate(err))

	var noCandidate *NoCandidateError
	require.True(t, errors.As(err, &noCandidate))
	d := noCandidate.Diagnostics
	assert.Equal(t, config.BackToBack, d.Strategy)
	assert.True(t, d.FallbackTried)
	assert.Greater(t, d.ForwardRegionShort, 0)
	assert.Equal(t, 4, d.DownstreamAvailable)

	// both strategies' searches are counted
	mut, err := m.Apply(template, "")
	require.NoError(t, err)
	w := newWorking(template, mut, false, 0)
	_, b2b, err := NewDesigner().search(w, c, config.BackToBack, m.Type)
	require.NoError(t, err)
	_, overlapping, err := NewDesigner().search(w, c, config.Overlapping, m.Type)
	require.NoError(t, err)
	require.Greater(t, overlapping.PositionsExplored, 0)
	assert.Equal(t, b2b.PositionsExplored+overlapping.PositionsExplored, d.PositionsExplored)
	assert.Equal(t, b2b.ForwardRegionShort+overlapping.ForwardRegionShort, d.ForwardRegionShort)

	msg := noCandidate.Error()
	assert.Contains(t, msg, "Length issue")
	assert.Contains(t, msg, "minimum primer length")
	assert.Contains(t, msg, "design it as circular")
}

func TestDesigner_Design_InvalidInput(t *testing.T) {
	bad := config.Defaults()
	bad.MinTm = 80

	tests := []struct {
		name     string
		template Template
		mutation Mutation
		conf     config.Design
	}{
		{"invalid config", Template{Sequence: egfp}, Mutation{Type: Substitution, Position: 90, Bases: "G"}, bad},
		{"invalid template", Template{Sequence: "ACGU"}, Mutation{Type: Substitution, Position: 1, Bases: "G"}, config.Defaults()},
		{"position out of range", Template{Sequence: egfp}, Mutation{Type: Substitution, Position: 1000, Bases: "G"}, config.Defaults()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDesigner().Design(tt.template, tt.mutation, tt.conf)
			var inputErr *InputError
			assert.True(t, errors.As(err, &inputErr), "%v is not an InputError", err)
			assert.False(t, IsNoCandidate(err))
		})
	}
}
