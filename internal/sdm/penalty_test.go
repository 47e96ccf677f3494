package sdm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jjtimmons/sdm/config"
)

func Test_cheapPenalty(t *testing.T) {
	c := config.Defaults()
	ideal := Primer{Tm: 62, GC: 50, Length: 22}

	tests := []struct {
		name string
		fwd  Primer
		rev  Primer
		ctx  float64
		want float64
	}{
		{"ideal pair", ideal, ideal, 0, 0},
		{"inside the Tm dead zone", ideal, Primer{Tm: 62.8, GC: 50, Length: 22}, 0, 0},
		{"Tm mismatch", ideal, Primer{Tm: 65, GC: 50, Length: 22}, 0, 8},
		{"below the Tm floor", Primer{Tm: 54, GC: 50, Length: 22}, Primer{Tm: 54, GC: 50, Length: 22}, 0, 20},
		{"above the Tm ceiling", Primer{Tm: 73, GC: 50, Length: 22}, Primer{Tm: 73, GC: 50, Length: 22}, 0, 16},
		{"long primer", Primer{Tm: 62, GC: 50, Length: 30}, ideal, 0, 3},
		{"GC rich", Primer{Tm: 62, GC: 70, Length: 22}, ideal, 0, 11},
		{"AT rich", Primer{Tm: 62, GC: 30, Length: 22}, ideal, 0, 8.2},
		{"bad context", ideal, ideal, contextCost, contextCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPair(tt.fwd, tt.rev, config.BackToBack, 0)
			p.ContextPenalty = tt.ctx
			assert.InDelta(t, tt.want, cheapPenalty(p, c), 0.01)
		})
	}
}

func Test_cheapPenalty_GCRichWorse(t *testing.T) {
	c := config.Defaults()
	ideal := Primer{Tm: 62, GC: 50, Length: 22}
	rich := newPair(Primer{Tm: 62, GC: 65, Length: 22}, ideal, config.BackToBack, 0)
	poor := newPair(Primer{Tm: 62, GC: 35, Length: 22}, ideal, config.BackToBack, 0)

	assert.Greater(t, cheapPenalty(rich, c), cheapPenalty(poor, c))
}

func Test_contextPenalty(t *testing.T) {
	tests := []struct {
		name  string
		seq   string
		split int
		want  float64
	}{
		{"clean", "ACGTTGCAAGCTGACCTGAATCAG", 12, 0},
		{"homopolymer", "ACGTTGCAAAAAGACCTGAATCAG", 10, contextCost},
		{"dinucleotide repeat", "ACGTTGCATATATGACCTGAATCAG", 10, contextCost},
		{"GC rich", "ACGTTGGCGCCGCGGCCTGAATCAG", 12, contextCost},
		{"short", "ACGT", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contextPenalty(tt.seq, tt.split))
		})
	}
}

func Test_homopolymer(t *testing.T) {
	assert.Equal(t, 0, homopolymer(""))
	assert.Equal(t, 1, homopolymer("ACGT"))
	assert.Equal(t, 4, homopolymer("ACCCCGTT"))
}

func Test_dinucleotideRepeat(t *testing.T) {
	assert.Equal(t, 1, dinucleotideRepeat("ACGT"))
	assert.Equal(t, 3, dinucleotideRepeat("GATATATC"))
	assert.Equal(t, 0, dinucleotideRepeat("AAAA"))
}

func Test_hasPalindrome(t *testing.T) {
	assert.True(t, hasPalindrome("TTGAATTCTT", 6)) // EcoRI
	assert.False(t, hasPalindrome("AAGGTCCTTG", 6))
}
