package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeighted_Score(t *testing.T) {
	ideal := Features{
		TmDiff:      0,
		GCForward:   0.5,
		GCReverse:   0.5,
		LenForward:  22,
		LenReverse:  24,
		WorstFoldDG: -1,
		TerminalDG:  []float64{-8, -9},
	}

	tests := []struct {
		name   string
		mutate func(f *Features)
		want   float64
	}{
		{"ideal pair", func(f *Features) {}, 100},
		{"g-quadruplex removes its share", func(f *Features) { f.GQuadruplex = true }, 90},
		{"5 degree Tm difference", func(f *Features) { f.TmDiff = 5 }, 87.5},
		{"one off target", func(f *Features) { f.OffTargets = 1 }, 92.5},
		{"strong hairpin", func(f *Features) { f.WorstFoldDG = -9 }, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ideal
			f.TerminalDG = append([]float64(nil), ideal.TerminalDG...)
			tt.mutate(&f)

			got := Weighted{}.Score(f, DefaultWeights())
			assert.InDelta(t, tt.want, got.Score, 0.05)
			assert.Len(t, got.Breakdown, 7)
		})
	}
}

func TestWeighted_ZeroWeights(t *testing.T) {
	got := Weighted{}.Score(Features{}, Weights{})
	assert.Equal(t, 0.0, got.Score)

	// only the weighted sub-scores count
	got = Weighted{}.Score(Features{TmDiff: 2}, Weights{TmMatch: 1})
	assert.InDelta(t, 80, got.Score, 0.05)
}
