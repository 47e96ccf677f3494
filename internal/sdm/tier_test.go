package sdm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jjtimmons/sdm/config"
)

func ptr[T any](v T) *T {
	return &v
}

func enriched(diff float64, score *float64, foldDG float64) *Pair {
	e := &Enrichment{FoldDG: ptr(foldDG)}
	return &Pair{
		Forward:  Primer{Enrichment: e},
		Reverse:  Primer{Enrichment: &Enrichment{}},
		Strategy: config.BackToBack,
		TmDiff:   diff,
		Score:    score,
	}
}

func Test_classify(t *testing.T) {
	rescue := enriched(1, ptr(90.0), -1)
	rescue.Reverse.IsRescue = true

	tests := []struct {
		name string
		pair *Pair
		want Tier
	}{
		{"excellent", enriched(1, ptr(85.0), -1), Excellent},
		{"excellent without a score", enriched(1.5, nil, 0), Excellent},
		{"low score", enriched(1, ptr(60.0), -1), Good},
		{"rescue is never excellent", rescue, Good},
		{"hairpin", enriched(1, ptr(85.0), -4), Good},
		{"Tm gap", enriched(4, ptr(85.0), -1), Good},
		{"strong hairpin", enriched(1, ptr(85.0), -6), Acceptable},
		{"wide Tm gap", enriched(7.5, ptr(85.0), 0), Acceptable},
		{"poor", enriched(9, ptr(85.0), 0), Poor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.pair))
		})
	}
}

func Test_rank(t *testing.T) {
	poor := enriched(9, ptr(95.0), 0)
	good := enriched(4, ptr(80.0), 0)
	bestScore := enriched(1, ptr(90.0), 0)
	lowerScore := enriched(1, ptr(80.0), 0)
	cheap := enriched(1, ptr(80.0), 0)
	lowerScore.Penalty, cheap.Penalty = 5, 1

	got := rank([]*Pair{poor, good, lowerScore, cheap, bestScore})
	assert.Equal(t, []*Pair{bestScore, cheap, lowerScore, good, poor}, got)

	// better tiers are never behind worse ones
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Tier.rank(), got[i].Tier.rank())
	}
}
