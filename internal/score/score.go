// Package score combines independently normalized primer pair qualities into
// a single 0-100 composite score.
package score

import (
	"math"
	"sort"
)

// Features are the raw measurements of a primer pair.
type Features struct {
	TmDiff      float64 // |ΔTm| between primers, °C
	GCForward   float64 // GC fraction 0-1
	GCReverse   float64
	LenForward  int
	LenReverse  int
	WorstFoldDG float64 // most negative self-fold ΔG of the pair, kcal/mol
	OffTargets  int     // total off-target sites for both primers
	TerminalDG  []float64
	GQuadruplex bool
}

// Weights are the relative importance of every sub-score, keyed by name.
type Weights map[string]float64

// Result is a composite score with the normalized sub-scores it came from.
type Result struct {
	Score     float64            `json:"score" yaml:"score"`
	Breakdown map[string]float64 `json:"breakdown" yaml:"breakdown"`
}

// Scorer turns features into a composite score.
type Scorer interface {
	Score(f Features, w Weights) Result
}

// sub-score names
const (
	TmMatch     = "tmMatch"
	GCContent   = "gc"
	Length      = "length"
	Structure   = "structure"
	Specificity = "specificity"
	Stability   = "terminalStability"
	Quadruplex  = "gQuadruplex"
)

// DefaultWeights favor Tm matching and structure.
func DefaultWeights() Weights {
	return Weights{
		TmMatch:     0.25,
		GCContent:   0.10,
		Length:      0.10,
		Structure:   0.20,
		Specificity: 0.15,
		Stability:   0.10,
		Quadruplex:  0.10,
	}
}

// Weighted is the weighted mean of normalized sub-scores.
type Weighted struct{}

// Score returns the weighted mean of every sub-score with a positive weight, times 100.
func (Weighted) Score(f Features, w Weights) Result {
	subs := map[string]float64{
		TmMatch:     clamp(1 - f.TmDiff/10),
		GCContent:   (gcScore(f.GCForward) + gcScore(f.GCReverse)) / 2,
		Length:      (lengthScore(f.LenForward) + lengthScore(f.LenReverse)) / 2,
		Structure:   structureScore(f.WorstFoldDG),
		Specificity: 1 / (1 + float64(f.OffTargets)),
		Stability:   stabilityScore(f.TerminalDG),
		Quadruplex:  1,
	}
	if f.GQuadruplex {
		subs[Quadruplex] = 0
	}

	// deterministic summation order
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	sort.Strings(names)

	total, weight := 0.0, 0.0
	for _, name := range names {
		if wt := w[name]; wt > 0 {
			total += wt * subs[name]
			weight += wt
		}
	}

	r := Result{Breakdown: subs}
	if weight > 0 {
		r.Score = math.Round(total/weight*1000) / 10
	}
	return r
}

func gcScore(gc float64) float64 {
	return clamp(1 - math.Abs(gc-0.5)/0.25)
}

// lengthScore is 1 from 18 to 28 bp and falls off linearly outside
func lengthScore(n int) float64 {
	switch {
	case n == 0:
		return 0
	case n < 18:
		return clamp(1 - float64(18-n)/8)
	case n > 28:
		return clamp(1 - float64(n-28)/20)
	}
	return 1
}

// structureScore is 1 above -3 kcal/mol and 0 at -9 or below
func structureScore(dg float64) float64 {
	if dg >= -3 {
		return 1
	}
	return clamp(1 - (-3-dg)/6)
}

// stabilityScore is the fraction of 3' ends within -12 to -6 kcal/mol
func stabilityScore(dgs []float64) float64 {
	if len(dgs) == 0 {
		return 1
	}
	ok := 0
	for _, dg := range dgs {
		if dg >= -12 && dg <= -6 {
			ok++
		}
	}
	return float64(ok) / float64(len(dgs))
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
