package sdm

import (
	"math"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/seq"
)

const (
	// optimalMaxLength is the primer length past which length is penalized
	optimalMaxLength = 28

	// contextRadius is how many bases either side of a split point are checked
	contextRadius = 6

	// contextCost is added to pairs split inside a problematic local context
	contextCost = 3.0
)

// cheapPenalty is the soft-wall penalty of a pair from the measurements every
// candidate has. Lower is better.
func cheapPenalty(p *Pair, c config.Design) float64 {
	penalty := 0.0

	// 1 °C dead zone, quadratic after that
	if d := p.TmDiff - 1; d > 0 {
		penalty += 2 * d * d
	}

	for _, primer := range []Primer{p.Forward, p.Reverse} {
		if primer.Tm < c.MinTm {
			d := c.MinTm - primer.Tm
			penalty += 10 * d * d
		}
		if primer.Tm > c.MaxTm {
			penalty += 8 * (primer.Tm - c.MaxTm)
		}

		if primer.Length > optimalMaxLength {
			penalty += 1.5 * float64(primer.Length-optimalMaxLength)
		}

		// GC-rich is worse than AT-rich
		dev := primer.GC/100 - 0.5
		if dev > 0 {
			penalty += 150 * dev * dev
		} else {
			penalty += 80 * dev * dev
		}

		if primer.GC < c.MinGC {
			penalty += 0.5 * (c.MinGC - primer.GC)
		}
		if primer.GC > c.MaxGC {
			penalty += 0.5 * (primer.GC - c.MaxGC)
		}
	}

	return round2(penalty + p.ContextPenalty)
}

// contextPenalty checks the bases around a split point for sequence that
// makes primer synthesis or annealing unreliable.
func contextPenalty(s string, split int) float64 {
	lo, hi := max(0, split-contextRadius), min(len(s), split+contextRadius)
	if hi-lo < 4 {
		return 0
	}
	if badContext(s[lo:hi]) {
		return contextCost
	}
	return 0
}

func badContext(region string) bool {
	return homopolymer(region) >= 4 ||
		dinucleotideRepeat(region) >= 3 ||
		seq.GC(region) > 0.8 ||
		hasPalindrome(region, 6)
}

// homopolymer is the longest run of one base
func homopolymer(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i] == s[i-1] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// dinucleotideRepeat is the most times a two base unit (of two different
// bases) repeats back to back
func dinucleotideRepeat(s string) int {
	most := 0
	for i := 0; i+2 <= len(s); i++ {
		if s[i] == s[i+1] {
			continue
		}
		n := 1
		for j := i + 2; j+2 <= len(s) && s[j:j+2] == s[i:i+2]; j += 2 {
			n++
		}
		most = max(most, n)
	}
	return most
}

// hasPalindrome is true if any k-mer in s is its own reverse complement
func hasPalindrome(s string, k int) bool {
	for i := 0; i+k <= len(s); i++ {
		if kmer := s[i : i+k]; kmer == seq.ReverseComplement(kmer) {
			return true
		}
	}
	return false
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
