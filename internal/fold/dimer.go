package fold

import (
	"strings"

	"github.com/jjtimmons/sdm/internal/thermo"
)

// Dimer is the most stable ungapped duplex between two primers.
type Dimer struct {
	// DG is the summed stacking ΔG (kcal/mol) of every complementary run
	DG float64 `json:"dG" yaml:"dG"`

	// LongestRun is the longest run of consecutive complementary bases
	LongestRun int `json:"longestRun" yaml:"longestRun"`

	// Shift is the offset of b's 3' end against a's 5' end
	Shift int `json:"shift" yaml:"shift"`
}

// BestDimer slides b (antiparallel) along a and keeps the alignment with the
// most negative ΔG. Ties go to the longest consecutive run, then the smallest
// absolute shift, then the lower shift.
func BestDimer(a, b string, tempC float64) Dimer {
	a = strings.ToUpper(a)
	rb := []byte(strings.ToUpper(b))
	for i, j := 0, len(rb)-1; i < j; i, j = i+1, j-1 {
		rb[i], rb[j] = rb[j], rb[i]
	}

	var best Dimer
	found := false
	for shift := -(len(rb) - 1); shift < len(a); shift++ {
		d := align(a, rb, shift, tempC)
		if !found || better(d, best) {
			best = d
			found = true
		}
	}
	return best
}

// align scores a against rb (b read 3'→5') with rb[0] under a[shift].
func align(a string, rb []byte, shift int, tempC float64) Dimer {
	d := Dimer{Shift: shift}
	run := 0
	flush := func(end int) {
		if run >= 2 {
			d.DG += thermo.DeltaG(a[end-run:end], tempC)
		}
		d.LongestRun = max(d.LongestRun, run)
		run = 0
	}

	for i := max(0, shift); i < len(a) && i-shift < len(rb); i++ {
		if isWC(a[i], rb[i-shift]) {
			run++
			continue
		}
		flush(i)
	}
	flush(min(len(a), len(rb)+shift))
	return d
}

func better(d, best Dimer) bool {
	if d.DG != best.DG {
		return d.DG < best.DG
	}
	if d.LongestRun != best.LongestRun {
		return d.LongestRun > best.LongestRun
	}
	ad, ab := abs(d.Shift), abs(best.Shift)
	if ad != ab {
		return ad < ab
	}
	return d.Shift < best.Shift
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
