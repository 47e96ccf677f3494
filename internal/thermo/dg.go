package thermo

import (
	"strings"

	"github.com/jjtimmons/sdm/internal/seq"
)

// TerminalWindow is the number of 3' bases used for 3'-terminal stability
const TerminalWindow = 8

// StackDG is the ΔG (kcal/mol) of a Watson-Crick stack (top strand dinucleotide, 5'→3') at tempC.
func StackDG(top2 string, tempC float64) (float64, bool) {
	if len(top2) != 2 {
		return 0, false
	}
	top2 = strings.ToUpper(top2)
	v, ok := matched[top2+"/"+seq.Complement(top2)]
	if !ok {
		return 0, false
	}
	return dG(v, tempC), true
}

// DeltaG is the ΔG (kcal/mol) of stacking a sequence on its complement at tempC.
// Initiation isn't included, so this is the stacking energy of a stretch within
// a longer duplex (a 3' end, a stem, a dimer run). Unknown stacks are skipped.
func DeltaG(s string, tempC float64) float64 {
	total := 0.0
	for i := 0; i+1 < len(s); i++ {
		if g, ok := StackDG(s[i:i+2], tempC); ok {
			total += g
		}
	}
	return total
}

// TerminalDG is the stacking ΔG of the 3'-terminal TerminalWindow bases of a primer.
func TerminalDG(primer string, tempC float64) float64 {
	if len(primer) > TerminalWindow {
		primer = primer[len(primer)-TerminalWindow:]
	}
	return DeltaG(primer, tempC)
}

func dG(v nn, tempC float64) float64 {
	return v.dH - (tempC+273.15)*v.dS/1000
}
