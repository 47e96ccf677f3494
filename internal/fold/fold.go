// Package fold estimates secondary structure for primers: single-stem
// hairpins for self folding and ungapped duplexes for primer dimers.
//
// This isn't a full Zuker-style minimum free energy fold. Folder is the seam
// for swapping one in.
package fold

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jjtimmons/sdm/internal/seq"
	"github.com/jjtimmons/sdm/internal/thermo"
)

// Structure is a single folded conformation.
type Structure struct {
	// Energy is the ΔG (kcal/mol) of the structure
	Energy float64 `json:"energy" yaml:"energy"`

	// BasePairs are the 0-based (i, j) pairs with i < j
	BasePairs [][2]int `json:"basePairs" yaml:"basePairs"`
}

// Folder folds single-stranded DNA.
type Folder interface {
	// Fold returns structures ordered from most to least stable
	Fold(s string, tempC float64) ([]Structure, error)

	// DG returns the ΔG of the most stable structure, 0 if there is none
	DG(s string, tempC float64) (float64, error)
}

// hairpin loop initiation ΔG37 (kcal/mol) by loop length, SantaLucia & Hicks (2004)
var loopDG = map[int]float64{3: 3.5, 4: 3.5, 5: 3.3, 6: 4.0, 7: 4.2, 8: 4.3, 9: 4.5}

// StemFolder finds hairpins made of one uninterrupted stem.
type StemFolder struct {
	// MinStem is the fewest base pairs in a stem
	MinStem int

	// MinLoop is the fewest unpaired bases in a hairpin loop
	MinLoop int

	// MaxStructures caps how many structures Fold returns
	MaxStructures int
}

// NewStemFolder returns a StemFolder with 3bp stems, 3bp loops and 5 structures.
func NewStemFolder() *StemFolder {
	return &StemFolder{MinStem: 3, MinLoop: 3, MaxStructures: 5}
}

// Fold enumerates maximal stems and scores them by stacking plus loop energy.
func (f *StemFolder) Fold(s string, tempC float64) ([]Structure, error) {
	s = strings.ToUpper(s)
	if err := seq.Validate(s); err != nil {
		return nil, fmt.Errorf("failed to fold %q: %w", s, err)
	}

	n := len(s)
	var structures []Structure
	for i := 0; i < n; i++ {
		for j := n - 1; j > i; j-- {
			if !isWC(s[i], s[j]) {
				continue
			}
			// only stems that can't be extended outward
			if i > 0 && j < n-1 && isWC(s[i-1], s[j+1]) {
				continue
			}

			k := 0
			for i+k < j-k && isWC(s[i+k], s[j-k]) {
				k++
			}

			// give the loop back whatever it's short by
			loop := j - i - 2*k + 1
			for k > 0 && loop < f.MinLoop {
				k--
				loop += 2
			}
			if k < f.MinStem {
				continue
			}

			st := Structure{Energy: f.loopEnergy(loop, tempC)}
			for m := 0; m < k; m++ {
				st.BasePairs = append(st.BasePairs, [2]int{i + m, j - m})
				if m+1 < k {
					g, _ := thermo.StackDG(s[i+m:i+m+2], tempC)
					st.Energy += g
				}
			}
			st.Energy = math.Round(st.Energy*100) / 100
			structures = append(structures, st)
		}
	}

	sort.SliceStable(structures, func(a, b int) bool {
		if structures[a].Energy != structures[b].Energy {
			return structures[a].Energy < structures[b].Energy
		}
		return structures[a].BasePairs[0][0] < structures[b].BasePairs[0][0]
	})
	if f.MaxStructures > 0 && len(structures) > f.MaxStructures {
		structures = structures[:f.MaxStructures]
	}
	return structures, nil
}

// DG is the ΔG of the most stable hairpin, capped at 0.
func (f *StemFolder) DG(s string, tempC float64) (float64, error) {
	structures, err := f.Fold(s, tempC)
	if err != nil {
		return 0, err
	}
	if len(structures) == 0 {
		return 0, nil
	}
	return math.Min(0, structures[0].Energy), nil
}

// loopEnergy uses the tabulated penalty up to 9 bases and a Jacobson-Stockmayer
// extrapolation past that.
func (f *StemFolder) loopEnergy(loop int, tempC float64) float64 {
	if g, ok := loopDG[loop]; ok {
		return g
	}
	if loop < 3 {
		return loopDG[3]
	}
	return loopDG[9] + 1.75*thermo.R*(tempC+273.15)/1000*math.Log(float64(loop)/9)
}

func isWC(a, b byte) bool {
	switch a {
	case 'A':
		return b == 'T'
	case 'T':
		return b == 'A'
	case 'C':
		return b == 'G'
	case 'G':
		return b == 'C'
	}
	return false
}
