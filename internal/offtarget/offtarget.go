// Package offtarget finds secondary binding sites of a primer in its template.
package offtarget

import (
	"strings"

	"github.com/jjtimmons/sdm/internal/seq"
)

// Strand is the template strand a primer binds to.
type Strand int

const (
	// Plus means the primer's sequence appears on the given template
	Plus Strand = iota

	// Minus means the primer's reverse complement appears on the given template
	Minus
)

// Hit is a single binding site.
type Hit struct {
	// Position is the 0-based start of the site on the plus strand
	Position int `json:"position" yaml:"position"`

	Strand     Strand `json:"strand" yaml:"strand"`
	Mismatches int    `json:"mismatches" yaml:"mismatches"`
}

// Scanner finds every binding site of a primer on a template.
type Scanner interface {
	Scan(primer, template string) []Hit
}

// HammingScanner is an ungapped scan of both strands that keeps sites with at
// most MaxMismatches substitutions.
type HammingScanner struct {
	MaxMismatches int
}

// NewHammingScanner returns a scanner tolerating 2 mismatches.
func NewHammingScanner() *HammingScanner {
	return &HammingScanner{MaxMismatches: 2}
}

// Scan returns plus strand hits, then minus strand hits, each by position.
func (h *HammingScanner) Scan(primer, template string) []Hit {
	primer = strings.ToUpper(primer)
	template = strings.ToUpper(template)
	if len(primer) == 0 || len(primer) > len(template) {
		return nil
	}

	var hits []Hit
	hits = h.scan(primer, template, Plus, hits)
	hits = h.scan(seq.ReverseComplement(primer), template, Minus, hits)
	return hits
}

func (h *HammingScanner) scan(query, template string, strand Strand, hits []Hit) []Hit {
	n := len(query)
	for start := 0; start+n <= len(template); start++ {
		mm := 0
		for i := 0; i < n && mm <= h.MaxMismatches; i++ {
			if query[i] != template[start+i] {
				mm++
			}
		}
		if mm <= h.MaxMismatches {
			hits = append(hits, Hit{Position: start, Strand: strand, Mismatches: mm})
		}
	}
	return hits
}

// Count returns the number of hits that aren't the intended binding site.
func Count(hits []Hit, intended Hit) int {
	count := 0
	for _, hit := range hits {
		if hit.Position == intended.Position && hit.Strand == intended.Strand {
			continue
		}
		count++
	}
	return count
}

// PerPosition tallies hits by plus strand position.
func PerPosition(hits []Hit) map[int]int {
	counts := make(map[int]int, len(hits))
	for _, hit := range hits {
		counts[hit.Position]++
	}
	return counts
}
