// Package seq is for the sequence level utilities shared by the primer design
// engine: validation, complements, GC content and translation.
package seq

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBase is returned when a sequence has a character outside of A, C, G, T.
var ErrInvalidBase = errors.New("invalid base")

var complement = [256]byte{
	'A': 'T',
	'C': 'G',
	'G': 'C',
	'T': 'A',
	'a': 'T',
	'c': 'G',
	'g': 'C',
	't': 'A',
}

// Clean upper-cases a sequence, strips whitespace and validates that every base
// is one of A, C, G or T.
func Clean(s string) (string, error) {
	s = strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if s == "" {
		return "", fmt.Errorf("%w: empty sequence", ErrInvalidBase)
	}
	if err := Validate(s); err != nil {
		return "", err
	}
	return s, nil
}

// Validate returns an error wrapping ErrInvalidBase on the first non-ACGT base.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return fmt.Errorf("%w: %q at index %d", ErrInvalidBase, s[i], i)
		}
	}
	return nil
}

// Complement returns the base-by-base complement of seq (not reversed).
// Unknown bases become N.
func Complement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := complement[seq[i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// ReverseComplement returns the reverse complement of a sequence
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}

// GC returns the GC fraction (0-1) of a sequence
func GC(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// IsStrong is true for G and C
func IsStrong(b byte) bool {
	return b == 'G' || b == 'C'
}

// Hamming counts the mismatching positions between two equal length sequences.
// Sequences of different lengths are compared over the shorter one.
func Hamming(a, b string) int {
	n := min(len(a), len(b))
	d := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
