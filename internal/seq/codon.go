package seq

import (
	"fmt"
	"sort"
	"strings"
)

// standard genetic code, codon -> one letter amino acid ('*' is stop)
var geneticCode = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// codon usage as the fraction of each amino acid's codons (Kazusa tables, rounded)
var codonUsage = map[string]map[string]float64{
	"ecoli": {
		"GCG": .36, "GCC": .27, "GCA": .21, "GCT": .16,
		"CGT": .38, "CGC": .40, "CGA": .06, "CGG": .10, "AGA": .04, "AGG": .02,
		"AAC": .55, "AAT": .45, "GAT": .63, "GAC": .37, "TGC": .56, "TGT": .44,
		"CAG": .65, "CAA": .35, "GAA": .69, "GAG": .31,
		"GGC": .40, "GGT": .34, "GGG": .15, "GGA": .11,
		"CAT": .57, "CAC": .43, "ATT": .51, "ATC": .42, "ATA": .07,
		"CTG": .50, "TTA": .13, "TTG": .13, "CTT": .10, "CTC": .10, "CTA": .04,
		"AAA": .76, "AAG": .24, "ATG": 1, "TTT": .57, "TTC": .43,
		"CCG": .52, "CCA": .19, "CCT": .16, "CCC": .13,
		"AGC": .28, "TCT": .15, "TCC": .15, "AGT": .15, "TCG": .15, "TCA": .12,
		"ACC": .44, "ACG": .27, "ACT": .17, "ACA": .13,
		"TGG": 1, "TAT": .57, "TAC": .43,
		"GTG": .37, "GTT": .26, "GTC": .22, "GTA": .15,
		"TAA": .64, "TGA": .29, "TAG": .07,
	},
	"human": {
		"GCC": .40, "GCT": .26, "GCA": .23, "GCG": .11,
		"AGA": .20, "AGG": .20, "CGG": .21, "CGC": .19, "CGA": .11, "CGT": .08,
		"AAC": .54, "AAT": .46, "GAC": .54, "GAT": .46, "TGC": .55, "TGT": .45,
		"CAG": .75, "CAA": .25, "GAG": .58, "GAA": .42,
		"GGC": .34, "GGA": .25, "GGG": .25, "GGT": .16,
		"CAC": .59, "CAT": .41, "ATC": .48, "ATT": .36, "ATA": .16,
		"CTG": .41, "CTC": .20, "TTG": .13, "CTT": .13, "TTA": .07, "CTA": .07,
		"AAG": .58, "AAA": .42, "ATG": 1, "TTC": .55, "TTT": .45,
		"CCC": .33, "CCT": .28, "CCA": .27, "CCG": .11,
		"AGC": .24, "TCC": .22, "TCT": .18, "TCA": .15, "AGT": .15, "TCG": .06,
		"ACC": .36, "ACA": .28, "ACT": .24, "ACG": .12,
		"TGG": 1, "TAC": .57, "TAT": .43,
		"GTG": .47, "GTC": .24, "GTT": .18, "GTA": .11,
		"TGA": .52, "TAA": .28, "TAG": .20,
	},
}

// Translate returns the one letter amino acid sequence of an in-frame DNA sequence.
// Trailing bases that don't make a full codon are ignored.
func Translate(dna string) (string, error) {
	dna = strings.ToUpper(dna)
	var b strings.Builder
	for i := 0; i+3 <= len(dna); i += 3 {
		aa, ok := geneticCode[dna[i:i+3]]
		if !ok {
			return "", fmt.Errorf("%w: codon %q at index %d", ErrInvalidBase, dna[i:i+3], i)
		}
		b.WriteByte(aa)
	}
	return b.String(), nil
}

// Organisms returns the organisms with codon usage tables
func Organisms() []string {
	names := make([]string, 0, len(codonUsage))
	for name := range codonUsage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CodonTable picks codons for codon-change mutations.
type CodonTable struct{}

// Codons returns every codon that encodes the amino acid, sorted.
func (CodonTable) Codons(aa byte) []string {
	aa = upper(aa)
	var codons []string
	for codon, a := range geneticCode {
		if a == aa {
			codons = append(codons, codon)
		}
	}
	sort.Strings(codons)
	return codons
}

// Choose returns the codon for aa that needs the fewest base changes from original.
// Ties go to the codon the organism uses most, then to the alphabetically first codon.
// An empty or unknown organism skips the usage tie-break.
func (t CodonTable) Choose(original string, aa byte, organism string) (string, error) {
	original = strings.ToUpper(original)
	if len(original) != 3 {
		return "", fmt.Errorf("codon %q is not 3 bases", original)
	}
	candidates := t.Codons(aa)
	if len(candidates) == 0 {
		return "", fmt.Errorf("unknown amino acid %q", aa)
	}

	usage := codonUsage[strings.ToLower(organism)]
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := Hamming(original, candidates[i]), Hamming(original, candidates[j])
		if di != dj {
			return di < dj
		}
		return usage[candidates[i]] > usage[candidates[j]]
	})
	return candidates[0], nil
}

// AminoAcid returns the amino acid of a single codon
func AminoAcid(codon string) (byte, bool) {
	aa, ok := geneticCode[strings.ToUpper(codon)]
	return aa, ok
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
