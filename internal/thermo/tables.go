package thermo

// nn holds nearest-neighbor enthalpy (kcal/mol) and entropy (cal/(K·mol)).
type nn struct {
	dH float64
	dS float64
}

// Keys are "top/bottom" where top is the primer dinucleotide 5'→3' and bottom
// is the partner strand read 3'→5' underneath it.

// Watson-Crick stacks at 1 M Na+, SantaLucia & Hicks (2004), Table 1.
var matched = map[string]nn{
	"AA/TT": {-7.6, -21.3},
	"AT/TA": {-7.2, -20.4},
	"TA/AT": {-7.2, -21.3},
	"CA/GT": {-8.5, -22.7},
	"GT/CA": {-8.4, -22.4},
	"CT/GA": {-7.8, -21.0},
	"GA/CT": {-8.2, -22.2},
	"CG/GC": {-10.6, -27.2},
	"GC/CG": {-9.8, -24.4},
	"GG/CC": {-8.0, -19.9},
	"TT/AA": {-7.6, -21.3},
	"CC/GG": {-8.0, -19.9},
	"AC/TG": {-8.4, -22.4},
	"TG/AC": {-8.5, -22.7},
	"AG/TC": {-7.8, -21.0},
	"TC/AG": {-8.2, -22.2},
}

// Internal single mismatches, Allawi & SantaLucia (1997-1998), Peyret et al. (1999).
var internalMismatch = map[string]nn{
	"AG/TT": {1.0, 0.9}, "AT/TG": {-2.5, -8.3}, "CG/GT": {-4.1, -11.7},
	"CT/GG": {-2.8, -8.0}, "GG/CT": {3.3, 10.4}, "GG/TT": {5.8, 16.3},
	"GT/CG": {-4.4, -12.3}, "GT/TG": {4.1, 9.5}, "TG/AT": {-0.1, -1.7},
	"TG/GT": {-1.4, -6.2}, "TT/AG": {-1.3, -5.3}, "AA/TG": {-0.6, -2.3},
	"AG/TA": {-0.7, -2.3}, "CA/GG": {-0.7, -2.3}, "CG/GA": {-4.0, -13.2},
	"GA/CG": {-0.6, -1.0}, "GG/CA": {0.5, 3.2}, "TA/AG": {0.7, 0.7},
	"TG/AA": {3.0, 7.4},
	"AC/TT": {0.7, 0.2}, "AT/TC": {-1.2, -6.2}, "CC/GT": {-0.8, -4.5},
	"CT/GC": {-1.5, -6.1}, "GC/CT": {2.3, 5.4}, "GT/CC": {5.2, 13.5},
	"TC/AT": {1.2, 0.7}, "TT/AC": {1.0, 0.7},
	"AA/TC": {2.3, 4.6}, "AC/TA": {5.3, 14.6}, "CA/GC": {1.9, 3.7},
	"CC/GA": {0.6, -0.6}, "GA/CC": {5.2, 14.2}, "GC/CA": {-0.7, -3.8},
	"TA/AC": {3.4, 8.0}, "TC/AA": {7.6, 20.2},
	"AA/TA": {1.2, 1.7}, "CA/GA": {-0.9, -4.2}, "GA/CA": {-2.9, -9.8},
	"TA/AA": {4.7, 12.9}, "AC/TC": {0.0, -4.4}, "CC/GC": {-1.5, -7.2},
	"GC/CC": {3.6, 8.9}, "TC/AC": {6.1, 16.4}, "AG/TG": {-3.1, -9.5},
	"CG/GG": {-4.9, -15.3}, "GG/CG": {-6.0, -15.8}, "TG/AG": {1.6, 3.6},
	"AT/TT": {-2.7, -10.8}, "CT/GT": {-5.0, -15.8}, "GT/CT": {-2.2, -8.4},
	"TT/AT": {0.2, -1.5},
}

// Terminal mismatches, Bommarito et al. (2000).
var terminalMismatch = map[string]nn{
	"AA/TA": {-3.1, -7.8}, "TA/AA": {-2.5, -6.3}, "CA/GA": {-4.3, -10.7},
	"GA/CA": {-8.0, -22.5},
	"AC/TC": {-0.1, 0.5}, "TC/AC": {-0.7, -1.3}, "CC/GC": {-2.1, -5.1},
	"GC/CC": {-3.9, -10.6},
	"AG/TG": {-1.1, -2.1}, "TG/AG": {-1.1, -2.7}, "CG/GG": {-3.8, -9.5},
	"GG/CG": {-0.7, -19.2},
	"AT/TT": {-2.4, -6.5}, "TT/AT": {-3.2, -8.9}, "CT/GT": {-6.1, -16.9},
	"GT/CT": {-7.4, -21.2},
	"AA/TC": {-1.6, -4.0}, "AC/TA": {-1.8, -3.8}, "CA/GC": {-2.6, -5.9},
	"CC/GA": {-2.7, -6.0}, "GA/CC": {-5.0, -13.8}, "GC/CA": {-3.2, -7.1},
	"TA/AC": {-2.3, -5.9}, "TC/AA": {-2.7, -7.0},
	"AC/TT": {-0.9, -1.7}, "AT/TC": {-2.3, -6.3}, "CC/GT": {-3.2, -8.0},
	"CT/GC": {-3.9, -10.6}, "GC/CT": {-4.9, -13.5}, "GT/CC": {-3.0, -7.8},
	"TC/AT": {-2.5, -6.3}, "TT/AC": {-0.7, -1.2},
	"AA/TG": {-1.9, -4.4}, "AG/TA": {-2.5, -5.9}, "CA/GG": {-3.9, -9.6},
	"CG/GA": {-6.0, -15.5}, "GA/CG": {-4.3, -11.1}, "GG/CA": {-4.6, -11.4},
	"TA/AG": {-2.0, -4.7}, "TG/AA": {-2.4, -5.8},
	"AG/TT": {-3.2, -8.7}, "AT/TG": {-3.5, -9.4}, "CG/GT": {-3.8, -9.0},
	"CT/GG": {-6.6, -18.7}, "GG/CT": {-5.7, -15.9}, "GT/CG": {-5.9, -16.1},
	"TG/AT": {-3.9, -10.5}, "TT/AG": {-3.6, -9.8},
}

// Dangling ends, Bommarito et al. (2000). A '.' marks the unpaired side.
var danglingEnd = map[string]nn{
	"AA/.T": {0.2, 2.3}, "AC/.G": {-6.3, -17.1}, "AG/.C": {-3.7, -10.0},
	"AT/.A": {-2.9, -7.6}, "CA/.T": {0.6, 3.3}, "CC/.G": {-4.4, -12.6},
	"CG/.C": {-4.0, -11.9}, "CT/.A": {-4.1, -13.0}, "GA/.T": {-1.1, -1.6},
	"GC/.G": {-5.1, -14.0}, "GG/.C": {-3.9, -10.9}, "GT/.A": {-4.2, -15.0},
	"TA/.T": {-6.9, -20.0}, "TC/.G": {-4.0, -10.9}, "TG/.C": {-4.9, -13.8},
	"TT/.A": {-0.2, -0.5},
	".A/AT": {-0.7, -0.8}, ".C/AG": {-2.1, -3.9}, ".G/AC": {-5.9, -16.5},
	".T/AA": {-0.5, -1.1}, ".A/CT": {4.4, 14.9}, ".C/CG": {-0.2, -0.1},
	".G/CC": {-2.6, -7.4}, ".T/CA": {4.7, 14.2}, ".A/GT": {-1.6, -3.6},
	".C/GG": {-3.9, -11.2}, ".G/GC": {-3.2, -10.4}, ".T/GA": {-4.1, -13.1},
	".A/TT": {2.9, 10.4}, ".C/TG": {-4.4, -13.1}, ".G/TC": {-5.2, -15.0},
	".T/TA": {-3.8, -12.6},
}

var (
	initiation = nn{0.2, -5.7}
	terminalAT = nn{2.2, 6.9}

	// used when no table has the stack
	averageMismatch = nn{1.0, 2.5}

	// extra enthalpy for a mismatch on the terminal base; 3' blocks extension
	fivePrimeMismatch  = nn{0.5, 0}
	threePrimeMismatch = nn{1.5, 0}

	// per mismatch beyond the first in a consecutive run, and the cap per run
	tandemStep = nn{1.2, 0}
	tandemCap  = 4.8
)

// Owczarzy et al. (2008) Mg2+ coefficients
const (
	owA = 3.92e-5
	owB = -9.11e-6
	owC = 6.26e-5
	owD = 1.42e-5
	owE = -4.82e-4
	owF = 5.25e-4
	owG = 8.31e-5
)
