// Package thermo is nearest-neighbor thermodynamics for primer/template duplexes.
//
// Units: ΔH in kcal/mol, ΔS in cal/(K·mol), Tm in °C. Concentrations are mol/L.
//
// MismatchTm sums initiation, per-stack parameters (matched, internal mismatch,
// terminal mismatch or an averaged penalty, in that order of preference),
// terminal AT penalties, terminal mismatch, dangling end and tandem mismatch
// corrections. Salt is corrected with the Owczarzy (2008) Mg2+ polynomial on
// 1/Tm when Mg2+ is present and with the monovalent entropy term otherwise.
package thermo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jjtimmons/sdm/internal/seq"
)

// R is the gas constant in cal/(K·mol)
const R = 1.9872

// ErrLengthMismatch is returned when a primer and its template window differ in length.
var ErrLengthMismatch = errors.New("primer and template lengths differ")

// proximalWindow is how many 3' bases count as 3'-proximal for a mismatch
const proximalWindow = 5

// Conditions are the reaction conditions a Tm is calculated for.
type Conditions struct {
	// PrimerConc is the total strand concentration (mol/L)
	PrimerConc float64 `json:"primerConc" yaml:"primerConc" mapstructure:"primer-conc"`

	// Na is the monovalent cation concentration (mol/L)
	Na float64 `json:"na" yaml:"na" mapstructure:"na"`

	// Mg is the Mg2+ concentration (mol/L), 0 to use only Na
	Mg float64 `json:"mg" yaml:"mg" mapstructure:"mg"`

	// DanglingEnds enables dangling end corrections on terminal mismatches
	DanglingEnds bool `json:"danglingEnds" yaml:"danglingEnds" mapstructure:"dangling-ends"`
}

// DefaultConditions are typical high-fidelity PCR conditions.
func DefaultConditions() Conditions {
	return Conditions{
		PrimerConc:   500e-9,
		Na:           0.05,
		Mg:           0.002,
		DanglingEnds: true,
	}
}

// SaltModel is the salt correction that was applied.
type SaltModel string

const (
	// SaltMg is the Owczarzy 2008 Mg2+ correction on 1/Tm
	SaltMg SaltModel = "owczarzy-mg"

	// SaltNa is the monovalent correction on ΔS
	SaltNa SaltModel = "na-entropy"
)

// Mismatch is a single non Watson-Crick position between a primer and its template.
type Mismatch struct {
	Position         int    `json:"position" yaml:"position"`
	PrimerBase       string `json:"primerBase" yaml:"primerBase"`
	TemplateBase     string `json:"templateBase" yaml:"templateBase"`
	IsTerminal       bool   `json:"isTerminal" yaml:"isTerminal"`
	Is3PrimeProximal bool   `json:"is3PrimeProximal" yaml:"is3PrimeProximal"`
}

// Result is a mismatch-aware Tm with the thermodynamic breakdown behind it.
type Result struct {
	// Tm in °C, rounded to one decimal. Zero when WillNotBind
	Tm float64 `json:"tm" yaml:"tm"`

	// WillNotBind is true if over half the bases mismatch or the Tm isn't physical
	WillNotBind bool `json:"willNotBind" yaml:"willNotBind"`

	Mismatches       []Mismatch `json:"mismatches" yaml:"mismatches"`
	MismatchCount    int        `json:"mismatchCount" yaml:"mismatchCount"`
	MismatchFraction float64    `json:"mismatchFraction" yaml:"mismatchFraction"`

	// MaxConsecutive is the longest run of adjacent mismatches
	MaxConsecutive int `json:"maxConsecutive" yaml:"maxConsecutive"`

	// TotalConsecutive sums the lengths of every run longer than one
	TotalConsecutive int `json:"totalConsecutive" yaml:"totalConsecutive"`

	DH             float64   `json:"dH" yaml:"dH"`
	DS             float64   `json:"dS" yaml:"dS"`
	SaltCorrection float64   `json:"saltCorrection" yaml:"saltCorrection"`
	SaltModel      SaltModel `json:"saltModel" yaml:"saltModel"`
}

// Critical3Prime is true when a mismatch sits in the 3'-proximal bases.
func (r *Result) Critical3Prime() bool {
	for _, m := range r.Mismatches {
		if m.Is3PrimeProximal {
			return true
		}
	}
	return false
}

// Tm is the melting temperature of a primer against its perfect complement.
func Tm(primer string, c Conditions) (float64, error) {
	r, err := MismatchTm(primer, primer, c)
	if err != nil {
		return 0, err
	}
	return r.Tm, nil
}

// MismatchTm calculates the Tm of primer (5'→3') annealed to the complement of
// template, an equal length window of the coding strand in the same orientation.
func MismatchTm(primer, template string, c Conditions) (*Result, error) {
	p := strings.ToUpper(primer)
	t := strings.ToUpper(template)
	if len(p) != len(t) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(p), len(t))
	}
	if len(p) < 2 {
		return nil, fmt.Errorf("primer %q is too short for a nearest-neighbor Tm", primer)
	}
	if err := seq.Validate(p); err != nil {
		return nil, fmt.Errorf("primer: %w", err)
	}
	if err := seq.Validate(t); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	n := len(p)
	bottom := seq.Complement(t) // the strand the primer actually anneals to
	r := &Result{}

	mm := make([]bool, n)
	for i := 0; i < n; i++ {
		if p[i] == t[i] {
			continue
		}
		mm[i] = true
		r.Mismatches = append(r.Mismatches, Mismatch{
			Position:         i,
			PrimerBase:       p[i : i+1],
			TemplateBase:     t[i : i+1],
			IsTerminal:       i == 0 || i == n-1,
			Is3PrimeProximal: i >= n-proximalWindow,
		})
	}
	r.MismatchCount = len(r.Mismatches)
	r.MismatchFraction = float64(r.MismatchCount) / float64(n)
	r.MaxConsecutive, r.TotalConsecutive = runs(mm)

	dH, dS := initiation.dH, initiation.dS
	add := func(v nn) {
		dH += v.dH
		dS += v.dS
	}

	dangle5 := c.DanglingEnds && mm[0] && !mm[1]
	dangle3 := c.DanglingEnds && mm[n-1] && !mm[n-2]

	for i := 0; i < n-1; i++ {
		top := p[i : i+2]
		bot := bottom[i : i+2]

		if !mm[i] && !mm[i+1] {
			add(matched[top+"/"+bot])
			continue
		}

		switch {
		case i == 0 && dangle5:
			add(lookup(danglingEnd, top+"/."+bot[1:], averageMismatch))
		case i == n-2 && dangle3:
			add(lookup(danglingEnd, top+"/"+bot[:1]+".", averageMismatch))
		case (i == 0 && mm[0]) || (i == n-2 && mm[n-1]):
			add(mismatchStack(top+"/"+bot, terminalMismatch, internalMismatch))
		default:
			add(mismatchStack(top+"/"+bot, internalMismatch, terminalMismatch))
		}
	}

	// terminal AT penalties, both ends
	if p[0] == 'A' || p[0] == 'T' {
		add(terminalAT)
	}
	if p[n-1] == 'A' || p[n-1] == 'T' {
		add(terminalAT)
	}

	if mm[0] {
		add(fivePrimeMismatch)
	}
	if mm[n-1] {
		add(threePrimeMismatch)
	}

	for _, run := range runLengths(mm) {
		if run > 1 {
			dH += math.Min(tandemStep.dH*float64(run-1), tandemCap)
		}
	}

	r.DH = dH
	r.DS = dS

	tmC := r.solve(n, seq.GC(p), c)
	r.Tm = math.Round(tmC*10) / 10
	if r.MismatchFraction > 0.5 || math.IsNaN(tmC) || math.IsInf(tmC, 0) || tmC < -50 {
		r.WillNotBind = true
		r.Tm = 0
	}
	return r, nil
}

// solve finds Tm (°C) from ΔH/ΔS with the salt correction for the conditions.
func (r *Result) solve(n int, gc float64, c Conditions) float64 {
	ct := c.PrimerConc
	if ct <= 0 {
		ct = DefaultConditions().PrimerConc
	}
	conc := R * math.Log(ct/4)

	if c.Mg > 0 {
		denom := r.DS + conc
		if r.DH >= 0 || denom >= 0 {
			return math.NaN()
		}
		tm1M := r.DH * 1000 / denom

		lnMg := math.Log(c.Mg)
		corr := owA + owB*lnMg + gc*(owC+owD*lnMg)
		if n > 1 {
			corr += (owE + owF*lnMg + owG*lnMg*lnMg) / (2 * float64(n-1))
		}
		r.SaltModel = SaltMg
		r.SaltCorrection = corr
		return 1/(1/tm1M+corr) - 273.15
	}

	na := c.Na
	if na <= 0 {
		na = DefaultConditions().Na
	}
	saltDS := 0.368 * float64(n-1) * math.Log(na)
	r.SaltModel = SaltNa
	r.SaltCorrection = saltDS

	denom := r.DS + saltDS + conc
	if r.DH >= 0 || denom >= 0 {
		return math.NaN()
	}
	return r.DH*1000/denom - 273.15
}

// mismatchStack looks a stack up in the first table (both orientations), then
// the second, then falls back to the average mismatch penalty.
func mismatchStack(key string, first, second map[string]nn) nn {
	if v, ok := find(first, key); ok {
		return v
	}
	if v, ok := find(second, key); ok {
		return v
	}
	return averageMismatch
}

func lookup(table map[string]nn, key string, fallback nn) nn {
	if v, ok := find(table, key); ok {
		return v
	}
	return fallback
}

// find tries the key as given and read from the opposite strand.
func find(table map[string]nn, key string) (nn, bool) {
	if v, ok := table[key]; ok {
		return v, true
	}
	v, ok := table[reverse(key)]
	return v, ok
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// runLengths returns the length of every run of consecutive true values
func runLengths(mm []bool) []int {
	var out []int
	run := 0
	for _, m := range mm {
		if m {
			run++
			continue
		}
		if run > 0 {
			out = append(out, run)
		}
		run = 0
	}
	if run > 0 {
		out = append(out, run)
	}
	return out
}

func runs(mm []bool) (longest, total int) {
	for _, run := range runLengths(mm) {
		longest = max(longest, run)
		if run > 1 {
			total += run
		}
	}
	return
}
