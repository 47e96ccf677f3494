package sdm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jjtimmons/sdm/config"
)

// ErrNoCandidates is wrapped by every NoCandidateError.
var ErrNoCandidates = errors.New("no primer pair found")

// TmExtreme is a primer at the edge of the Tms that were achievable.
type TmExtreme struct {
	Tm     float64 `json:"tm" yaml:"tm"`
	GC     float64 `json:"gc" yaml:"gc"`
	Length int     `json:"length" yaml:"length"`
}

// Diagnostics accumulate why candidates were rejected during a search.
//
// Each split offset fills its own Diagnostics and they're merged after the
// search, so nothing here is safe for concurrent use.
type Diagnostics struct {
	Strategy config.Strategy `json:"strategy" yaml:"strategy"`

	// ForwardRegionShort counts split points where the sequence downstream of
	// the mutation was shorter than the shortest allowed forward primer
	ForwardRegionShort int `json:"forwardRegionShort" yaml:"forwardRegionShort"`

	// ReverseRegionShort counts split points where the sequence upstream of
	// the split point was shorter than the shortest allowed reverse primer
	ReverseRegionShort int `json:"reverseRegionShort" yaml:"reverseRegionShort"`

	// DownstreamAvailable and UpstreamAvailable are the most sequence seen on
	// either side of any short split point, -1 if never short
	DownstreamAvailable int `json:"downstreamAvailable" yaml:"downstreamAvailable"`
	UpstreamAvailable   int `json:"upstreamAvailable" yaml:"upstreamAvailable"`

	// ForwardNoTm and ReverseNoTm count split points where no primer fell
	// inside the Tm window, even after the rescue ceiling
	ForwardNoTm int `json:"forwardNoTm" yaml:"forwardNoTm"`
	ReverseNoTm int `json:"reverseNoTm" yaml:"reverseNoTm"`

	Coldest *TmExtreme `json:"coldest,omitempty" yaml:"coldest,omitempty"`
	Hottest *TmExtreme `json:"hottest,omitempty" yaml:"hottest,omitempty"`

	ClampRejected int `json:"clampRejected" yaml:"clampRejected"`
	TooLong       int `json:"tooLong" yaml:"tooLong"`

	PositionsExplored int `json:"positionsExplored" yaml:"positionsExplored"`
	PairsEvaluated    int `json:"pairsEvaluated" yaml:"pairsEvaluated"`

	// FallbackTried is set when the other strategy was also searched
	FallbackTried bool `json:"fallbackTried" yaml:"fallbackTried"`
}

func newDiagnostics(strategy config.Strategy) *Diagnostics {
	return &Diagnostics{Strategy: strategy, DownstreamAvailable: -1, UpstreamAvailable: -1}
}

// observe records a primer's Tm against the coldest and hottest seen
func (d *Diagnostics) observe(tm, gc float64, length int) {
	if d.Coldest == nil || tm < d.Coldest.Tm {
		d.Coldest = &TmExtreme{Tm: tm, GC: gc, Length: length}
	}
	if d.Hottest == nil || tm > d.Hottest.Tm {
		d.Hottest = &TmExtreme{Tm: tm, GC: gc, Length: length}
	}
}

func (d *Diagnostics) downstreamShort(available int) {
	d.ForwardRegionShort++
	d.DownstreamAvailable = max(d.DownstreamAvailable, available)
}

func (d *Diagnostics) upstreamShort(available int) {
	d.ReverseRegionShort++
	d.UpstreamAvailable = max(d.UpstreamAvailable, available)
}

// merge adds another search's diagnostics into this one. The strategy is kept.
func (d *Diagnostics) merge(o *Diagnostics) {
	d.ForwardRegionShort += o.ForwardRegionShort
	d.ReverseRegionShort += o.ReverseRegionShort
	d.DownstreamAvailable = max(d.DownstreamAvailable, o.DownstreamAvailable)
	d.UpstreamAvailable = max(d.UpstreamAvailable, o.UpstreamAvailable)
	d.ForwardNoTm += o.ForwardNoTm
	d.ReverseNoTm += o.ReverseNoTm
	d.ClampRejected += o.ClampRejected
	d.TooLong += o.TooLong
	d.PositionsExplored += o.PositionsExplored
	d.PairsEvaluated += o.PairsEvaluated
	if o.Coldest != nil {
		d.observe(o.Coldest.Tm, o.Coldest.GC, o.Coldest.Length)
	}
	if o.Hottest != nil {
		d.observe(o.Hottest.Tm, o.Hottest.GC, o.Hottest.Length)
	}
}

func (d *Diagnostics) lengthFailures() int {
	return d.ForwardRegionShort + d.ReverseRegionShort + d.TooLong
}

func (d *Diagnostics) tmFailures() int {
	return d.ForwardNoTm + d.ReverseNoTm
}

// NoCandidateError is returned when a search finishes without a single pair
// that satisfies every hard constraint.
type NoCandidateError struct {
	Mutation    Mutation
	Diagnostics *Diagnostics
	Config      config.Design

	// Circular is whether the template was searched across its origin
	Circular bool
}

func (e *NoCandidateError) Unwrap() error {
	return ErrNoCandidates
}

// Error renders the diagnostics as sections, the dominant failure mode first.
func (e *NoCandidateError) Error() string {
	d := e.Diagnostics

	var b strings.Builder
	fmt.Fprintf(&b, "%s for %s (%s)\n", ErrNoCandidates, e.Mutation, d.Strategy)

	sections := []func(*strings.Builder){e.lengthSection, e.tmSection}
	if d.tmFailures() > d.lengthFailures() {
		sections[0], sections[1] = sections[1], sections[0]
	}
	for _, section := range sections {
		section(&b)
	}

	b.WriteString("\nSearch summary:\n")
	fmt.Fprintf(&b, "  %d split points explored, %d pairs evaluated\n", d.PositionsExplored, d.PairsEvaluated)
	if d.ClampRejected > 0 {
		fmt.Fprintf(&b, "  %d primers rejected for lacking a 3' GC clamp\n", d.ClampRejected)
	}
	if d.FallbackTried {
		b.WriteString("  the other primer strategy was also tried without success\n")
	}

	b.WriteString("\nSuggested adjustments:\n")
	for _, s := range e.suggestions() {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (e *NoCandidateError) lengthSection(b *strings.Builder) {
	d, c := e.Diagnostics, e.Config
	if d.lengthFailures() == 0 {
		return
	}

	b.WriteString("\nLength issue:\n")
	if d.ForwardRegionShort > 0 {
		fmt.Fprintf(b, "  the region downstream of the mutation (%d bp) is shorter than the minimum annealing length (%d bp) at %d split points\n",
			max(d.DownstreamAvailable, 0), c.MinAnnealingLength, d.ForwardRegionShort)
	}
	if d.ReverseRegionShort > 0 {
		fmt.Fprintf(b, "  the region upstream of the split point (at most %d bp) is shorter than the minimum primer length (%d bp) at %d split points\n",
			max(d.UpstreamAvailable, 0), max(c.MinPrimerLength, c.MinAnnealingLength), d.ReverseRegionShort)
	}
	if d.TooLong > 0 {
		fmt.Fprintf(b, "  %d primers would exceed the %d nt maximum primer length\n", d.TooLong, c.MaxPrimerLength)
	}
}

func (e *NoCandidateError) tmSection(b *strings.Builder) {
	d, c := e.Diagnostics, e.Config
	if d.tmFailures() == 0 {
		return
	}

	b.WriteString("\nTm window issue:\n")
	if d.ForwardNoTm > 0 {
		fmt.Fprintf(b, "  no forward primer within %.1f-%.1f °C at %d split points\n", c.MinTm, c.MaxTm, d.ForwardNoTm)
	}
	if d.ReverseNoTm > 0 {
		fmt.Fprintf(b, "  no reverse primer within %.1f-%.1f °C at %d split points\n", c.MinTm, c.MaxTm, d.ReverseNoTm)
	}
	if d.Coldest != nil {
		fmt.Fprintf(b, "  coldest achievable Tm %.1f °C (%d nt, GC %.1f%%)\n", d.Coldest.Tm, d.Coldest.Length, d.Coldest.GC)
	}
	if d.Hottest != nil {
		fmt.Fprintf(b, "  hottest achievable Tm %.1f °C (%d nt, GC %.1f%%)\n", d.Hottest.Tm, d.Hottest.Length, d.Hottest.GC)
	}
}

// suggestions are derived from the failures that happened, most common first
func (e *NoCandidateError) suggestions() []string {
	d, c := e.Diagnostics, e.Config
	var length, tm []string

	if d.ForwardRegionShort > 0 || d.ReverseRegionShort > 0 {
		length = append(length, fmt.Sprintf("reduce the minimum primer length (currently %d nt) or the minimum annealing length (currently %d nt)",
			c.MinPrimerLength, c.MinAnnealingLength))
		if !e.Circular {
			length = append(length, "if the template is a plasmid, design it as circular so primers can span its origin")
		}
	}
	if d.TooLong > 0 {
		length = append(length, fmt.Sprintf("raise the maximum primer length (currently %d nt)", c.MaxPrimerLength))
	}

	if d.tmFailures() > 0 {
		switch {
		case d.Hottest != nil && d.Hottest.Tm < c.MinTm:
			tm = append(tm, fmt.Sprintf("lower the minimum Tm below %.1f °C, the hottest primer reached %.1f °C", c.MinTm, d.Hottest.Tm))
			tm = append(tm, fmt.Sprintf("raise the maximum annealing length (currently %d nt)", c.MaxAnnealingLength))
		case d.Coldest != nil && d.Coldest.Tm > c.MaxTm:
			tm = append(tm, fmt.Sprintf("raise the maximum Tm above %.1f °C, the coldest primer reached %.1f °C", c.MaxTm, d.Coldest.Tm))
			tm = append(tm, fmt.Sprintf("lower the minimum annealing length (currently %d nt)", c.MinAnnealingLength))
		default:
			tm = append(tm, fmt.Sprintf("widen the Tm window (currently %.1f-%.1f °C)", c.MinTm, c.MaxTm))
		}
	}
	if d.ClampRejected > 0 && c.GCClampRequired {
		tm = append(tm, "stop requiring a 3' GC clamp")
	}

	if d.tmFailures() > d.lengthFailures() {
		length, tm = tm, length
	}
	out := append(length, tm...)
	if len(out) == 0 {
		out = append(out, "try the other primer strategy or exhaustive search")
	}
	return out
}
