package sdm

import (
	"fmt"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/thermo"
)

// Primer is a single primer candidate.
type Primer struct {
	Sequence string `json:"sequence" yaml:"sequence"`

	// Start is the index of the primer's 5' base and End the index of its
	// 3' base, both in mutated sequence coordinates. Start > End for primers
	// annealing to the top strand (reverse primers).
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	Length int `json:"length" yaml:"length"`

	// Tm in °C of the portion the Tm window applies to
	Tm float64 `json:"tm" yaml:"tm"`

	// GC is a percentage
	GC float64 `json:"gc" yaml:"gc"`

	HasGCClamp bool `json:"hasGCClamp" yaml:"hasGCClamp"`

	// IsRescue is true if the primer only fits a relaxed Tm ceiling
	IsRescue bool `json:"isRescue" yaml:"isRescue"`

	// Enrichment is only set on primers of pairs that survived cheap scoring
	Enrichment *Enrichment `json:"enrichment,omitempty" yaml:"enrichment,omitempty"`
}

// G4Risk is the G-quadruplex risk of a primer.
type G4Risk string

const (
	// G4None has neither a quadruplex motif nor a GGGG run
	G4None G4Risk = "none"

	// G4Moderate has a GGGG run
	G4Moderate G4Risk = "moderate"

	// G4High has four G tracts that can form a quadruplex
	G4High G4Risk = "high"
)

// Enrichment are the expensive measurements of a primer.
type Enrichment struct {
	// FoldDG is the most stable self-fold ΔG (kcal/mol) at 37 °C
	FoldDG *float64 `json:"foldDG,omitempty" yaml:"foldDG,omitempty"`

	// TerminalDG is the ΔG (kcal/mol) of the 3' terminal bases
	TerminalDG float64 `json:"terminalDG" yaml:"terminalDG"`

	// TerminalBase is "strong" for a 3' G or C and "weak" otherwise
	TerminalBase string `json:"terminalBase" yaml:"terminalBase"`

	// OffTargets is the number of secondary binding sites, unset if not checked
	OffTargets *int `json:"offTargets,omitempty" yaml:"offTargets,omitempty"`

	// OffTargetSites are the secondary binding sites by position
	OffTargetSites map[int]int `json:"offTargetSites,omitempty" yaml:"offTargetSites,omitempty"`

	GQuadruplex G4Risk `json:"gQuadruplex" yaml:"gQuadruplex"`

	// MismatchTm is the Tm against the unmutated template
	MismatchTm *thermo.Result `json:"mismatchTm,omitempty" yaml:"mismatchTm,omitempty"`
}

// Pair is a forward and reverse primer that make a mutagenic PCR product.
type Pair struct {
	Forward  Primer          `json:"forward" yaml:"forward"`
	Reverse  Primer          `json:"reverse" yaml:"reverse"`
	Strategy config.Strategy `json:"strategy" yaml:"strategy"`
	TmDiff   float64         `json:"tmDiff" yaml:"tmDiff"`

	// Penalty only ever grows, lower is better
	Penalty float64 `json:"penalty" yaml:"penalty"`

	// ContextPenalty is the part of Penalty from the sequence around the split point
	ContextPenalty float64 `json:"contextPenalty" yaml:"contextPenalty"`

	// Score is the 0-100 composite score, unset for pairs that weren't enriched
	Score     *float64           `json:"score,omitempty" yaml:"score,omitempty"`
	Breakdown map[string]float64 `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`

	Tier        Tier      `json:"tier,omitempty" yaml:"tier,omitempty"`
	SplitOffset int       `json:"splitOffset" yaml:"splitOffset"`
	Warnings    []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func newPair(fwd, rev Primer, strategy config.Strategy, offset int) *Pair {
	diff := fwd.Tm - rev.Tm
	if diff < 0 {
		diff = -diff
	}
	return &Pair{
		Forward:     fwd,
		Reverse:     rev,
		Strategy:    strategy,
		TmDiff:      round1(diff),
		SplitOffset: offset,
	}
}

// key identifies a pair independent of the offset it was found at
func (p *Pair) key() string {
	return fmt.Sprintf("%s/%d/%d/%d/%d", p.Strategy, p.Forward.Start, p.Forward.End, p.Reverse.Start, p.Reverse.End)
}

func (p *Pair) rescue() bool {
	return p.Forward.IsRescue || p.Reverse.IsRescue
}

// worstFoldDG is the most negative self-fold ΔG of the pair, 0 if unknown
func (p *Pair) worstFoldDG() float64 {
	worst := 0.0
	for _, e := range []*Enrichment{p.Forward.Enrichment, p.Reverse.Enrichment} {
		if e != nil && e.FoldDG != nil && *e.FoldDG < worst {
			worst = *e.FoldDG
		}
	}
	return worst
}

// normalized returns a copy with coordinates in the mutated sequence
func (p *Pair) normalized(w *working) *Pair {
	c := *p
	c.Forward.Start, c.Forward.End = w.normalize(p.Forward.Start), w.normalize(p.Forward.End)
	c.Reverse.Start, c.Reverse.End = w.normalize(p.Reverse.Start), w.normalize(p.Reverse.End)
	c.Warnings = append([]Warning(nil), p.Warnings...)
	return &c
}

// Severity is how much a warning should worry the user.
type Severity string

const (
	Info     Severity = "info"
	Caution  Severity = "warning"
	Critical Severity = "critical"
)

// WarningKind is the closed set of problems a design can be flagged with.
type WarningKind string

const (
	Hairpin          WarningKind = "hairpin"
	Heterodimer      WarningKind = "heterodimer"
	OffTarget        WarningKind = "off-target"
	GQuadruplex      WarningKind = "g-quadruplex"
	RescueMode       WarningKind = "rescue-mode"
	ContextIssue     WarningKind = "context-issue"
	StrategyFallback WarningKind = "strategy-fallback"
)

// Warning is a problem with a design that didn't disqualify it.
type Warning struct {
	Kind     WarningKind `json:"kind" yaml:"kind"`
	Severity Severity    `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
}

// Tier is a coarse quality bucket.
type Tier string

const (
	Excellent  Tier = "excellent"
	Good       Tier = "good"
	Acceptable Tier = "acceptable"
	Poor       Tier = "poor"
)

// rank is lower for better tiers
func (t Tier) rank() int {
	switch t {
	case Excellent:
		return 0
	case Good:
		return 1
	case Acceptable:
		return 2
	}
	return 3
}
