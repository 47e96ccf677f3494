// Package sdm designs PCR primer pairs that introduce a mutation into a
// template for site-directed mutagenesis.
//
// A design runs in two stages. Stage one generates every primer pair at five
// split offsets around the mutation and orders them by a cheap soft-wall
// penalty. Stage two enriches only the cheapest pairs with folding, off-target,
// mismatch Tm and composite score measurements, and those are sorted into
// quality tiers. If a back-to-back search finds nothing, an overlapping search
// is tried before giving up with a NoCandidateError.
package sdm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/fold"
	"github.com/jjtimmons/sdm/internal/offtarget"
	"github.com/jjtimmons/sdm/internal/score"
)

const (
	// sameStrategyAlternates and crossStrategyAlternates cap the alternates
	sameStrategyAlternates  = 3
	crossStrategyAlternates = 2

	// maxFlank is the furthest a split point sits from the mutation
	maxFlank = 15
)

// Designer finds primer pairs. Its collaborators are swappable through options.
type Designer struct {
	logger  *zap.Logger
	folder  fold.Folder
	scanner offtarget.Scanner
	scorer  score.Scorer
	weights score.Weights
}

// Option configures a Designer.
type Option func(*Designer)

// WithLogger logs search progress to l.
func WithLogger(l *zap.Logger) Option {
	return func(d *Designer) { d.logger = l }
}

// WithFolder replaces the secondary structure oracle.
func WithFolder(f fold.Folder) Option {
	return func(d *Designer) { d.folder = f }
}

// WithScanner replaces the off-target scanner.
func WithScanner(s offtarget.Scanner) Option {
	return func(d *Designer) { d.scanner = s }
}

// WithScorer replaces the composite scorer and its weights.
func WithScorer(s score.Scorer, w score.Weights) Option {
	return func(d *Designer) {
		d.scorer = s
		d.weights = w
	}
}

// NewDesigner returns a Designer with the in-process collaborators and a nop logger.
func NewDesigner(opts ...Option) *Designer {
	d := &Designer{
		logger:  zap.NewNop(),
		folder:  fold.NewStemFolder(),
		scanner: offtarget.NewHammingScanner(),
		scorer:  score.Weighted{},
		weights: score.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Design is a chosen primer pair with everything needed to run it.
type Design struct {
	// ID is derived from the inputs and the chosen primers, so identical
	// requests get identical IDs
	ID string `json:"id" yaml:"id"`

	Mutation Mutation         `json:"mutation" yaml:"mutation"`
	Mutated  *MutatedSequence `json:"mutated" yaml:"mutated"`
	Circular bool             `json:"circular" yaml:"circular"`

	Pair `yaml:",inline"`

	Structure  StructureCheck `json:"structure" yaml:"structure"`
	Alternates []*Pair        `json:"alternates,omitempty" yaml:"alternates,omitempty"`
	Protocol   Protocol       `json:"protocol" yaml:"protocol"`
}

// outcome is the ranked result of one strategy's search
type outcome struct {
	pairs []*Pair
	diag  *Diagnostics
}

// Design finds the best primer pair for introducing m into t.
//
// Input problems are returned as *InputError before any search. A search that
// finds nothing returns a *NoCandidateError with its diagnostics.
func (d *Designer) Design(t Template, m Mutation, c config.Design) (*Design, error) {
	if err := c.Validate(); err != nil {
		return nil, &InputError{Field: "config", Reason: err.Error(), Err: err}
	}
	t, err := NewTemplate(t.Sequence, t.Circular)
	if err != nil {
		return nil, err
	}

	mut, err := m.Apply(t, c.Organism)
	if err != nil {
		return nil, err
	}

	circular := t.Circular || c.Circular
	w := newWorking(t, mut, circular, c.MaxPrimerLength+maxFlank)
	if w.shift > 0 {
		d.logger.Debug("mutation near the origin of a circular template, searching a wrapped sequence",
			zap.Int("position", m.Position), zap.Int("length", len(t.Sequence)))
	}

	strategy := c.Strategy
	primary, err := d.run(w, c, strategy, m.Type)
	if err != nil {
		return nil, err
	}

	var extra []Warning
	results := map[config.Strategy]*outcome{strategy: primary}
	if len(primary.pairs) == 0 {
		if strategy != config.BackToBack {
			return nil, &NoCandidateError{Mutation: m, Diagnostics: primary.diag, Config: c, Circular: circular}
		}

		d.logger.Debug("no back-to-back pairs, falling back to overlapping primers")
		fallback, err := d.run(w, c, config.Overlapping, m.Type)
		if err != nil {
			return nil, err
		}
		if len(fallback.pairs) == 0 {
			primary.diag.merge(fallback.diag)
			primary.diag.FallbackTried = true
			return nil, &NoCandidateError{Mutation: m, Diagnostics: primary.diag, Config: c, Circular: circular}
		}

		strategy = config.Overlapping
		results[strategy] = fallback
		extra = append(extra, Warning{
			Kind:     StrategyFallback,
			Severity: Info,
			Message:  "no back-to-back pair was found, overlapping primers were designed instead",
		})
	}

	ranked := results[strategy].pairs
	best := ranked[0]
	check := d.checkStructure(best)
	best.Warnings = append(warnings(best, check), extra...)

	design := &Design{
		Mutation:  m,
		Mutated:   mut,
		Circular:  circular,
		Pair:      *best.normalized(w),
		Structure: check,
		Protocol:  protocol(best, m, len(mut.Sequence)),
	}

	alternates, err := d.alternates(w, c, m.Type, strategy, results)
	if err != nil {
		return nil, err
	}
	design.Alternates = alternates
	design.ID = designID(t, m, design)

	d.logger.Debug("designed primers",
		zap.String("mutation", m.String()),
		zap.String("strategy", string(strategy)),
		zap.String("tier", string(design.Tier)),
		zap.Float64("penalty", design.Penalty),
	)
	return design, nil
}

// run searches with one strategy, enriches the cheapest pairs and ranks them
func (d *Designer) run(w *working, c config.Design, strategy config.Strategy, mutType MutationType) (*outcome, error) {
	pairs, diag, err := d.search(w, c, strategy, mutType)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("cheap scoring done",
		zap.String("strategy", string(strategy)),
		zap.Int("pairs", len(pairs)),
		zap.Int("positions", diag.PositionsExplored),
	)
	if len(pairs) == 0 {
		return &outcome{diag: diag}, nil
	}

	enriched, err := d.enrich(w, c, pairs)
	if err != nil {
		return nil, err
	}
	return &outcome{pairs: rank(enriched), diag: diag}, nil
}

// alternates are the runners up of the chosen strategy and the best pairs of
// the other one
func (d *Designer) alternates(w *working, c config.Design, mutType MutationType, chosen config.Strategy, results map[config.Strategy]*outcome) ([]*Pair, error) {
	var out []*Pair
	same := results[chosen].pairs[1:]
	for i := 0; i < len(same) && i < sameStrategyAlternates; i++ {
		out = append(out, same[i].normalized(w))
	}

	other := config.Overlapping
	if chosen == config.Overlapping {
		other = config.BackToBack
	}
	res, ok := results[other]
	if !ok {
		var err error
		if res, err = d.run(w, c, other, mutType); err != nil {
			return nil, err
		}
	}
	for i := 0; i < len(res.pairs) && i < crossStrategyAlternates; i++ {
		out = append(out, res.pairs[i].normalized(w))
	}
	return out, nil
}

// designID is a name based UUID of the template, mutation and chosen primers
func designID(t Template, m Mutation, design *Design) string {
	name := strings.Join([]string{
		t.Sequence,
		m.String(),
		string(design.Strategy),
		design.Forward.Sequence,
		design.Reverse.Sequence,
	}, "|")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// IsNoCandidate reports whether err came from a search that found nothing.
func IsNoCandidate(err error) bool {
	return errors.Is(err, ErrNoCandidates)
}

// String is a one line summary of a design.
func (d *Design) String() string {
	return fmt.Sprintf("%s %s: %s / %s (%s)", d.Mutation, d.Strategy, d.Forward.Sequence, d.Reverse.Sequence, d.Tier)
}
