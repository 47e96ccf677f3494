package sdm

import (
	"errors"
	"regexp"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/offtarget"
	"github.com/jjtimmons/sdm/internal/score"
	"github.com/jjtimmons/sdm/internal/seq"
	"github.com/jjtimmons/sdm/internal/thermo"
)

const (
	// foldTemp is the temperature (°C) structures are folded at
	foldTemp = 37.0

	// enrichment only penalties
	offTargetCost   = 5.0
	terminalCost    = 5.0
	quadruplexCost  = 1000.0
	gggCost         = 50.0
	willNotBindCost = 100.0
	proximalCost    = 20.0

	// 3' terminal ΔG window (kcal/mol)
	terminalDGMin = -12.0
	terminalDGMax = -6.0
)

var errOutOfTemplate = errors.New("primer's template window runs off the template")

// quadruplex is four G tracts separated by short loops
var quadruplex = regexp.MustCompile(`(?:G{3,}[ACGT]{1,7}){3}G{3,}`)

// topN is how many of the cheapest pairs are enriched
func topN(c config.Design) int {
	if c.ExhaustiveSearch {
		return 100
	}
	return 10
}

// enrich measures the expensive properties of the first topN pairs, which
// must already be sorted by penalty. Every pair is written by one goroutine.
func (d *Designer) enrich(w *working, c config.Design, pairs []*Pair) ([]*Pair, error) {
	if n := topN(c); len(pairs) > n {
		pairs = pairs[:n]
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range pairs {
		g.Go(func() error {
			d.enrichPair(w, c, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (d *Designer) enrichPair(w *working, c config.Design, p *Pair) {
	var offTargets int
	for _, side := range []struct {
		primer  *Primer
		forward bool
	}{{&p.Forward, true}, {&p.Reverse, false}} {
		e := d.enrichPrimer(w, c, side.primer, side.forward)
		side.primer.Enrichment = e

		if e.OffTargets != nil {
			offTargets += *e.OffTargets
			p.Penalty += offTargetCost * float64(*e.OffTargets)
		}
		if e.TerminalDG < terminalDGMin {
			p.Penalty += terminalCost
		}
		if e.TerminalDG > terminalDGMax {
			p.Penalty += terminalCost
		}
		switch e.GQuadruplex {
		case G4High:
			p.Penalty += quadruplexCost
		case G4Moderate:
			p.Penalty += gggCost
		}
		if m := e.MismatchTm; m != nil {
			if m.WillNotBind {
				p.Penalty += willNotBindCost
			} else if m.Critical3Prime() {
				p.Penalty += proximalCost
			}
		}
	}
	p.Penalty = round2(p.Penalty)

	features := score.Features{
		TmDiff:      p.TmDiff,
		GCForward:   p.Forward.GC / 100,
		GCReverse:   p.Reverse.GC / 100,
		LenForward:  p.Forward.Length,
		LenReverse:  p.Reverse.Length,
		WorstFoldDG: p.worstFoldDG(),
		OffTargets:  offTargets,
		TerminalDG:  []float64{p.Forward.Enrichment.TerminalDG, p.Reverse.Enrichment.TerminalDG},
		GQuadruplex: p.Forward.Enrichment.GQuadruplex == G4High || p.Reverse.Enrichment.GQuadruplex == G4High,
	}
	result := d.scorer.Score(features, d.weights)
	p.Score = &result.Score
	p.Breakdown = result.Breakdown
}

// enrichPrimer omits any measurement that fails rather than dropping the primer
func (d *Designer) enrichPrimer(w *working, c config.Design, p *Primer, forward bool) *Enrichment {
	e := &Enrichment{
		TerminalDG:   round2(thermo.TerminalDG(p.Sequence, foldTemp)),
		TerminalBase: "weak",
		GQuadruplex:  g4Risk(p.Sequence),
	}
	if seq.IsStrong(p.Sequence[len(p.Sequence)-1]) {
		e.TerminalBase = "strong"
	}

	if dg, err := d.folder.DG(p.Sequence, foldTemp); err == nil {
		e.FoldDG = &dg
	} else {
		d.logger.Debug("skipping fold ΔG", zap.String("primer", p.Sequence), zap.Error(err))
	}

	if r, err := mismatchTm(w, p, forward, c.Conditions); err == nil {
		e.MismatchTm = r
	} else {
		d.logger.Debug("skipping mismatch Tm", zap.String("primer", p.Sequence), zap.Error(err))
	}

	if c.CheckOffTargets {
		n, sites := d.offTargets(w, p, forward)
		e.OffTargets = &n
		e.OffTargetSites = sites
	}
	return e
}

// mismatchTm is the Tm of a primer against the unmutated template, aligned
// on the primer's 3' end.
func mismatchTm(w *working, p *Primer, forward bool, c thermo.Conditions) (*thermo.Result, error) {
	n := len(p.Sequence)
	if forward {
		ri := w.refIndex(p.End)
		if ri-n+1 < 0 || ri >= len(w.ref) {
			return nil, errOutOfTemplate
		}
		return thermo.MismatchTm(p.Sequence, w.ref[ri-n+1:ri+1], c)
	}

	ri := w.refIndex(p.End)
	if ri < 0 || ri+n > len(w.ref) {
		return nil, errOutOfTemplate
	}
	return thermo.MismatchTm(p.Sequence, seq.ReverseComplement(w.ref[ri:ri+n]), c)
}

// offTargets counts binding sites in the mutated sequence other than the
// primer's own, and tallies them by position.
func (d *Designer) offTargets(w *working, p *Primer, forward bool) (int, map[int]int) {
	template := w.product
	if w.circular && len(p.Sequence) > 1 {
		wrap := min(len(p.Sequence)-1, len(template))
		template += template[:wrap]
	}

	intended := offtarget.Hit{Position: w.normalize(p.Start), Strand: offtarget.Plus}
	if !forward {
		intended = offtarget.Hit{Position: w.normalize(p.End), Strand: offtarget.Minus}
	}

	hits := d.scanner.Scan(p.Sequence, template)
	n := offtarget.Count(hits, intended)
	if n == 0 {
		return 0, nil
	}

	off := make([]offtarget.Hit, 0, n)
	for _, h := range hits {
		if h.Position != intended.Position || h.Strand != intended.Strand {
			off = append(off, h)
		}
	}
	return n, offtarget.PerPosition(off)
}

func g4Risk(s string) G4Risk {
	switch {
	case quadruplex.MatchString(s):
		return G4High
	case strings.Contains(s, "GGGG"):
		return G4Moderate
	}
	return G4None
}
