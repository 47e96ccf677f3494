package sdm

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jjtimmons/sdm/config"
)

// splitOffsets shift the split point to escape a bad local context
var splitOffsets = []int{-2, -1, 0, 1, 2}

// search generates and cheaply scores pairs at every split offset, each offset
// in its own goroutine. Pairs found at more than one offset are kept once,
// from the offset nearest zero. The result is sorted by penalty.
func (d *Designer) search(w *working, c config.Design, strategy config.Strategy, mutType MutationType) ([]*Pair, *Diagnostics, error) {
	offsets := splitOffsets
	if mutType == Deletion {
		offsets = []int{0}
	}

	results := make([][]*Pair, len(offsets))
	diags := make([]*Diagnostics, len(offsets))

	var g errgroup.Group
	for i, offset := range offsets {
		g.Go(func() error {
			gen := &generator{w: w, conf: c, offset: offset, diag: newDiagnostics(strategy)}

			var pairs []*Pair
			var err error
			switch strategy {
			case config.BackToBack:
				pairs, err = gen.backToBack(mutType)
			case config.Overlapping:
				pairs, err = gen.overlapping()
			default:
				err = fmt.Errorf("unknown strategy %q", strategy)
			}
			if err != nil {
				return fmt.Errorf("failed to search split offset %d: %w", offset, err)
			}

			d.logger.Debug("searched split offset",
				zap.String("strategy", string(strategy)),
				zap.Int("offset", offset),
				zap.Int("pairs", len(pairs)),
				zap.Int("positions", gen.diag.PositionsExplored),
			)
			results[i], diags[i] = pairs, gen.diag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	diag := newDiagnostics(strategy)
	for _, od := range diags {
		diag.merge(od)
	}
	return pool(results), diag, nil
}

// pool merges the pairs of every offset, dropping duplicates
func pool(results [][]*Pair) []*Pair {
	seen := make(map[string]*Pair)
	var pairs []*Pair
	for _, offsetPairs := range results {
		for _, p := range offsetPairs {
			k := p.key()
			if prev, ok := seen[k]; ok {
				if closer(p.SplitOffset, prev.SplitOffset) {
					*prev = *p
				}
				continue
			}
			seen[k] = p
			pairs = append(pairs, p)
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return cheaper(pairs[i], pairs[j])
	})
	return pairs
}

func closer(a, b int) bool {
	if abs(a) != abs(b) {
		return abs(a) < abs(b)
	}
	return a < b
}

// cheaper orders by penalty with every tie broken on coordinates
func cheaper(a, b *Pair) bool {
	if a.Penalty != b.Penalty {
		return a.Penalty < b.Penalty
	}
	return before(a, b)
}

func before(a, b *Pair) bool {
	switch {
	case a.TmDiff != b.TmDiff:
		return a.TmDiff < b.TmDiff
	case a.Forward.Start != b.Forward.Start:
		return a.Forward.Start < b.Forward.Start
	case a.Forward.Length != b.Forward.Length:
		return a.Forward.Length < b.Forward.Length
	case a.Reverse.Length != b.Reverse.Length:
		return a.Reverse.Length < b.Reverse.Length
	}
	return a.Strategy < b.Strategy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
