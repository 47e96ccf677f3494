package sdm

import (
	"fmt"

	"github.com/jjtimmons/sdm/config"
	"github.com/jjtimmons/sdm/internal/seq"
	"github.com/jjtimmons/sdm/internal/thermo"
)

// flank is how far upstream of the mutation a back-to-back forward primer's
// 5' end may sit, by mutation type
type flank struct{ min, max int }

var flanks = map[MutationType]flank{
	Substitution: {3, 10},
	CodonChange:  {3, 10},
	Insertion:    {0, 5},
	Deletion:     {5, 15},
}

const (
	// minJunction is the fewest bases a deletion primer binds on the upstream
	// side of the junction
	minJunction = 5

	// rescueCeiling is the highest Tm accepted when nothing fits the window
	rescueCeiling = 76.0

	// minArm is the shortest flank on either side of an overlapping primer
	minArm = 10
)

// generator enumerates primer pairs at a single split offset.
type generator struct {
	w      *working
	conf   config.Design
	offset int
	diag   *Diagnostics
}

// backToBack builds pairs whose 5' ends abut. The forward primer carries the
// mutation in its 5' portion, the reverse primer's 5' end sits one base
// upstream of the forward primer's.
func (g *generator) backToBack(mutType MutationType) ([]*Pair, error) {
	fl := flanks[mutType]

	var pairs []*Pair
	for f := fl.min; f <= fl.max; f++ {
		s := g.w.start - f + g.offset
		if s > g.w.start {
			continue // the forward primer has to carry the mutation
		}
		if mutType == Deletion && g.w.start-s < minJunction {
			continue
		}
		g.diag.PositionsExplored++

		fwds, err := g.forwards(s)
		if err != nil {
			return nil, err
		}
		revs, err := g.reverses(s - 1)
		if err != nil {
			return nil, err
		}
		if len(fwds) == 0 || len(revs) == 0 {
			continue
		}

		// every length on one side against every length on the other
		ctx := contextPenalty(g.w.seq, s)
		for _, fwd := range fwds {
			for _, rev := range revs {
				g.diag.PairsEvaluated++
				p := newPair(fwd, rev, config.BackToBack, g.offset)
				p.ContextPenalty = ctx
				p.Penalty = cheapPenalty(p, g.conf)
				pairs = append(pairs, p)
			}
		}
	}
	return pairs, nil
}

// forwards are the forward primers with their 5' end at s. Their 3' annealing
// portion starts right after the mutated region.
func (g *generator) forwards(s int) ([]Primer, error) {
	w, c := g.w, g.conf
	if s < 0 {
		return nil, nil // counted as a short upstream region by reverses
	}
	available := len(w.seq) - w.end
	if available < c.MinAnnealingLength {
		g.diag.downstreamShort(available)
		return nil, nil
	}

	tail := w.end - s
	var candidates []Primer
	for a := c.MinAnnealingLength; a <= c.MaxAnnealingLength && a <= available; a++ {
		length := tail + a
		if length < c.MinPrimerLength {
			continue
		}
		if length > c.MaxPrimerLength {
			g.diag.TooLong++
			break
		}

		sequence := w.seq[s : s+length]
		annealing := sequence
		if c.ConfineTo5Tails {
			ri := w.refIndex(w.end)
			annealing = w.ref[ri : ri+a]
		}

		p, err := g.primer(sequence, annealing, s, s+length-1)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, p)
	}
	return g.pick(candidates, true), nil
}

// reverses are the reverse primers with their 5' end at r5, annealing
// upstream of it.
func (g *generator) reverses(r5 int) ([]Primer, error) {
	w, c := g.w, g.conf
	shortest := max(c.MinPrimerLength, c.MinAnnealingLength)
	longest := min(c.MaxPrimerLength, c.MaxAnnealingLength)
	if r5+1 < shortest {
		g.diag.upstreamShort(max(r5+1, 0))
		return nil, nil
	}

	var candidates []Primer
	for length := shortest; length <= longest && length <= r5+1; length++ {
		end := r5 - length + 1
		p, err := g.primer(seq.ReverseComplement(w.seq[end:r5+1]), "", r5, end)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, p)
	}
	return g.pick(candidates, false), nil
}

// overlapping builds pairs of primers that are each other's reverse complement,
// with the mutation between symmetric flanks.
func (g *generator) overlapping() ([]*Pair, error) {
	w, c := g.w, g.conf
	k := w.end - w.start
	lo := max(minArm, (c.MinPrimerLength-k+1)/2)
	hi := min(c.MaxAnnealingLength, (c.MaxPrimerLength-k)/2)

	var candidates []Primer
	for f := lo; f <= hi; f++ {
		left, right := f+g.offset, f-g.offset
		s, e := w.start-left, w.end+right
		g.diag.PositionsExplored++
		if s < 0 {
			g.diag.upstreamShort(w.start)
			continue
		}
		if e > len(w.seq) {
			g.diag.downstreamShort(len(w.seq) - w.end)
			continue
		}
		if e-s > c.MaxPrimerLength {
			g.diag.TooLong++
			continue
		}
		if c.GCClampRequired && !seq.IsStrong(w.seq[s]) {
			g.diag.ClampRejected++ // the reverse primer's 3' end
			continue
		}

		p, err := g.primer(w.seq[s:e], "", s, e-1)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, p)
	}

	var pairs []*Pair
	for _, fwd := range g.pick(candidates, true) {
		rev := fwd
		rev.Sequence = seq.ReverseComplement(fwd.Sequence)
		rev.Start, rev.End = fwd.End, fwd.Start
		rev.HasGCClamp = seq.IsStrong(rev.Sequence[len(rev.Sequence)-1])

		g.diag.PairsEvaluated++
		p := newPair(fwd, rev, config.Overlapping, g.offset)
		p.ContextPenalty = contextPenalty(w.seq, fwd.Start)
		p.Penalty = cheapPenalty(p, g.conf)
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// primer measures a candidate. The Tm is of annealing if it's set, the whole
// sequence otherwise.
func (g *generator) primer(sequence, annealing string, start, end int) (Primer, error) {
	if annealing == "" {
		annealing = sequence
	}
	tm, err := thermo.Tm(annealing, g.conf.Conditions)
	if err != nil {
		return Primer{}, fmt.Errorf("failed to calculate the Tm of %s: %w", annealing, err)
	}

	gc := round1(seq.GC(sequence) * 100)
	g.diag.observe(tm, gc, len(sequence))
	return Primer{
		Sequence:   sequence,
		Start:      start,
		End:        end,
		Length:     len(sequence),
		Tm:         tm,
		GC:         gc,
		HasGCClamp: seq.IsStrong(sequence[len(sequence)-1]),
	}, nil
}

// pick keeps the candidates inside the Tm window, retrying with the rescue
// ceiling if none are.
func (g *generator) pick(candidates []Primer, forward bool) []Primer {
	c := g.conf
	if len(candidates) == 0 {
		return nil
	}

	var clamped []Primer
	for _, p := range candidates {
		if c.GCClampRequired && !p.HasGCClamp {
			g.diag.ClampRejected++
			continue
		}
		clamped = append(clamped, p)
	}

	picked := window(clamped, c.MinTm, c.MaxTm, false)
	if len(picked) == 0 {
		picked = window(clamped, c.MinTm, max(rescueCeiling, c.MaxTm), true)
	}
	if len(picked) == 0 && len(clamped) > 0 {
		if forward {
			g.diag.ForwardNoTm++
		} else {
			g.diag.ReverseNoTm++
		}
	}
	return picked
}

func window(candidates []Primer, lo, hi float64, rescue bool) []Primer {
	var out []Primer
	for _, p := range candidates {
		if p.Tm >= lo && p.Tm <= hi {
			p.IsRescue = rescue
			out = append(out, p)
		}
	}
	return out
}
