package sdm

import "sort"

// classify assigns the tier of an enriched pair.
//
// Pairs with a primer that only fit the rescue Tm ceiling are never excellent.
func classify(p *Pair) Tier {
	diff, worst := p.TmDiff, p.worstFoldDG()
	scored := p.Score == nil || *p.Score >= 70

	switch {
	case diff <= 2 && worst > -3 && scored && !p.rescue():
		return Excellent
	case diff <= 5 && worst > -5:
		return Good
	case diff <= 8:
		return Acceptable
	}
	return Poor
}

// rank tiers the pairs and sorts them best first: by tier, then descending
// composite score, then ascending penalty.
func rank(pairs []*Pair) []*Pair {
	for _, p := range pairs {
		p.Tier = classify(p)
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.Tier.rank() != b.Tier.rank() {
			return a.Tier.rank() < b.Tier.rank()
		}
		if a.Score != nil && b.Score != nil && *a.Score != *b.Score {
			return *a.Score > *b.Score
		}
		return cheaper(a, b)
	})
	return pairs
}
