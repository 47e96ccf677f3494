package sdm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjtimmons/sdm/config"
)

func pairAt(fwdStart, revStart int, penalty float64, offset int) *Pair {
	return &Pair{
		Forward:     Primer{Start: fwdStart, End: fwdStart + 20, Length: 21},
		Reverse:     Primer{Start: revStart, End: revStart - 20, Length: 21},
		Strategy:    config.BackToBack,
		Penalty:     penalty,
		SplitOffset: offset,
	}
}

func Test_pool(t *testing.T) {
	a := pairAt(30, 29, 4, 2)
	aAgain := pairAt(30, 29, 4, -1)
	b := pairAt(28, 27, 1, 0)
	c := pairAt(32, 31, 4, 1)

	got := pool([][]*Pair{{a}, {aAgain, b}, {c}})
	require.Len(t, got, 3)

	assert.Equal(t, b.key(), got[0].key())
	assert.Equal(t, a.key(), got[1].key(), "equal penalties are ordered by position")
	assert.Equal(t, -1, got[1].SplitOffset, "duplicates keep the offset nearest zero")
	assert.Equal(t, c.key(), got[2].key())
}

func Test_closer(t *testing.T) {
	assert.True(t, closer(0, 1))
	assert.True(t, closer(-1, 2))
	assert.True(t, closer(-1, 1))
	assert.False(t, closer(2, -1))
	assert.False(t, closer(1, -1))
}

func TestDesigner_search(t *testing.T) {
	template := Template{Sequence: egfp}
	m := Mutation{Type: Substitution, Position: 90, Bases: "G"}
	mut, err := m.Apply(template, "")
	require.NoError(t, err)
	w := newWorking(template, mut, false, 0)

	pairs, diag, err := NewDesigner().search(w, config.Defaults(), config.BackToBack, m.Type)
	require.NoError(t, err)
	require.NotEmpty(t, pairs)

	assert.Equal(t, config.BackToBack, diag.Strategy)
	assert.Greater(t, diag.PositionsExplored, 0)
	assert.GreaterOrEqual(t, diag.PairsEvaluated, len(pairs))

	seen := make(map[string]bool)
	for i, p := range pairs {
		assert.False(t, seen[p.key()], "duplicate pair %s", p.key())
		seen[p.key()] = true
		if i > 0 {
			assert.LessOrEqual(t, pairs[i-1].Penalty, p.Penalty)
		}
		assert.Nil(t, p.Score, "search doesn't enrich")
		assert.Equal(t, p.Forward.Start-1, p.Reverse.Start)
	}

	// deletions only search the unshifted split point
	del := Mutation{Type: Deletion, Position: 90, Length: 3}
	mut, err = del.Apply(template, "")
	require.NoError(t, err)
	w = newWorking(template, mut, false, 0)
	pairs, _, err = NewDesigner().search(w, config.Defaults(), config.BackToBack, del.Type)
	require.NoError(t, err)
	for _, p := range pairs {
		assert.Equal(t, 0, p.SplitOffset)
	}
}
