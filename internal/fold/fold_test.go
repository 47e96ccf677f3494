package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStemFolder_Fold(t *testing.T) {
	f := NewStemFolder()

	tests := []struct {
		name      string
		seq       string
		wantDG    float64
		wantPairs int
	}{
		{"no structure", "AAAAAAAAAAAAAAAAAAAA", 0, 0},
		{"four bp stem", "GGGGAAAACCCC", -1.98, 4},
		{"lowercase", "ggggaaaacccc", -1.98, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structures, err := f.Fold(tt.seq, 37)
			require.NoError(t, err)

			dg, err := f.DG(tt.seq, 37)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantDG, dg, 0.02)

			if tt.wantPairs == 0 {
				assert.Empty(t, structures)
				return
			}
			require.NotEmpty(t, structures)
			assert.Len(t, structures[0].BasePairs, tt.wantPairs)
			assert.Equal(t, [2]int{0, 11}, structures[0].BasePairs[0])
			for i := 1; i < len(structures); i++ {
				assert.LessOrEqual(t, structures[i-1].Energy, structures[i].Energy)
			}
		})
	}
}

func TestStemFolder_Invalid(t *testing.T) {
	_, err := NewStemFolder().DG("ACGTX", 37)
	assert.Error(t, err)
}

func TestBestDimer(t *testing.T) {
	self := BestDimer("ACGTACGT", "ACGTACGT", 37)
	assert.Equal(t, 8, self.LongestRun)
	assert.Equal(t, 0, self.Shift)
	assert.Less(t, self.DG, -5.0)

	none := BestDimer("AAAAAAAA", "AAAAAAAA", 37)
	assert.Equal(t, Dimer{}, none)

	// a 3' tail complementary to another 3' tail
	tail := BestDimer("TTTTTTTTGCGC", "AAAAAAAAGCGC", 37)
	assert.GreaterOrEqual(t, tail.LongestRun, 4)
	assert.Less(t, tail.DG, 0.0)
}
