package sdm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjtimmons/sdm/config"
)

func Test_protocol_q5(t *testing.T) {
	tests := []struct {
		name          string
		fwdTm, revTm  float64
		productLength int
		wantTa        float64
		wantExtension string
	}{
		{"annealing 3 °C over the cooler primer", 60, 62.4, 3000, 63, "1m30s"},
		{"short product", 58.2, 57.1, 400, 60.1, "20s"},
		{"capped at 72 °C", 71, 71.5, 6000, 72, "3m0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pair{Forward: Primer{Tm: tt.fwdTm}, Reverse: Primer{Tm: tt.revTm}, Strategy: config.BackToBack}
			got := protocol(p, Mutation{Type: Substitution, Bases: "G"}, tt.productLength)

			assert.Equal(t, "Q5 site-directed mutagenesis", got.Name)
			assert.InDelta(t, tt.wantTa, got.AnnealingTemp, 0.01)
			assert.Equal(t, 25, got.Cycles)
			require.Len(t, got.CycleSteps, 3)
			assert.Equal(t, got.AnnealingTemp, got.CycleSteps[1].TempC)
			assert.Equal(t, tt.wantExtension, got.CycleSteps[2].Duration)
			assert.NotEmpty(t, got.Notes)
		})
	}
}

func Test_protocol_quikChange(t *testing.T) {
	tests := []struct {
		name          string
		mutation      Mutation
		productLength int
		wantCycles    int
		wantExtension string
	}{
		{"point mutation", Mutation{Type: Substitution, Bases: "G"}, 3000, 12, "3m0s"},
		{"few bases", Mutation{Type: Substitution, Bases: "GAT"}, 3000, 16, "3m0s"},
		{"codon change", Mutation{Type: CodonChange, AminoAcid: "K"}, 4500, 16, "5m0s"},
		{"insertion", Mutation{Type: Insertion, Bases: "GGATCC"}, 800, 18, "1m0s"},
		{"deletion", Mutation{Type: Deletion, Length: 9}, 2000, 18, "2m0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pair{Forward: Primer{Tm: 70}, Reverse: Primer{Tm: 70}, Strategy: config.Overlapping}
			got := protocol(p, tt.mutation, tt.productLength)

			assert.Equal(t, "QuikChange site-directed mutagenesis", got.Name)
			assert.Equal(t, 65.0, got.AnnealingTemp)
			assert.Equal(t, tt.wantCycles, got.Cycles)
			require.Len(t, got.CycleSteps, 3)
			assert.Equal(t, 68.0, got.CycleSteps[2].TempC)
			assert.Equal(t, tt.wantExtension, got.CycleSteps[2].Duration)
		})
	}
}

func Test_protocol_quikChange_annealing(t *testing.T) {
	tests := []struct {
		name         string
		fwdTm, revTm float64
		wantTa       float64
	}{
		{"5 °C under the cooler primer", 66.4, 64.2, 59.2},
		{"floor of 55 °C", 58, 59, 55},
		{"ceiling of 68 °C", 78, 76.5, 68},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pair{Forward: Primer{Tm: tt.fwdTm}, Reverse: Primer{Tm: tt.revTm}, Strategy: config.Overlapping}
			got := protocol(p, Mutation{Type: Substitution, Bases: "G"}, 3000)

			assert.InDelta(t, tt.wantTa, got.AnnealingTemp, 0.01)
			assert.Equal(t, got.AnnealingTemp, got.CycleSteps[1].TempC)
		})
	}
}
