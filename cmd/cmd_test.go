package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func Test_designArgs(t *testing.T) {
	defer func() { designFile = "" }()

	sequence, mutation, circular, err := designArgs([]string{"ACGT", "sub:1:G"})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", sequence)
	assert.Equal(t, "sub:1:G", mutation)
	assert.False(t, circular)

	_, _, _, err = designArgs([]string{"sub:1:G"})
	assert.Error(t, err)

	designFile = filepath.Join(t.TempDir(), "pTest.fa")
	require.NoError(t, os.WriteFile(designFile, []byte(">pTest circular\nACGT\nACGT\n"), 0644))
	sequence, mutation, circular, err = designArgs([]string{"del:2:1"})
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGT", sequence)
	assert.Equal(t, "del:2:1", mutation)
	assert.True(t, circular)

	_, _, _, err = designArgs([]string{"ACGT", "del:2:1"})
	assert.Error(t, err)
}

func Test_codonCmd(t *testing.T) {
	defer func() { codonOrganism = "" }()

	out, err := execute(t, "codon", "GAA", "D", "--organism", "ecoli")
	require.NoError(t, err)
	assert.Contains(t, out, "GAA -> GAT (1 changes)")
	assert.Contains(t, out, "GAC GAT")

	_, err = execute(t, "codon", "GAA", "DE")
	assert.Error(t, err)
}

func Test_tmCmd(t *testing.T) {
	defer func() { tmOutput = "text" }()

	out, err := execute(t, "tm", "ACGTTGCAAGCTGACCTGAA", "ACGTTGCAAGGTGACCTGAA", "--output", "json")
	require.NoError(t, err)

	var result struct {
		Tm            float64 `json:"tm"`
		MismatchCount int     `json:"mismatchCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.MismatchCount)
	assert.Greater(t, result.Tm, 0.0)

	_, err = execute(t, "tm", "ACGT", "ACG")
	assert.Error(t, err)
}
