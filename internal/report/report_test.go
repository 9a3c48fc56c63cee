package report

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/contriboss/observe-go"
)

func sampleStats() []observe.TierStats {
	return []observe.TierStats{
		{
			Experiment: "minepump", Arity: 1, ValidConfigurations: big.NewInt(48), Features: 9,
			PFAs: 18, Valid: 16, Invalid: 2, Direct: 14, Indirect: 0, Unobservable: 2,
			Elapsed: 1500 * time.Millisecond,
		},
		{
			Experiment: "minepump", Arity: 2, ValidConfigurations: big.NewInt(48), Features: 9,
			PFAs: 144, Valid: 120, Invalid: 24, Direct: 100, Indirect: 12, Unobservable: 8,
			Elapsed: 250 * time.Millisecond,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleStats()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.Equal(t, "minepump,1,48,9,18,16,2,14,0,2,1.5", lines[1])
	assert.Equal(t, "minepump,2,48,9,144,120,24,100,12,8,0.25", lines[2])
}

func TestSaveCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	path, err := SaveCSV(dir, "minepump", sampleStats())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "minepump_statistics.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Experiment,PFA_size,"))
}

func TestWriteYAML(t *testing.T) {
	stats := sampleStats()
	stats[0].ValidConfigurations = new(big.Int).Lsh(big.NewInt(1), 100)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, stats))

	var tiers []Tier
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &tiers))
	require.Len(t, tiers, 2)
	assert.Equal(t, "1267650600228229401496703205376", tiers[0].ValidConfigurations)
	assert.Equal(t, 2, tiers[1].Arity)
	assert.InDelta(t, 0.25, tiers[1].Seconds, 1e-9)
	assert.NotContains(t, buf.String(), "rejected")
}

func TestTable(t *testing.T) {
	out := Table(sampleStats())
	for _, want := range []string{"experiment", "indirect", "minepump", "144", "1.5s"} {
		assert.Contains(t, out, want)
	}
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "all experiments exist")
	Failure(&buf, "experiment toy does not exist")
	Info(&buf, "reading model")

	out := buf.String()
	assert.Contains(t, out, "all experiments exist")
	assert.Contains(t, out, "experiment toy does not exist")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}
