package manifest

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/salesreport-cli/internal/sales"
)

func TestNewAssignsRunID(t *testing.T) {
	a, b := New("a.csv"), New("a.csv")
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotNil(t, a.Outputs)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := New("data/SampleSuperstore.csv")
	m.InputRows = 3
	m.SourceFound = true
	m.CleanStats = sales.CleanStats{Records: 3, SalesDefaulted: 1}
	m.Add(Output{Report: "region_profitability", Path: "result/region_profitability.csv", Rows: 2})
	m.Add(Output{Report: "top_subcats_by_region", Skipped: true})
	m.Finish()

	path := filepath.Join(t.TempDir(), "out", FileName)
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Outputs, got.Outputs)
	assert.Equal(t, m.CleanStats, got.CleanStats)
	assert.True(t, got.FinishedAt.Equal(m.FinishedAt))
	assert.False(t, got.FinishedAt.Before(got.StartedAt))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
