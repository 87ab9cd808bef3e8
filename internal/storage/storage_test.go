package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	runs := []Run{
		{FEN: startFEN, Depth: 3, Nodes: 8902, Expected: 8902, Checked: true, Elapsed: time.Millisecond, StartedAt: base},
		{FEN: startFEN, Depth: 4, Nodes: 197280, Expected: 197281, Checked: true, Elapsed: 20 * time.Millisecond, StartedAt: base.Add(time.Second)},
		{FEN: "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", Depth: 2, Nodes: 94, StartedAt: base.Add(2 * time.Second)},
		{FEN: startFEN, Depth: 3, Nodes: 8902, StartedAt: base.Add(3 * time.Second)},
	}
	for _, r := range runs {
		require.NoError(t, s.RecordRun(r))
	}

	t.Run("History", func(t *testing.T) {
		all, err := s.History("", 0)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.True(t, all[0].StartedAt.Equal(runs[3].StartedAt), "newest first")
		assert.True(t, all[3].StartedAt.Equal(runs[0].StartedAt))
		assert.Equal(t, int64(94), all[1].Nodes)
	})

	t.Run("HistoryLimitAndFilter", func(t *testing.T) {
		two, err := s.History("", 2)
		require.NoError(t, err)
		assert.Len(t, two, 2)

		start, err := s.History(startFEN, 0)
		require.NoError(t, err)
		assert.Len(t, start, 3)
		for _, r := range start {
			assert.Equal(t, startFEN, r.FEN)
		}
	})

	t.Run("LastRun", func(t *testing.T) {
		r, ok, err := s.LastRun(startFEN, 3)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, r.StartedAt.Equal(runs[3].StartedAt))

		r, ok, err = s.LastRun(startFEN, 4)
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, r.Passed())

		_, ok, err = s.LastRun(startFEN, 7)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, s.Clear())
		all, err := s.History("", 0)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestRecordRunSameInstant(t *testing.T) {
	s := openTemp(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordRun(Run{FEN: startFEN, Depth: 1, Nodes: 20, StartedAt: at}))
	require.NoError(t, s.RecordRun(Run{FEN: startFEN, Depth: 2, Nodes: 400, StartedAt: at}))
	require.NoError(t, s.RecordRun(Run{FEN: startFEN, Depth: 3, Nodes: 8902}))

	all, err := s.History("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRun(t *testing.T) {
	r := Run{Nodes: 1000, Elapsed: 2 * time.Second}
	assert.True(t, r.Passed())
	assert.InDelta(t, 500.0, r.NPS(), 1e-9)

	r.Expected = 999
	assert.True(t, r.Passed(), "unchecked runs pass")
	r.Checked = true
	assert.False(t, r.Passed())

	assert.Zero(t, Run{Nodes: 5}.NPS())
}

func TestDataPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DataDirEnv, dir)

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	_, err = os.Stat(dbDir)
	assert.NoError(t, err, "database directory was not created")
}
