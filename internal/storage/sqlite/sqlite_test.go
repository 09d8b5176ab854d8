package sqlitestorage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/storage"
	"github.com/sciencekit/sciencekit/pkg/core"
)

var (
	_ storage.Backend   = (*Backend)(nil)
	_ storage.Historian = (*Backend)(nil)
)

func TestRunsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")

	b := New(config.SQLiteConfig{Path: path}, nil)
	require.NoError(t, b.Init())
	require.NoError(t, b.RecordGame(&core.GameRun{
		RunMeta: core.RunMeta{RunID: "g1", Program: core.ProgramClimateGame, StartedAt: time.Now()},
		Outcome: "catastrophe",
	}))
	require.NoError(t, b.Close())
	assert.FileExists(t, path)

	reopened := New(config.SQLiteConfig{Path: path}, nil)
	require.NoError(t, reopened.Init())
	defer reopened.Close()

	runs, err := reopened.ListRuns(core.ProgramClimateGame, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "g1", runs[0].RunID)
}

func TestInMemory(t *testing.T) {
	b := New(config.SQLiteConfig{}, nil)
	require.NoError(t, b.Init())
	defer b.Close()

	runs, err := b.ListRuns(core.ProgramTurbine, 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCloseWithoutInit(t *testing.T) {
	assert.NoError(t, New(config.SQLiteConfig{}, nil).Close())
}
