package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/dispatcher"
	"github.com/sciencekit/sciencekit/internal/logging"
	"github.com/sciencekit/sciencekit/internal/storage"
	sqlitestorage "github.com/sciencekit/sciencekit/internal/storage/sqlite"
	"github.com/sciencekit/sciencekit/pkg/core"
)

var started = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *sqlitestorage.Backend {
	t.Helper()
	b := sqlitestorage.New(config.SQLiteConfig{}, nil)
	require.NoError(t, b.Init())
	t.Cleanup(func() { b.Close() })

	for i, id := range []string{"p1", "p2"} {
		require.NoError(t, b.RecordSimulation(&core.SimulationRun{
			RunMeta:           core.RunMeta{RunID: id, Program: core.ProgramPopulation, StartedAt: started.Add(time.Duration(i) * time.Hour)},
			BirthRate:         0.3,
			DeathRate:         0.1,
			CarryingCapacity:  1000,
			InitialPopulation: 100,
		}))
	}
	return b
}

func TestHistory(t *testing.T) {
	b := seededStore(t)
	var out bytes.Buffer

	require.NoError(t, history(&out, b, []string{core.ProgramPopulation, "1"}))

	assert.Contains(t, out.String(), "p2")
	assert.NotContains(t, out.String(), "p1")
	assert.Contains(t, out.String(), "K=1000 P0=100")
}

func TestHistory_Empty(t *testing.T) {
	b := seededStore(t)
	var out bytes.Buffer

	require.NoError(t, history(&out, b, []string{core.ProgramTurbine}))
	assert.Equal(t, "No turbine runs recorded.\n", out.String())
}

func TestHistory_BadArgs(t *testing.T) {
	b := seededStore(t)

	assert.Error(t, history(&bytes.Buffer{}, b, nil))
	assert.Error(t, history(&bytes.Buffer{}, b, []string{"chess"}))
	assert.Error(t, history(&bytes.Buffer{}, b, []string{core.ProgramTurbine, "zero"}))
	assert.Error(t, history(&bytes.Buffer{}, b, []string{core.ProgramTurbine, "0"}))
}

func TestHistory_NoHistorian(t *testing.T) {
	err := history(&bytes.Buffer{}, storage.Noop{}, []string{core.ProgramTurbine})
	assert.ErrorIs(t, err, errNoHistory)
}

func TestExport(t *testing.T) {
	b := seededStore(t)
	dir := t.TempDir()

	paths, err := export(dir, b, []string{core.ProgramPopulation, "p1"}, started)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "population_20250601_090000.json.gz"), paths[0])

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(gz).Decode(&raw))
	runs := raw["runs"].([]any)
	require.Len(t, runs, 1)
	assert.Equal(t, "p1", runs[0].(map[string]any)["runId"])
}

func TestExport_MissingRun(t *testing.T) {
	b := seededStore(t)

	paths, err := export(t.TempDir(), b, []string{core.ProgramPopulation, "p1", "nope"}, started)
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
	assert.Len(t, paths, 1)
}

func TestExport_NoIDs(t *testing.T) {
	_, err := export(t.TempDir(), seededStore(t), []string{core.ProgramPopulation}, started)
	assert.Error(t, err)
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SCIENCEKIT_CONFIG_DIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{"chess"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), `unknown command "chess"`)
	assert.Contains(t, stderr.String(), "climategame")
}

func TestRun_UnknownCommandSkipsSetup(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	logsDir := filepath.Join(dir, "logs")
	dbPath := filepath.Join(dir, "runs.db")
	cfg := `{
		"logsDir": "` + filepath.ToSlash(logsDir) + `",
		"storage": { "type": "sqlite", "sqlite": { "path": "` + filepath.ToSlash(dbPath) + `" } }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg), 0644))
	t.Setenv("SCIENCEKIT_CONFIG_DIR", dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{"../escape"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), `unknown command "../escape"`)
	assert.NoDirExists(t, logsDir)
	assert.NoFileExists(t, dbPath)

	matches, err := filepath.Glob(filepath.Join(dir, "escape*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCommandList_MatchesRegisteredCommands(t *testing.T) {
	d, err := dispatcher.New(logging.NewDispatcherLogger(zerolog.Nop()), noop.Meter{})
	require.NoError(t, err)
	registerCommands(d, nil)

	var described []dispatcher.Command
	for _, c := range d.Commands() {
		if c.Description != "" {
			described = append(described, c)
		}
	}
	assert.Equal(t, described, commandList())

	for _, c := range commandList() {
		assert.True(t, isCommand(c.Name), c.Name)
		assert.True(t, d.HasHandler(c.Name), c.Name)
	}
	assert.True(t, isCommand("help"))
	assert.False(t, isCommand("../escape"))
}

func TestRun_PlantingRejectsFrostOutsideCalendar(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	cfg := `{ "planting": { "frostMonth": 14, "frostDay": 1 } }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg), 0644))
	t.Setenv("SCIENCEKIT_CONFIG_DIR", dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{core.ProgramPlanting}, strings.NewReader("Beans\n12\n1\n30\n"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "frost date is not a calendar date")
	assert.NotContains(t, stdout.String(), "Planting Schedule")
}

func TestRun_Help(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SCIENCEKIT_CONFIG_DIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "usage: sciencekit")
	assert.Contains(t, stdout.String(), "history <program> [limit]")
}

func TestRun_Program(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SCIENCEKIT_CONFIG_DIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{core.ProgramBloodPressure}, strings.NewReader("80\n90\n"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Systolic pressure must be greater than diastolic pressure.")
	assert.Empty(t, stderr.String())
}
