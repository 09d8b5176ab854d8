package gormstorage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sciencekit/sciencekit/internal/database"
	"github.com/sciencekit/sciencekit/internal/storage"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// Compile-time interface checks
var (
	_ storage.Backend   = (*Backend)(nil)
	_ storage.Historian = (*Backend)(nil)
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := database.GetSqliteDB("")
	require.NoError(t, err)

	b := New(Dependencies{DB: db})
	require.NoError(t, b.Init())
	t.Cleanup(func() { b.Close() })
	return b
}

func meta(program, id string, at time.Time) core.RunMeta {
	return core.RunMeta{RunID: id, Program: program, StartedAt: at}
}

func TestInit_NoDB(t *testing.T) {
	b := New(Dependencies{})
	assert.Error(t, b.Init())
	assert.NoError(t, b.Close())
}

func TestRecordAndListTurbine(t *testing.T) {
	b := newTestBackend(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, b.RecordTurbine(&core.TurbineRun{
			RunMeta:       meta(core.ProgramTurbine, id, base.Add(time.Duration(i)*time.Minute)),
			WindSpeed:     float64(i + 1),
			ActualPowerKW: 1,
		}))
	}

	runs, err := b.ListRuns(core.ProgramTurbine, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "t3", runs[0].RunID)
	assert.Equal(t, "t2", runs[1].RunID)
	assert.Equal(t, core.ProgramTurbine, runs[0].Program)
	assert.Contains(t, runs[0].Summary, "v=3 m/s")

	all, err := b.ListRuns(core.ProgramTurbine, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordAndGetEachProgram(t *testing.T) {
	b := newTestBackend(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, b.RecordBloodPressure(&core.BloodPressureRun{
		RunMeta: meta(core.ProgramBloodPressure, "bp", now), Systolic: 120, Diastolic: 80,
	}))
	require.NoError(t, b.RecordPlanting(&core.PlantingRun{
		RunMeta: meta(core.ProgramPlanting, "pl", now), Crop: "Peas",
		Dates: []core.PlantingDate{{Month: 4, Day: 1}},
	}))
	require.NoError(t, b.RecordGame(&core.GameRun{
		RunMeta: meta(core.ProgramClimateGame, "gm", now), Outcome: "won",
		Turns: []core.GameTurn{{Roll: 6}},
	}))
	require.NoError(t, b.RecordSimulation(&core.SimulationRun{
		RunMeta: meta(core.ProgramPopulation, "sim", now), CarryingCapacity: 100,
		Geometric: []core.PopulationSample{{Step: 10, Population: 2}},
		Logistic:  []core.PopulationSample{{Step: 10, Population: 3}},
	}))

	got, err := b.GetRun(core.ProgramPlanting, "pl")
	require.NoError(t, err)
	planting := got.(*core.PlantingRun)
	assert.Equal(t, "Peas", planting.Crop)
	assert.Equal(t, []core.PlantingDate{{Month: 4, Day: 1}}, planting.Dates)

	got, err = b.GetRun(core.ProgramClimateGame, "gm")
	require.NoError(t, err)
	assert.Len(t, got.(*core.GameRun).Turns, 1)

	got, err = b.GetRun(core.ProgramPopulation, "sim")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.(*core.SimulationRun).Logistic[0].Population)

	got, err = b.GetRun(core.ProgramBloodPressure, "bp")
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.(*core.BloodPressureRun).Systolic)
}

func TestGetRun_NotFound(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.GetRun(core.ProgramTurbine, "missing")
	assert.ErrorIs(t, err, storage.ErrRunNotFound)

	_, err = b.GetRun(core.ProgramTurbine, "")
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
}

func TestUnknownProgram(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.ListRuns("chess", 10)
	assert.Error(t, err)
}

func TestDuplicateRunID(t *testing.T) {
	b := newTestBackend(t)
	run := &core.TurbineRun{RunMeta: meta(core.ProgramTurbine, "dup", time.Now())}

	require.NoError(t, b.RecordTurbine(run))
	assert.Error(t, b.RecordTurbine(run))
}
