package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsProgram(t *testing.T) {
	for _, p := range Programs {
		assert.True(t, IsProgram(p), p)
	}
	assert.False(t, IsProgram("history"))
	assert.False(t, IsProgram(""))
}

func TestSummarize(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	meta := RunMeta{RunID: "id-1", Program: ProgramTurbine, StartedAt: start}

	tests := []struct {
		name string
		run  Run
		want string
	}{
		{
			name: "turbine",
			run:  &TurbineRun{RunMeta: meta, WindSpeed: 10, BladeRadius: 5, Efficiency: 40, ActualPowerKW: 18.8496},
			want: "v=10 m/s r=5 m eff=40% -> 18.85 kW",
		},
		{
			name: "blood pressure",
			run:  &BloodPressureRun{RunMeta: meta, Systolic: 200, Diastolic: 100, PulsePressure: 100, MeanArterialPressure: 133.333, PulsePressureHigh: true},
			want: "200/100 mmHg PP=100.00 MAP=133.33 (high PP)",
		},
		{
			name: "planting",
			run:  &PlantingRun{RunMeta: meta, Crop: "Beans", Start: PlantingDate{4, 1}, DaysToMaturity: 30, Dates: make([]PlantingDate, 5)},
			want: "Beans from 4/1, 30 days: 5 plantings",
		},
		{
			name: "game",
			run:  &GameRun{RunMeta: meta, Outcome: "won", FinalPosition: 24, FinalScore: 69, Turns: make([]GameTurn, 8)},
			want: "won at spot 25 with 69 points after 8 rolls",
		},
		{
			name: "simulation",
			run: &SimulationRun{
				RunMeta: meta, BirthRate: 0.3, DeathRate: 0.1, CarryingCapacity: 1000, InitialPopulation: 100,
				Geometric: []PopulationSample{{Step: 100, Population: 1.5}},
				Logistic:  []PopulationSample{{Step: 100, Population: 999.999}},
			},
			want: "r=0.19999999999999998 K=1000 P0=100 -> geometric 1.50, logistic 1000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.run)
			assert.Equal(t, "id-1", s.RunID)
			assert.Equal(t, ProgramTurbine, s.Program)
			assert.Equal(t, start, s.StartedAt)
			assert.Equal(t, tt.want, s.Summary)
		})
	}
}

func TestRunJSONFlattensMeta(t *testing.T) {
	run := &GameRun{
		RunMeta: RunMeta{RunID: "abc", Program: ProgramClimateGame},
		Outcome: "catastrophe",
		Turns:   []GameTurn{{Roll: 6, Rejected: true}},
	}
	data, err := json.Marshal(run)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc", raw["runId"])
	assert.Equal(t, "climategame", raw["program"])
	assert.Equal(t, "catastrophe", raw["outcome"])
	assert.NotContains(t, raw["turns"].([]any)[0], "event")
}
