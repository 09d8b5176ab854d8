package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"TurbineRun", &TurbineRun{}, "turbine_runs"},
		{"BloodPressureRun", &BloodPressureRun{}, "blood_pressure_runs"},
		{"PlantingRun", &PlantingRun{}, "planting_runs"},
		{"GameRun", &GameRun{}, "game_runs"},
		{"SimulationRun", &SimulationRun{}, "simulation_runs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModels(t *testing.T) {
	assert.Len(t, DatabaseModels, 5)
	for _, m := range DatabaseModels {
		_, ok := m.(interface{ TableName() string })
		assert.True(t, ok, "%T has no TableName", m)
	}
}
