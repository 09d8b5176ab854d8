// Package convert maps between run records in pkg/core and their GORM rows.
package convert

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sciencekit/sciencekit/internal/model"
	"github.com/sciencekit/sciencekit/pkg/core"
)

func modelRun(m core.RunMeta) model.Run {
	return model.Run{RunID: m.RunID, StartedAt: m.StartedAt}
}

func coreMeta(program string, r model.Run) core.RunMeta {
	return core.RunMeta{RunID: r.RunID, Program: program, StartedAt: r.StartedAt}
}

func toJSON(v any) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func fromJSON(data datatypes.JSON, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// CoreToTurbineRun converts a core.TurbineRun to its GORM row.
func CoreToTurbineRun(r *core.TurbineRun) *model.TurbineRun {
	return &model.TurbineRun{
		Run:           modelRun(r.RunMeta),
		WindSpeed:     r.WindSpeed,
		BladeRadius:   r.BladeRadius,
		Efficiency:    r.Efficiency,
		AirDensity:    r.AirDensity,
		SweptArea:     r.SweptArea,
		MaxPowerW:     r.MaxPowerW,
		ActualPowerW:  r.ActualPowerW,
		MaxPowerKW:    r.MaxPowerKW,
		ActualPowerKW: r.ActualPowerKW,
	}
}

// TurbineRunToCore converts a GORM row back to a core.TurbineRun.
func TurbineRunToCore(m *model.TurbineRun) *core.TurbineRun {
	return &core.TurbineRun{
		RunMeta:       coreMeta(core.ProgramTurbine, m.Run),
		WindSpeed:     m.WindSpeed,
		BladeRadius:   m.BladeRadius,
		Efficiency:    m.Efficiency,
		AirDensity:    m.AirDensity,
		SweptArea:     m.SweptArea,
		MaxPowerW:     m.MaxPowerW,
		ActualPowerW:  m.ActualPowerW,
		MaxPowerKW:    m.MaxPowerKW,
		ActualPowerKW: m.ActualPowerKW,
	}
}

func CoreToBloodPressureRun(r *core.BloodPressureRun) *model.BloodPressureRun {
	return &model.BloodPressureRun{
		Run:                  modelRun(r.RunMeta),
		Systolic:             r.Systolic,
		Diastolic:            r.Diastolic,
		PulsePressure:        r.PulsePressure,
		MeanArterialPressure: r.MeanArterialPressure,
		PulsePressureHigh:    r.PulsePressureHigh,
		MAPLow:               r.MAPLow,
	}
}

func BloodPressureRunToCore(m *model.BloodPressureRun) *core.BloodPressureRun {
	return &core.BloodPressureRun{
		RunMeta:              coreMeta(core.ProgramBloodPressure, m.Run),
		Systolic:             m.Systolic,
		Diastolic:            m.Diastolic,
		PulsePressure:        m.PulsePressure,
		MeanArterialPressure: m.MeanArterialPressure,
		PulsePressureHigh:    m.PulsePressureHigh,
		MAPLow:               m.MAPLow,
	}
}

// CoreToPlantingRun converts a schedule, storing its dates as JSON.
func CoreToPlantingRun(r *core.PlantingRun) (*model.PlantingRun, error) {
	dates, err := toJSON(r.Dates)
	if err != nil {
		return nil, fmt.Errorf("encoding planting dates: %w", err)
	}
	return &model.PlantingRun{
		Run:            modelRun(r.RunMeta),
		Crop:           r.Crop,
		StartMonth:     r.Start.Month,
		StartDay:       r.Start.Day,
		DaysToMaturity: r.DaysToMaturity,
		Dates:          dates,
	}, nil
}

func PlantingRunToCore(m *model.PlantingRun) (*core.PlantingRun, error) {
	r := &core.PlantingRun{
		RunMeta:        coreMeta(core.ProgramPlanting, m.Run),
		Crop:           m.Crop,
		Start:          core.PlantingDate{Month: m.StartMonth, Day: m.StartDay},
		DaysToMaturity: m.DaysToMaturity,
	}
	if err := fromJSON(m.Dates, &r.Dates); err != nil {
		return nil, fmt.Errorf("decoding planting dates: %w", err)
	}
	return r, nil
}

// CoreToGameRun converts a game, storing its turns as JSON.
func CoreToGameRun(r *core.GameRun) (*model.GameRun, error) {
	turns, err := toJSON(r.Turns)
	if err != nil {
		return nil, fmt.Errorf("encoding game turns: %w", err)
	}
	return &model.GameRun{
		Run:           modelRun(r.RunMeta),
		FinalScore:    r.FinalScore,
		FinalPosition: r.FinalPosition,
		Outcome:       r.Outcome,
		TurnCount:     len(r.Turns),
		Turns:         turns,
	}, nil
}

func GameRunToCore(m *model.GameRun) (*core.GameRun, error) {
	r := &core.GameRun{
		RunMeta:       coreMeta(core.ProgramClimateGame, m.Run),
		FinalScore:    m.FinalScore,
		FinalPosition: m.FinalPosition,
		Outcome:       m.Outcome,
	}
	if err := fromJSON(m.Turns, &r.Turns); err != nil {
		return nil, fmt.Errorf("decoding game turns: %w", err)
	}
	return r, nil
}

// CoreToSimulationRun converts a simulation, storing both sample series as JSON.
func CoreToSimulationRun(r *core.SimulationRun) (*model.SimulationRun, error) {
	geo, err := toJSON(r.Geometric)
	if err != nil {
		return nil, fmt.Errorf("encoding geometric samples: %w", err)
	}
	logi, err := toJSON(r.Logistic)
	if err != nil {
		return nil, fmt.Errorf("encoding logistic samples: %w", err)
	}
	return &model.SimulationRun{
		Run:               modelRun(r.RunMeta),
		BirthRate:         r.BirthRate,
		DeathRate:         r.DeathRate,
		CarryingCapacity:  r.CarryingCapacity,
		InitialPopulation: r.InitialPopulation,
		Geometric:         geo,
		Logistic:          logi,
	}, nil
}

func SimulationRunToCore(m *model.SimulationRun) (*core.SimulationRun, error) {
	r := &core.SimulationRun{
		RunMeta:           coreMeta(core.ProgramPopulation, m.Run),
		BirthRate:         m.BirthRate,
		DeathRate:         m.DeathRate,
		CarryingCapacity:  m.CarryingCapacity,
		InitialPopulation: m.InitialPopulation,
	}
	if err := fromJSON(m.Geometric, &r.Geometric); err != nil {
		return nil, fmt.Errorf("decoding geometric samples: %w", err)
	}
	if err := fromJSON(m.Logistic, &r.Logistic); err != nil {
		return nil, fmt.Errorf("decoding logistic samples: %w", err)
	}
	return r, nil
}
