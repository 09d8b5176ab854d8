package core

import (
	"fmt"
	"time"
)

// Program names, used as storage keys, log attributes and launcher commands.
const (
	ProgramTurbine       = "turbine"
	ProgramBloodPressure = "bloodpressure"
	ProgramPlanting      = "planting"
	ProgramClimateGame   = "climategame"
	ProgramPopulation    = "population"
)

// Programs lists every program in launcher order.
var Programs = []string{
	ProgramTurbine,
	ProgramBloodPressure,
	ProgramPlanting,
	ProgramClimateGame,
	ProgramPopulation,
}

// IsProgram reports whether name is one of Programs.
func IsProgram(name string) bool {
	for _, p := range Programs {
		if p == name {
			return true
		}
	}
	return false
}

// Run is implemented by every run record type.
type Run interface {
	Meta() RunMeta
	Summary() string
}

// RunMeta is shared by every run record
type RunMeta struct {
	RunID     string    `json:"runId"`
	Program   string    `json:"program"`
	StartedAt time.Time `json:"startedAt"`
}

// Meta returns m; embedding RunMeta promotes it onto the run types.
func (m RunMeta) Meta() RunMeta { return m }

// RunSummary is a single line of run history
type RunSummary struct {
	RunID     string    `json:"runId"`
	Program   string    `json:"program"`
	StartedAt time.Time `json:"startedAt"`
	Summary   string    `json:"summary"`
}

// Summarize builds the history line for r.
func Summarize(r Run) RunSummary {
	m := r.Meta()
	return RunSummary{
		RunID:     m.RunID,
		Program:   m.Program,
		StartedAt: m.StartedAt,
		Summary:   r.Summary(),
	}
}

// TurbineRun records one wind turbine calculation
type TurbineRun struct {
	RunMeta
	WindSpeed     float64 `json:"windSpeed"`   // m/s
	BladeRadius   float64 `json:"bladeRadius"` // m
	Efficiency    float64 `json:"efficiency"`  // percent
	AirDensity    float64 `json:"airDensity"`  // kg/m^3
	SweptArea     float64 `json:"sweptArea"`   // m^2
	MaxPowerW     float64 `json:"maxPowerW"`
	ActualPowerW  float64 `json:"actualPowerW"`
	MaxPowerKW    float64 `json:"maxPowerKW"`
	ActualPowerKW float64 `json:"actualPowerKW"`
}

func (r *TurbineRun) Summary() string {
	return fmt.Sprintf("v=%g m/s r=%g m eff=%g%% -> %.2f kW", r.WindSpeed, r.BladeRadius, r.Efficiency, r.ActualPowerKW)
}

// BloodPressureRun records one accepted blood pressure reading
type BloodPressureRun struct {
	RunMeta
	Systolic             float64 `json:"systolic"`
	Diastolic            float64 `json:"diastolic"`
	PulsePressure        float64 `json:"pulsePressure"`
	MeanArterialPressure float64 `json:"meanArterialPressure"`
	PulsePressureHigh    bool    `json:"pulsePressureHigh"`
	MAPLow               bool    `json:"mapLow"`
}

func (r *BloodPressureRun) Summary() string {
	s := fmt.Sprintf("%g/%g mmHg PP=%.2f MAP=%.2f", r.Systolic, r.Diastolic, r.PulsePressure, r.MeanArterialPressure)
	if r.PulsePressureHigh {
		s += " (high PP)"
	}
	if r.MAPLow {
		s += " (low MAP)"
	}
	return s
}

// PlantingDate is a (month, day) pair in the fixed non-leap calendar
type PlantingDate struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

// PlantingRun records one generated planting schedule
type PlantingRun struct {
	RunMeta
	Crop           string         `json:"crop"`
	Start          PlantingDate   `json:"start"`
	DaysToMaturity int            `json:"daysToMaturity"`
	Dates          []PlantingDate `json:"dates"`
}

func (r *PlantingRun) Summary() string {
	return fmt.Sprintf("%s from %d/%d, %d days: %d plantings", r.Crop, r.Start.Month, r.Start.Day, r.DaysToMaturity, len(r.Dates))
}

// GameTurn is one roll of the climate game. Rejected rolls leave Position
// and Score unchanged.
type GameTurn struct {
	Roll     int    `json:"roll"`
	Rejected bool   `json:"rejected"`
	Position int    `json:"position"`
	Event    string `json:"event,omitempty"`
	Delta    int    `json:"delta"`
	Score    int    `json:"score"`
}

// GameRun records one finished (or abandoned) climate game
type GameRun struct {
	RunMeta
	FinalScore    int        `json:"finalScore"`
	FinalPosition int        `json:"finalPosition"`
	Outcome       string     `json:"outcome"`
	Turns         []GameTurn `json:"turns"`
}

func (r *GameRun) Summary() string {
	return fmt.Sprintf("%s at spot %d with %d points after %d rolls", r.Outcome, r.FinalPosition+1, r.FinalScore, len(r.Turns))
}

// PopulationSample is the population of one model at one sampled step
type PopulationSample struct {
	Step       int     `json:"step"`
	Population float64 `json:"population"`
}

// SimulationRun records one population simulation of both models
type SimulationRun struct {
	RunMeta
	BirthRate         float64            `json:"birthRate"`
	DeathRate         float64            `json:"deathRate"`
	CarryingCapacity  int                `json:"carryingCapacity"`
	InitialPopulation int                `json:"initialPopulation"`
	Geometric         []PopulationSample `json:"geometric"`
	Logistic          []PopulationSample `json:"logistic"`
}

func (r *SimulationRun) Summary() string {
	s := fmt.Sprintf("r=%g K=%d P0=%d", r.BirthRate-r.DeathRate, r.CarryingCapacity, r.InitialPopulation)
	if n := len(r.Geometric); n > 0 && len(r.Logistic) == n {
		s += fmt.Sprintf(" -> geometric %.2f, logistic %.2f", r.Geometric[n-1].Population, r.Logistic[n-1].Population)
	}
	return s
}
