package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&TurbineRun{},
	&BloodPressureRun{},
	&PlantingRun{},
	&GameRun{},
	&SimulationRun{},
}

// Run holds the columns every run table shares.
type Run struct {
	RunID     string    `json:"runId" gorm:"size:36;uniqueIndex"`
	StartedAt time.Time `json:"startedAt" gorm:"index"`
}

// TurbineRun is one wind turbine calculation
type TurbineRun struct {
	gorm.Model
	Run           `gorm:"embedded"`
	WindSpeed     float64 `json:"windSpeed"`
	BladeRadius   float64 `json:"bladeRadius"`
	Efficiency    float64 `json:"efficiency"`
	AirDensity    float64 `json:"airDensity"`
	SweptArea     float64 `json:"sweptArea"`
	MaxPowerW     float64 `json:"maxPowerW"`
	ActualPowerW  float64 `json:"actualPowerW"`
	MaxPowerKW    float64 `json:"maxPowerKW"`
	ActualPowerKW float64 `json:"actualPowerKW"`
}

func (*TurbineRun) TableName() string {
	return "turbine_runs"
}

// BloodPressureRun is one accepted blood pressure reading
type BloodPressureRun struct {
	gorm.Model
	Run                  `gorm:"embedded"`
	Systolic             float64 `json:"systolic"`
	Diastolic            float64 `json:"diastolic"`
	PulsePressure        float64 `json:"pulsePressure"`
	MeanArterialPressure float64 `json:"meanArterialPressure"`
	PulsePressureHigh    bool    `json:"pulsePressureHigh"`
	MAPLow               bool    `json:"mapLow" gorm:"column:map_low"`
}

func (*BloodPressureRun) TableName() string {
	return "blood_pressure_runs"
}

// PlantingRun is one generated schedule. Dates is a JSON array of
// {"month","day"} objects.
type PlantingRun struct {
	gorm.Model
	Run            `gorm:"embedded"`
	Crop           string         `json:"crop" gorm:"size:127"`
	StartMonth     int            `json:"startMonth"`
	StartDay       int            `json:"startDay"`
	DaysToMaturity int            `json:"daysToMaturity"`
	Dates          datatypes.JSON `json:"dates"`
}

func (*PlantingRun) TableName() string {
	return "planting_runs"
}

// GameRun is one climate game. Turns is a JSON array of rolls.
type GameRun struct {
	gorm.Model
	Run           `gorm:"embedded"`
	FinalScore    int            `json:"finalScore"`
	FinalPosition int            `json:"finalPosition"`
	Outcome       string         `json:"outcome" gorm:"size:31;index"`
	TurnCount     int            `json:"turnCount"`
	Turns         datatypes.JSON `json:"turns"`
}

func (*GameRun) TableName() string {
	return "game_runs"
}

// SimulationRun is one population simulation. Geometric and Logistic are
// JSON arrays of sampled {"step","population"} pairs.
type SimulationRun struct {
	gorm.Model
	Run               `gorm:"embedded"`
	BirthRate         float64        `json:"birthRate"`
	DeathRate         float64        `json:"deathRate"`
	CarryingCapacity  int            `json:"carryingCapacity"`
	InitialPopulation int            `json:"initialPopulation"`
	Geometric         datatypes.JSON `json:"geometric"`
	Logistic          datatypes.JSON `json:"logistic"`
}

func (*SimulationRun) TableName() string {
	return "simulation_runs"
}
