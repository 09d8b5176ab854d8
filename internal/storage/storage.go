// Package storage defines the run-record backend interfaces shared by every
// storage implementation.
package storage

import (
	"errors"

	"github.com/sciencekit/sciencekit/pkg/core"
)

// ErrRunNotFound is returned by Historian.GetRun for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Run recording
	RecordTurbine(r *core.TurbineRun) error
	RecordBloodPressure(r *core.BloodPressureRun) error
	RecordPlanting(r *core.PlantingRun) error
	RecordGame(r *core.GameRun) error
	RecordSimulation(r *core.SimulationRun) error
}

// Historian is an optional interface for backends that can read recorded
// runs back.
type Historian interface {
	// ListRuns returns the most recent runs of program, newest first.
	ListRuns(program string, limit int) ([]core.RunSummary, error)
	// GetRun returns the full run record (one of the core *Run types).
	GetRun(program, runID string) (any, error)
}

// Exportable is an optional interface for backends that write a file on Close.
type Exportable interface {
	GetExportedFilePath() string
}

// Noop discards every run. It is the backend for storage type "none".
type Noop struct{}

func (Noop) Init() error                                      { return nil }
func (Noop) Close() error                                     { return nil }
func (Noop) RecordTurbine(*core.TurbineRun) error             { return nil }
func (Noop) RecordBloodPressure(*core.BloodPressureRun) error { return nil }
func (Noop) RecordPlanting(*core.PlantingRun) error           { return nil }
func (Noop) RecordGame(*core.GameRun) error                   { return nil }
func (Noop) RecordSimulation(*core.SimulationRun) error       { return nil }
