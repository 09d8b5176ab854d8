// Package gormstorage implements storage.Backend and storage.Historian on
// any GORM dialect. The sqlite and postgres backends wrap it.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/sciencekit/sciencekit/internal/database"
	"github.com/sciencekit/sciencekit/internal/model"
	"github.com/sciencekit/sciencekit/internal/model/convert"
	"github.com/sciencekit/sciencekit/internal/storage"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// Backend writes each run as one row.
type Backend struct {
	db  *gorm.DB
	log *slog.Logger
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	log := deps.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Backend{db: deps.DB, log: log}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the run tables.
func (b *Backend) Init() error {
	if b.db == nil {
		return errors.New("gorm backend has no database")
	}
	if err := database.Setup(b.db); err != nil {
		return err
	}
	b.log.Debug("Database schema ready", "dialect", b.db.Dialector.Name())
	return nil
}

// Close closes the connection pool.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return database.Close(b.db)
}

func (b *Backend) create(program string, row any) error {
	if err := b.db.Create(row).Error; err != nil {
		b.log.Error("Failed to record run", "program", program, "error", err)
		return fmt.Errorf("recording %s run: %w", program, err)
	}
	b.log.Debug("Recorded run", "program", program)
	return nil
}

func (b *Backend) RecordTurbine(r *core.TurbineRun) error {
	return b.create(core.ProgramTurbine, convert.CoreToTurbineRun(r))
}

func (b *Backend) RecordBloodPressure(r *core.BloodPressureRun) error {
	return b.create(core.ProgramBloodPressure, convert.CoreToBloodPressureRun(r))
}

func (b *Backend) RecordPlanting(r *core.PlantingRun) error {
	row, err := convert.CoreToPlantingRun(r)
	if err != nil {
		return err
	}
	return b.create(core.ProgramPlanting, row)
}

func (b *Backend) RecordGame(r *core.GameRun) error {
	row, err := convert.CoreToGameRun(r)
	if err != nil {
		return err
	}
	return b.create(core.ProgramClimateGame, row)
}

func (b *Backend) RecordSimulation(r *core.SimulationRun) error {
	row, err := convert.CoreToSimulationRun(r)
	if err != nil {
		return err
	}
	return b.create(core.ProgramPopulation, row)
}

// fetch loads rows of M, newest first. A non-empty runID selects one row;
// limit <= 0 means no limit.
func fetch[M any](db *gorm.DB, runID string, limit int, toCore func(*M) (core.Run, error)) ([]core.Run, error) {
	var rows []M
	q := db.Order("started_at desc").Order("id desc")
	if runID != "" {
		q = q.Where("run_id = ?", runID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	runs := make([]core.Run, 0, len(rows))
	for i := range rows {
		r, err := toCore(&rows[i])
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, nil
}

func (b *Backend) query(program, runID string, limit int) ([]core.Run, error) {
	switch program {
	case core.ProgramTurbine:
		return fetch(b.db, runID, limit, func(m *model.TurbineRun) (core.Run, error) {
			return convert.TurbineRunToCore(m), nil
		})
	case core.ProgramBloodPressure:
		return fetch(b.db, runID, limit, func(m *model.BloodPressureRun) (core.Run, error) {
			return convert.BloodPressureRunToCore(m), nil
		})
	case core.ProgramPlanting:
		return fetch(b.db, runID, limit, func(m *model.PlantingRun) (core.Run, error) {
			return convert.PlantingRunToCore(m)
		})
	case core.ProgramClimateGame:
		return fetch(b.db, runID, limit, func(m *model.GameRun) (core.Run, error) {
			return convert.GameRunToCore(m)
		})
	case core.ProgramPopulation:
		return fetch(b.db, runID, limit, func(m *model.SimulationRun) (core.Run, error) {
			return convert.SimulationRunToCore(m)
		})
	default:
		return nil, fmt.Errorf("unknown program: %s", program)
	}
}

// ListRuns returns the most recent runs of program, newest first.
func (b *Backend) ListRuns(program string, limit int) ([]core.RunSummary, error) {
	runs, err := b.query(program, "", limit)
	if err != nil {
		return nil, err
	}
	out := make([]core.RunSummary, len(runs))
	for i, r := range runs {
		out[i] = core.Summarize(r)
	}
	return out, nil
}

// GetRun returns one run of program by ID.
func (b *Backend) GetRun(program, runID string) (any, error) {
	if runID == "" {
		return nil, storage.ErrRunNotFound
	}
	runs, err := b.query(program, runID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%s run %s: %w", program, runID, storage.ErrRunNotFound)
	}
	return runs[0], nil
}
