// Package memory collects run records in memory and writes them to a JSON
// file, optionally gzipped, when the backend is closed.
package memory

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/storage"
	"github.com/sciencekit/sciencekit/internal/util"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// Export is the root JSON structure
type Export struct {
	Program    string        `json:"program"`
	ExportedAt time.Time     `json:"exportedAt"`
	Runs       []ExportedRun `json:"runs"`
}

// ExportedRun is a summary line plus the full record.
type ExportedRun struct {
	core.RunSummary
	Run core.Run `json:"run"`
}

// NewExport builds an Export of runs.
func NewExport(program string, at time.Time, runs []core.Run) Export {
	e := Export{Program: program, ExportedAt: at.UTC(), Runs: make([]ExportedRun, 0, len(runs))}
	for _, r := range runs {
		e.Runs = append(e.Runs, ExportedRun{RunSummary: core.Summarize(r), Run: r})
	}
	return e
}

// Backend stores runs in memory and exports to JSON
type Backend struct {
	cfg     config.MemoryConfig
	program string
	now     func() time.Time

	mu             sync.RWMutex
	runs           []core.Run
	lastExportPath string
}

// New creates a memory backend whose export file is named after program.
func New(cfg config.MemoryConfig, program string) *Backend {
	return &Backend{cfg: cfg, program: program, now: time.Now}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close writes the collected runs. Nothing is written when no run was recorded.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.runs) == 0 {
		return nil
	}

	at := b.runs[0].Meta().StartedAt
	if at.IsZero() {
		at = b.now()
	}
	path := filepath.Join(b.cfg.OutputDir, util.ExportFileName(b.program, at, b.cfg.CompressOutput))

	if err := storage.WriteJSONFile(path, NewExport(b.program, b.now(), b.runs), b.cfg.CompressOutput); err != nil {
		return fmt.Errorf("exporting runs: %w", err)
	}
	b.lastExportPath = path
	return nil
}

// GetExportedFilePath returns the file written by the last Close.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

func (b *Backend) add(r core.Run) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runs = append(b.runs, r)
	return nil
}

func (b *Backend) RecordTurbine(r *core.TurbineRun) error             { return b.add(r) }
func (b *Backend) RecordBloodPressure(r *core.BloodPressureRun) error { return b.add(r) }
func (b *Backend) RecordPlanting(r *core.PlantingRun) error           { return b.add(r) }
func (b *Backend) RecordGame(r *core.GameRun) error                   { return b.add(r) }
func (b *Backend) RecordSimulation(r *core.SimulationRun) error       { return b.add(r) }

// ListRuns returns runs recorded in this process, newest first.
func (b *Backend) ListRuns(program string, limit int) ([]core.RunSummary, error) {
	b.mu.RLock()
	var matched []core.Run
	for i := len(b.runs) - 1; i >= 0; i-- {
		if b.runs[i].Meta().Program == program {
			matched = append(matched, b.runs[i])
		}
	}
	b.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Meta().StartedAt.After(matched[j].Meta().StartedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]core.RunSummary, len(matched))
	for i, r := range matched {
		out[i] = core.Summarize(r)
	}
	return out, nil
}

// GetRun returns one recorded run by ID.
func (b *Backend) GetRun(program, runID string) (any, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.runs {
		if m := r.Meta(); m.Program == program && m.RunID == runID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%s run %s: %w", program, runID, storage.ErrRunNotFound)
}
