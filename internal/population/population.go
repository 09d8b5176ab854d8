// Package population simulates geometric and logistic population growth
// over a fixed number of discrete time steps.
package population

import (
	"context"
	"fmt"
	"time"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/pkg/core"
)

const (
	// Steps is the length of every simulation.
	Steps = 100
	// SampleEvery is the sampling interval in steps.
	SampleEvery = 10
)

// Model selects the update rule.
type Model int

const (
	Geometric Model = iota
	Logistic
)

func (m Model) String() string {
	switch m {
	case Geometric:
		return "geometric"
	case Logistic:
		return "logistic"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Params are the validated simulation inputs.
type Params struct {
	BirthRate         float64
	DeathRate         float64
	CarryingCapacity  int
	InitialPopulation int
}

// GrowthRate is r = birth - death.
func (p Params) GrowthRate() float64 {
	return p.BirthRate - p.DeathRate
}

// Sample is the population at one sampled step.
type Sample struct {
	Step       int
	Population float64
}

// Step applies one update of model m to pop, floored at zero.
func Step(m Model, pop, r float64, k int) float64 {
	switch m {
	case Geometric:
		pop += r * pop
	case Logistic:
		pop += r * (1 - pop/float64(k)) * pop
	}
	if pop < 0 {
		pop = 0
	}
	return pop
}

// Simulate runs Steps updates of model m and returns every SampleEvery-th
// population.
func Simulate(p Params, m Model) []Sample {
	r := p.GrowthRate()
	pop := float64(p.InitialPopulation)
	samples := make([]Sample, 0, Steps/SampleEvery)

	for step := 1; step <= Steps; step++ {
		pop = Step(m, pop, r, p.CarryingCapacity)
		if step%SampleEvery == 0 {
			samples = append(samples, Sample{Step: step, Population: pop})
		}
	}
	return samples
}

// Comparison is one sampled step of both models.
type Comparison struct {
	Step      int
	Geometric float64
	Logistic  float64
}

// Compare runs both models from the same parameters and zips the samples.
func Compare(p Params) []Comparison {
	geo := Simulate(p, Geometric)
	log := Simulate(p, Logistic)

	out := make([]Comparison, len(geo))
	for i := range geo {
		out[i] = Comparison{
			Step:      geo[i].Step,
			Geometric: geo[i].Population,
			Logistic:  log[i].Population,
		}
	}
	return out
}

// Program is the interactive simulator.
type Program struct{}

// New creates the population program.
func New() *Program {
	return &Program{}
}

func (p *Program) Name() string { return core.ProgramPopulation }

func (p *Program) Run(ctx context.Context, env *app.Env) error {
	fmt.Fprintln(env.Out, "Population Growth Simulation")
	fmt.Fprintln(env.Out)

	birth, err := env.Prompt.Float("Enter birth rate (0-1): ", 0, 1)
	if err != nil {
		return err
	}
	death, err := env.Prompt.Float("Enter death rate (0-1): ", 0, 1)
	if err != nil {
		return err
	}
	capacity, err := env.Prompt.PositiveInt("Enter carrying capacity: ")
	if err != nil {
		return err
	}
	initial, err := env.Prompt.PositiveInt("Enter initial population: ")
	if err != nil {
		return err
	}

	params := Params{
		BirthRate:         birth,
		DeathRate:         death,
		CarryingCapacity:  capacity,
		InitialPopulation: initial,
	}
	rows := Compare(params)
	Print(env, rows)

	env.Log.Debug("simulation finished", "r", params.GrowthRate(), "k", capacity, "p0", initial)

	run := &core.SimulationRun{
		RunMeta:           env.Session.Meta(),
		BirthRate:         birth,
		DeathRate:         death,
		CarryingCapacity:  capacity,
		InitialPopulation: initial,
		Geometric:         make([]core.PopulationSample, 0, len(rows)),
		Logistic:          make([]core.PopulationSample, 0, len(rows)),
	}
	for _, row := range rows {
		run.Geometric = append(run.Geometric, core.PopulationSample{Step: row.Step, Population: row.Geometric})
		run.Logistic = append(run.Logistic, core.PopulationSample{Step: row.Step, Population: row.Logistic})
	}
	if err := env.Store.RecordSimulation(run); err != nil {
		env.Log.Error("Failed to record simulation", "error", err)
	}

	writeMetrics(env, run, rows)
	return nil
}

// writeMetrics sends one point per sample per model. Timestamps are offset
// by step seconds from the run start so points stay distinct.
func writeMetrics(env *app.Env, run *core.SimulationRun, rows []Comparison) {
	for _, row := range rows {
		ts := run.StartedAt.Add(time.Duration(row.Step) * time.Second)
		for _, m := range []Model{Geometric, Logistic} {
			pop := row.Geometric
			if m == Logistic {
				pop = row.Logistic
			}
			err := env.Metrics.WritePoint("population", "sample",
				map[string]string{"runId": run.RunID, "model": m.String()},
				map[string]any{
					"step":       row.Step,
					"population": pop,
					"r":          run.BirthRate - run.DeathRate,
					"k":          run.CarryingCapacity,
				},
				ts,
			)
			if err != nil {
				env.Log.Warn("Failed to write population metrics", "error", err)
				return
			}
		}
	}
}

// Print writes the side-by-side table.
func Print(env *app.Env, rows []Comparison) {
	w := env.Out
	fmt.Fprintln(w, "\nGeometric and Logistic Growth Results:")
	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprintf(w, "At time step %d:\n", row.Step)
		fmt.Fprintf(w, "  Geometric model population = %.2f\n", row.Geometric)
		fmt.Fprintf(w, "  Logistic model population  = %.2f\n", row.Logistic)
		fmt.Fprintln(w)
	}
}
