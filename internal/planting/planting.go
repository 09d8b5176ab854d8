// Package planting generates successive planting dates for a crop until the
// autumn frost deadline.
package planting

import (
	"context"
	"errors"
	"fmt"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// MaxDaysToMaturity bounds the days-to-maturity prompt.
const MaxDaysToMaturity = 999

// ErrInvalidFrost is returned for a frost deadline outside the calendar.
var ErrInvalidFrost = errors.New("frost date is not a calendar date")

// Schedule is the ordered list of planting dates.
type Schedule []Date

// Generator holds the frost deadline and harvest buffer.
type Generator struct {
	Frost         Date
	HarvestBuffer int
}

// NewGenerator builds a Generator from configuration. The frost date must
// be a real calendar date.
func NewGenerator(cfg config.PlantingConfig) (Generator, error) {
	frost := Date{Month: cfg.FrostMonth, Day: cfg.FrostDay}
	if !frost.Valid() {
		return Generator{}, fmt.Errorf("%w: %s", ErrInvalidFrost, frost)
	}
	return Generator{Frost: frost, HarvestBuffer: cfg.HarvestBufferDays}, nil
}

// BeforeFrost reports whether d is strictly before the frost deadline.
func (g Generator) BeforeFrost(d Date) bool {
	return d.Before(g.Frost)
}

// Generate lists start and every following date, spaced by daysToMaturity
// plus the harvest buffer, that falls before the frost deadline. Dates past
// December end the schedule.
func (g Generator) Generate(start Date, daysToMaturity int) Schedule {
	step := daysToMaturity + g.HarvestBuffer
	if step <= 0 {
		step = 1
	}

	var sched Schedule
	for d := start; d.Month <= 12 && g.BeforeFrost(d); d = d.Advance(step) {
		sched = append(sched, d)
	}
	return sched
}

// Program is the interactive schedule generator.
type Program struct {
	gen Generator
}

// New creates the planting program.
func New(cfg config.PlantingConfig) (*Program, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return &Program{gen: gen}, nil
}

func (p *Program) Name() string { return core.ProgramPlanting }

func (p *Program) Run(ctx context.Context, env *app.Env) error {
	crop, err := env.Prompt.Line("Enter crop name: ")
	if err != nil {
		return err
	}
	month, err := env.Prompt.Int("Enter start month (1-12): ", 1, 12)
	if err != nil {
		return err
	}
	maxDay := DaysInMonth(month)
	day, err := env.Prompt.Int(fmt.Sprintf("Enter start day (1-%d): ", maxDay), 1, maxDay)
	if err != nil {
		return err
	}
	maturity, err := env.Prompt.Int("Enter days to maturity: ", 1, MaxDaysToMaturity)
	if err != nil {
		return err
	}

	start := Date{Month: month, Day: day}
	sched := p.gen.Generate(start, maturity)
	Print(env, crop, sched)

	env.Log.Debug("schedule generated", "crop", crop, "start", start.String(), "plantings", len(sched))

	run := &core.PlantingRun{
		RunMeta:        env.Session.Meta(),
		Crop:           crop,
		Start:          core.PlantingDate{Month: start.Month, Day: start.Day},
		DaysToMaturity: maturity,
		Dates:          make([]core.PlantingDate, 0, len(sched)),
	}
	for _, d := range sched {
		run.Dates = append(run.Dates, core.PlantingDate{Month: d.Month, Day: d.Day})
	}
	if err := env.Store.RecordPlanting(run); err != nil {
		env.Log.Error("Failed to record planting run", "error", err)
	}
	return nil
}

// Print writes the schedule table.
func Print(env *app.Env, crop string, sched Schedule) {
	w := env.Out
	fmt.Fprintln(w, "\nPlanting Schedule for", crop)
	fmt.Fprintln(w, "Planting Number\tMonth\tDay")
	for i, d := range sched {
		fmt.Fprintf(w, "%d\t\t%d\t%d\n", i+1, d.Month, d.Day)
	}
}
