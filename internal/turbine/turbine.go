// Package turbine calculates the maximum and actual power output of a wind
// turbine from wind speed, blade radius and efficiency.
package turbine

import (
	"context"
	"fmt"
	"math"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/util"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// Params are the user inputs.
type Params struct {
	WindSpeed   float64 // m/s
	BladeRadius float64 // m
	Efficiency  float64 // 0..100
}

// Result holds the derived quantities in watts and kilowatts.
type Result struct {
	SweptArea     float64
	MaxPowerW     float64
	ActualPowerW  float64
	MaxPowerKW    float64
	ActualPowerKW float64
}

// Calculate applies P = 0.5 * rho * pi * r^2 * v^3, scaled by efficiency.
func Calculate(p Params, airDensity float64) Result {
	area := math.Pi * p.BladeRadius * p.BladeRadius
	maxPower := 0.5 * airDensity * area * p.WindSpeed * p.WindSpeed * p.WindSpeed
	actual := p.Efficiency / 100 * maxPower

	return Result{
		SweptArea:     area,
		MaxPowerW:     maxPower,
		ActualPowerW:  actual,
		MaxPowerKW:    maxPower / 1000,
		ActualPowerKW: actual / 1000,
	}
}

// Program is the interactive turbine calculator.
type Program struct {
	cfg config.TurbineConfig
}

// New creates the turbine program.
func New(cfg config.TurbineConfig) *Program {
	return &Program{cfg: cfg}
}

func (p *Program) Name() string { return core.ProgramTurbine }

func (p *Program) Run(ctx context.Context, env *app.Env) error {
	speed, err := env.Prompt.NonNegativeFloat("Enter wind speed (m/s): ")
	if err != nil {
		return err
	}
	radius, err := env.Prompt.NonNegativeFloat("Enter blade radius (m): ")
	if err != nil {
		return err
	}
	efficiency, err := env.Prompt.Float("Enter efficiency (0 to 100): ", 0, 100)
	if err != nil {
		return err
	}

	params := Params{WindSpeed: speed, BladeRadius: radius, Efficiency: efficiency}
	res := Calculate(params, p.cfg.AirDensity)
	Print(env, params, res)

	env.Log.Debug("turbine calculated", "area", res.SweptArea, "maxPowerW", res.MaxPowerW)

	run := &core.TurbineRun{
		RunMeta:       env.Session.Meta(),
		WindSpeed:     params.WindSpeed,
		BladeRadius:   params.BladeRadius,
		Efficiency:    params.Efficiency,
		AirDensity:    p.cfg.AirDensity,
		SweptArea:     res.SweptArea,
		MaxPowerW:     res.MaxPowerW,
		ActualPowerW:  res.ActualPowerW,
		MaxPowerKW:    res.MaxPowerKW,
		ActualPowerKW: res.ActualPowerKW,
	}
	if err := env.Store.RecordTurbine(run); err != nil {
		env.Log.Error("Failed to record turbine run", "error", err)
	}

	err = env.Metrics.WritePoint("turbine", "power",
		map[string]string{"runId": run.RunID},
		map[string]any{
			"wind_speed":   params.WindSpeed,
			"blade_radius": params.BladeRadius,
			"efficiency":   params.Efficiency,
			"max_power_w":  res.MaxPowerW,
			"actual_power": res.ActualPowerW,
		},
		run.StartedAt,
	)
	if err != nil {
		env.Log.Warn("Failed to write turbine metrics", "error", err)
	}
	return nil
}

// Print writes the result block.
func Print(env *app.Env, p Params, r Result) {
	w := env.Out
	fmt.Fprintln(w, "\n Wind Turbine Power Calculation")
	fmt.Fprintf(w, "Wind Speed: %s m/s\n", util.FormatFloat(p.WindSpeed))
	fmt.Fprintf(w, "Blade Radius: %s m\n", util.FormatFloat(p.BladeRadius))
	fmt.Fprintf(w, "Efficiency: %s%%\n", util.FormatFloat(p.Efficiency))
	fmt.Fprintf(w, "Maximum Turbine Power: %s W\n", util.FormatFloat(r.MaxPowerW))
	fmt.Fprintf(w, "Actual Power Turbine: %s W\n", util.FormatFloat(r.ActualPowerW))
	fmt.Fprintln(w, "- - - - - - - - - - - - - - - - - - - - -")
	fmt.Fprintf(w, "Maximum Turbine Power: %s kW\n", util.FormatFloat(r.MaxPowerKW))
	fmt.Fprintf(w, "Actual Power Turbine: %s kW\n", util.FormatFloat(r.ActualPowerKW))
}
