// Command turbine estimates the power output of a wind turbine.
package main

import (
	"os"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/turbine"
	"github.com/sciencekit/sciencekit/pkg/core"
)

func main() {
	os.Exit(app.Main(core.ProgramTurbine, func() (app.Program, error) {
		return turbine.New(config.GetTurbineConfig()), nil
	}))
}
