// Command planting prints a succession planting schedule.
package main

import (
	"os"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/planting"
	"github.com/sciencekit/sciencekit/pkg/core"
)

func main() {
	os.Exit(app.Main(core.ProgramPlanting, func() (app.Program, error) {
		return planting.New(config.GetPlantingConfig())
	}))
}
