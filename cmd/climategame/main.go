// Command climategame plays the climate change board game.
package main

import (
	"os"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/climategame"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/pkg/core"
)

func main() {
	os.Exit(app.Main(core.ProgramClimateGame, func() (app.Program, error) {
		return climategame.NewFromConfig(config.GetGameConfig())
	}))
}
