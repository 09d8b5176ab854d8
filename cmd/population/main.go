// Command population compares geometric and logistic population growth.
package main

import (
	"os"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/population"
	"github.com/sciencekit/sciencekit/pkg/core"
)

func main() {
	os.Exit(app.Main(core.ProgramPopulation, func() (app.Program, error) {
		return population.New(), nil
	}))
}
