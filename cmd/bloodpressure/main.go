// Command bloodpressure evaluates a blood pressure reading.
package main

import (
	"os"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/bloodpressure"
	"github.com/sciencekit/sciencekit/pkg/core"
)

func main() {
	os.Exit(app.Main(core.ProgramBloodPressure, func() (app.Program, error) {
		return bloodpressure.New(), nil
	}))
}
