// Command sciencekit runs any of the programs by name and reads back
// recorded runs.
//
//	sciencekit <program>
//	sciencekit history <program> [limit]
//	sciencekit export <program> <runID>...
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/sciencekit/sciencekit/internal/app"
	"github.com/sciencekit/sciencekit/internal/bloodpressure"
	"github.com/sciencekit/sciencekit/internal/climategame"
	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/dispatcher"
	"github.com/sciencekit/sciencekit/internal/logging"
	"github.com/sciencekit/sciencekit/internal/planting"
	"github.com/sciencekit/sciencekit/internal/population"
	"github.com/sciencekit/sciencekit/internal/turbine"
	"github.com/sciencekit/sciencekit/pkg/core"
)

// programs builds each program once configuration is loaded.
var programs = map[string]struct {
	description string
	build       func() (app.Program, error)
}{
	core.ProgramTurbine: {"wind turbine power output", func() (app.Program, error) {
		return turbine.New(config.GetTurbineConfig()), nil
	}},
	core.ProgramBloodPressure: {"pulse pressure and mean arterial pressure", func() (app.Program, error) {
		return bloodpressure.New(), nil
	}},
	core.ProgramPlanting: {"succession planting schedule", func() (app.Program, error) {
		return planting.New(config.GetPlantingConfig())
	}},
	core.ProgramClimateGame: {"climate change board game", func() (app.Program, error) {
		return climategame.NewFromConfig(config.GetGameConfig())
	}},
	core.ProgramPopulation: {"geometric and logistic population growth", func() (app.Program, error) {
		return population.New(), nil
	}},
}

// tools are the launcher's own commands besides help.
var tools = map[string]string{
	"history": "history <program> [limit]: list recorded runs",
	"export":  "export <program> <runID>...: write runs as gzipped JSON",
}

func isCommand(name string) bool {
	_, program := programs[name]
	_, tool := tools[name]
	return program || tool || name == "help"
}

// commandList describes every command without a dispatcher, for usage
// printed before setup.
func commandList() []dispatcher.Command {
	cmds := make([]dispatcher.Command, 0, len(programs)+len(tools))
	for name, p := range programs {
		cmds = append(cmds, dispatcher.Command{Name: name, Description: p.description})
	}
	for name, desc := range tools {
		cmds = append(cmds, dispatcher.Command{Name: name, Description: desc})
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	command := "help"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	if !isCommand(command) {
		fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		printUsage(stderr, commandList())
		return 2
	}

	a, err := app.New(command, stdin, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "setup failed:", err)
		return 1
	}
	defer a.Close()

	d, err := dispatcher.New(logging.NewDispatcherLogger(a.ZLog), a.Meter("sciencekit"))
	if err != nil {
		fmt.Fprintln(stderr, "setup failed:", err)
		return 1
	}
	registerCommands(d, a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = d.Dispatch(ctx, dispatcher.Event{Command: command, Args: args})
	app.Report(stderr, err)
	return app.ExitCode(err)
}

func registerCommands(d *dispatcher.Dispatcher, a *app.App) {
	for name, p := range programs {
		build := p.build
		d.Register(name, func(ctx context.Context, _ dispatcher.Event) (any, error) {
			prog, err := build()
			if err != nil {
				return nil, err
			}
			return nil, a.Run(ctx, prog)
		}, dispatcher.Described(p.description), dispatcher.Logged())
	}

	d.Register("history", func(_ context.Context, e dispatcher.Event) (any, error) {
		return nil, history(a.Env.Out, a.Store(), e.Args)
	}, dispatcher.Described(tools["history"]), dispatcher.Logged())

	d.Register("export", func(_ context.Context, e dispatcher.Event) (any, error) {
		paths, err := export(".", a.Store(), e.Args, e.Timestamp)
		for _, p := range paths {
			fmt.Fprintln(a.Env.Out, "Wrote", p)
		}
		return paths, err
	}, dispatcher.Described(tools["export"]), dispatcher.Logged())

	d.Register("help", func(context.Context, dispatcher.Event) (any, error) {
		printUsage(a.Env.Out, d.Commands())
		return nil, nil
	})
}

func printUsage(w io.Writer, cmds []dispatcher.Command) {
	fmt.Fprintln(w, "usage: sciencekit <command> [args]")
	fmt.Fprintln(w)
	for _, c := range cmds {
		if c.Description == "" {
			continue
		}
		fmt.Fprintf(w, "  %-14s %s\n", c.Name, c.Description)
	}
}
