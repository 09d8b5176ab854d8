package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/sciencekit/sciencekit/internal/storage"
	"github.com/sciencekit/sciencekit/internal/storage/memory"
	"github.com/sciencekit/sciencekit/internal/util"
	"github.com/sciencekit/sciencekit/pkg/core"
)

const defaultHistoryLimit = 10

var errNoHistory = errors.New("the configured storage type cannot read runs back; use sqlite or postgres")

func historian(b storage.Backend) (storage.Historian, error) {
	h, ok := b.(storage.Historian)
	if !ok {
		return nil, errNoHistory
	}
	return h, nil
}

func programArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("no program given")
	}
	if !core.IsProgram(args[0]) {
		return "", fmt.Errorf("unknown program %q", args[0])
	}
	return args[0], nil
}

// history prints the most recent runs of a program, newest first.
func history(w io.Writer, b storage.Backend, args []string) error {
	program, err := programArg(args)
	if err != nil {
		return err
	}
	limit := defaultHistoryLimit
	if len(args) > 1 {
		limit, err = strconv.Atoi(args[1])
		if err != nil || limit < 1 {
			return fmt.Errorf("invalid limit %q", args[1])
		}
	}

	h, err := historian(b)
	if err != nil {
		return err
	}
	runs, err := h.ListRuns(program, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(w, "No %s runs recorded.\n", program)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.StartedAt.Local().Format(time.DateTime), r.RunID, r.Summary)
	}
	return tw.Flush()
}

// export writes each requested run to dir as "<program>_<timestamp>.json.gz"
// and returns the paths written. It stops at the first missing run.
func export(dir string, b storage.Backend, args []string, now time.Time) ([]string, error) {
	program, err := programArg(args)
	if err != nil {
		return nil, err
	}
	ids := args[1:]
	if len(ids) == 0 {
		return nil, errors.New("no run IDs given")
	}

	h, err := historian(b)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, id := range ids {
		got, err := h.GetRun(program, id)
		if err != nil {
			return paths, err
		}
		run, ok := got.(core.Run)
		if !ok {
			return paths, fmt.Errorf("unexpected record type %T", got)
		}

		path := filepath.Join(dir, util.ExportFileName(program, run.Meta().StartedAt, true))
		if err := storage.WriteJSONFile(path, memory.NewExport(program, now, []core.Run{run}), true); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
