package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sciencekit/sciencekit/internal/prompt"
	"github.com/sciencekit/sciencekit/internal/session"
	"github.com/sciencekit/sciencekit/internal/storage"
)

// Program is one interactive exercise.
type Program interface {
	Name() string
	Run(ctx context.Context, env *Env) error
}

// MetricsWriter writes time-series points. The influx manager implements it.
type MetricsWriter interface {
	WritePoint(bucket, measurement string, tags map[string]string, fields map[string]any, ts time.Time) error
}

// Env is everything a Program may touch while running. Prompts and results
// go to Out; Log is for diagnostics only.
type Env struct {
	Prompt  *prompt.Prompter
	Out     io.Writer
	Log     *slog.Logger
	Store   storage.Backend
	Metrics MetricsWriter
	Session *session.Context
}

// NewEnv returns an Env over in/out with storage and metrics disabled.
func NewEnv(in io.Reader, out io.Writer) *Env {
	return &Env{
		Prompt:  prompt.New(in, out),
		Out:     out,
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:   storage.Noop{},
		Metrics: NoopMetrics{},
		Session: session.NewContext(),
	}
}

// NoopMetrics drops every point.
type NoopMetrics struct{}

func (NoopMetrics) WritePoint(string, string, map[string]string, map[string]any, time.Time) error {
	return nil
}
