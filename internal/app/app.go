// Package app wires configuration, logging, telemetry, storage and metrics
// around a Program and runs it against stdin/stdout.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/sciencekit/sciencekit/internal/config"
	"github.com/sciencekit/sciencekit/internal/influx"
	"github.com/sciencekit/sciencekit/internal/logging"
	intOtel "github.com/sciencekit/sciencekit/internal/otel"
	"github.com/sciencekit/sciencekit/internal/prompt"
	"github.com/sciencekit/sciencekit/internal/storage"
)

// ErrRejected marks input a program refuses outright instead of re-prompting.
// The program has already told the user why.
var ErrRejected = errors.New("input rejected")

const shutdownTimeout = 5 * time.Second

// App owns everything set up around one program run.
type App struct {
	Program string
	Env     *Env

	// Logger is the slog logger handed to programs; ZLog serves the
	// infrastructure managers.
	Logger *slog.Logger
	ZLog   zerolog.Logger

	slogManager *logging.SlogManager
	otel        *intOtel.Provider
	influx      *influx.Manager
	store       storage.Backend
	logFile     *os.File
	graylog     *gelf.Writer
}

// New loads configuration from config.Dir() and sets up program's run.
// Prompts read from in and results go to out.
func New(program string, in io.Reader, out io.Writer) (*App, error) {
	if err := config.Load(config.Dir()); err != nil {
		return nil, err
	}

	a := &App{Program: program, Env: NewEnv(in, out)}
	start := time.Now()
	a.Env.Session.Start(program, start)

	logCfg := config.GetLoggingConfig()
	if logCfg.Dir != "" {
		f, err := logging.OpenLogFile(logCfg.Dir, program, start)
		if err != nil {
			return nil, err
		}
		a.logFile = f
	}

	otelCfg := intOtel.FromConfig(config.GetOTelConfig(), program, nil)
	if a.logFile != nil {
		otelCfg.LogWriter = a.logFile
	}
	provider, err := intOtel.New(otelCfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create OTel provider: %w", err)
	}
	a.otel = provider

	if logCfg.GraylogEnabled {
		w, err := logging.NewGraylogWriter(logCfg.GraylogAddress, program)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.graylog = w
	}

	a.setupLogging(logCfg)

	backend, err := NewStorageBackend(config.GetStorageConfig(), program, a.Logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := backend.Init(); err != nil {
		a.Logger.Error("Failed to initialize storage backend, runs will not be recorded", "error", err)
		backend = storage.Noop{}
	}
	a.store = backend
	a.Env.Store = backend

	a.connectInflux()

	a.Logger.Info("Setup complete", "storage", fmt.Sprintf("%T", backend))
	return a, nil
}

func (a *App) setupLogging(cfg config.LoggingConfig) {
	opts := logging.Options{
		Level:       cfg.Level,
		ServiceName: a.Program,
		Context:     a.Env.Session.Attrs,
	}
	var console io.Writer
	if cfg.Console {
		console = os.Stderr
		opts.Console = console
	}
	var file io.Writer
	if a.logFile != nil {
		file = a.logFile
		opts.File = file
	}
	if a.graylog != nil {
		opts.Graylog = a.graylog
	}
	if a.otel.Enabled() {
		opts.Provider = a.otel.LoggerProvider()
	}

	a.slogManager = logging.NewSlogManager()
	a.slogManager.Setup(opts)
	a.Logger = a.slogManager.Logger()
	a.Env.Log = a.Logger

	a.ZLog = logging.NewZerolog(cfg.Level, file, console).With().
		Str("program", a.Program).
		Str("runId", a.Env.Session.RunID()).
		Logger()
}

func (a *App) connectInflux() {
	cfg := config.GetInfluxConfig()
	if !cfg.Enabled {
		return
	}

	m := influx.NewManager(a.ZLog, cfg)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := m.Connect(ctx); err != nil {
		a.Logger.Warn("Metrics disabled", "error", err)
		m.Close()
		return
	}
	a.influx = m
	a.Env.Metrics = m
}

// Meter returns an OTel meter, a no-op one when telemetry is disabled.
func (a *App) Meter(name string) metric.Meter {
	return a.otel.Meter(name)
}

// Store returns the initialized storage backend.
func (a *App) Store() storage.Backend {
	return a.store
}

// Run executes p with the app's environment.
func (a *App) Run(ctx context.Context, p Program) error {
	start := time.Now()
	a.Logger.Info("Program started")

	err := p.Run(ctx, a.Env)

	switch {
	case err == nil:
		a.Logger.Info("Program finished", "duration", time.Since(start))
	case errors.Is(err, prompt.ErrInputClosed), errors.Is(err, ErrRejected):
		a.Logger.Info("Program stopped", "reason", err, "duration", time.Since(start))
	default:
		a.Logger.Error("Program failed", "error", err, "duration", time.Since(start))
	}
	return err
}

// Close flushes and releases everything New opened, in reverse order.
func (a *App) Close() error {
	var errs []error

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Logger.Error("Failed to close storage", "error", err)
			errs = append(errs, err)
		} else if ex, ok := a.store.(storage.Exportable); ok && ex.GetExportedFilePath() != "" {
			a.Logger.Info("Runs exported", "path", ex.GetExportedFilePath())
		}
	}
	if a.influx != nil {
		errs = append(errs, a.influx.Close())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if a.slogManager != nil {
		errs = append(errs, a.slogManager.Flush(ctx))
	}
	if a.otel != nil {
		errs = append(errs, a.otel.Shutdown(ctx))
	}
	if a.graylog != nil {
		errs = append(errs, a.graylog.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// ExitCode maps a program error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, prompt.ErrInputClosed):
		return 0
	default:
		return 1
	}
}

// Main sets up the app for program, builds it with newProgram once
// configuration is loaded, runs it on stdin/stdout and returns the exit
// status.
func Main(program string, newProgram func() (Program, error)) int {
	a, err := New(program, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup failed:", err)
		return 1
	}
	defer a.Close()

	p, err := newProgram()
	if err != nil {
		a.Logger.Error("Failed to create program", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signalContext()
	defer stop()

	err = a.Run(ctx, p)
	Report(os.Stderr, err)
	return ExitCode(err)
}

// Report prints err to w unless the user has already seen its cause.
func Report(w io.Writer, err error) {
	if err == nil || errors.Is(err, prompt.ErrInputClosed) || errors.Is(err, ErrRejected) {
		return
	}
	fmt.Fprintln(w, err)
}
