// Package dispatcher routes named commands to handlers. The launcher
// registers one command per program plus the history and export tools.
package dispatcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event is one command invocation.
type Event struct {
	Command   string
	Args      []string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(ctx context.Context, e Event) (any, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*handlerConfig)

type handlerConfig struct {
	logged      bool
	description string
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *handlerConfig) {
		c.logged = true
	}
}

// Described attaches a one-line usage description shown by Commands.
func Described(desc string) Option {
	return func(c *handlerConfig) {
		c.description = desc
	}
}

// Command is a registered command name and its description.
type Command struct {
	Name        string
	Description string
}

type entry struct {
	handler     HandlerFunc
	description string
}

// Dispatcher routes events to registered handlers.
type Dispatcher struct {
	handlers map[string]entry
	logger   Logger

	processed metric.Int64Counter
	failed    metric.Int64Counter
}

// New creates a Dispatcher. meter may be a no-op meter.
func New(logger Logger, meter metric.Meter) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]entry),
		logger:   logger,
	}

	var err error

	d.processed, err = meter.Int64Counter(
		"dispatcher.commands.processed",
		metric.WithDescription("Total commands processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.failed, err = meter.Int64Counter(
		"dispatcher.commands.failed",
		metric.WithDescription("Total commands that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given command with optional configuration.
func (d *Dispatcher) Register(command string, h HandlerFunc, opts ...Option) {
	cfg := &handlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := d.withMetrics(command, h)
	if cfg.logged {
		handler = d.withLogging(command, handler)
	}

	d.handlers[command] = entry{handler: handler, description: cfg.description}
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (any, error) {
	en, ok := d.handlers[e.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", e.Command)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return en.handler(ctx, e)
}

// HasHandler returns true if a handler is registered for the command.
func (d *Dispatcher) HasHandler(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Commands lists registered commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	cmds := make([]Command, 0, len(d.handlers))
	for name, en := range d.handlers {
		cmds = append(cmds, Command{Name: name, Description: en.description})
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

func (d *Dispatcher) withMetrics(command string, h HandlerFunc) HandlerFunc {
	cmdAttr := metric.WithAttributes(attribute.String("command", command))
	return func(ctx context.Context, e Event) (any, error) {
		result, err := h(ctx, e)
		d.processed.Add(ctx, 1, cmdAttr)
		if err != nil {
			d.failed.Add(ctx, 1, cmdAttr)
		}
		return result, err
	}
}

func (d *Dispatcher) withLogging(command string, h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling command", "command", command, "args", len(e.Args))

		result, err := h(ctx, e)

		if err != nil {
			d.logger.Error("command failed", "command", command, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("command complete", "command", command, "duration", time.Since(start))
		}

		return result, err
	}
}
