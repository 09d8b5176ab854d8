package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sciencekit/sciencekit/pkg/core"
)

// Context holds the program and run currently executing
type Context struct {
	mu        sync.RWMutex
	program   string
	runID     string
	startedAt time.Time
}

// NewContext creates a Context with no run started
func NewContext() *Context {
	return &Context{program: "none"}
}

// Start begins a new run of program and returns its ID.
func (c *Context) Start(program string, now time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = program
	c.runID = uuid.NewString()
	c.startedAt = now.UTC()
	return c.runID
}

// Program returns the current program name
func (c *Context) Program() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.program
}

// RunID returns the current run ID, empty before Start
func (c *Context) RunID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runID
}

// Meta returns the run metadata to stamp onto run records
func (c *Context) Meta() core.RunMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return core.RunMeta{
		RunID:     c.runID,
		Program:   c.program,
		StartedAt: c.startedAt,
	}
}

// Attrs is a logging.ContextProvider.
func (c *Context) Attrs() []slog.Attr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.runID == "" {
		return []slog.Attr{slog.String("program", c.program)}
	}
	return []slog.Attr{
		slog.String("program", c.program),
		slog.String("runId", c.runID),
	}
}
