// Package run carries per-execution state through the pipeline: a run id,
// the wall clock, and the accumulating stage metrics. The context object
// is threaded explicitly through every stage call; there is no ambient
// session state.
package run

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status of a recorded stage.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// StageMetric is one append-only record of a stage execution.
type StageMetric struct {
	Stage  string    `json:"stage"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Rows   int64     `json:"rows"`
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
}

// Sink receives stage metrics. Recording is advisory: a sink error never
// gates pipeline continuation.
type Sink interface {
	Record(ctx context.Context, runID uuid.UUID, m StageMetric) error
}

// Context is the per-run state object.
type Context struct {
	ID        uuid.UUID
	StartedAt time.Time

	now  func() time.Time
	sink Sink

	mu      sync.Mutex
	metrics []StageMetric
}

// Option configures a Context.
type Option func(*Context)

// WithClock replaces the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// New creates a run context with a fresh run id. A nil sink discards
// metrics after accumulating them locally.
func New(sink Sink, opts ...Option) *Context {
	c := &Context{
		ID:   uuid.New(),
		now:  time.Now,
		sink: sink,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.StartedAt = c.now()
	return c
}

// Now returns the run's current wall-clock time.
func (c *Context) Now() time.Time {
	return c.now()
}

// Complete records a successful stage execution.
func (c *Context) Complete(ctx context.Context, stage string, start time.Time, rows int64) {
	c.record(ctx, StageMetric{
		Stage:  stage,
		Start:  start,
		End:    c.now(),
		Rows:   rows,
		Status: StatusCompleted,
	})
}

// Fail records a failed stage execution.
func (c *Context) Fail(ctx context.Context, stage string, start time.Time, err error) {
	m := StageMetric{
		Stage:  stage,
		Start:  start,
		End:    c.now(),
		Status: StatusFailed,
	}
	if err != nil {
		m.Error = err.Error()
	}
	c.record(ctx, m)
}

func (c *Context) record(ctx context.Context, m StageMetric) {
	c.mu.Lock()
	c.metrics = append(c.metrics, m)
	c.mu.Unlock()

	if c.sink == nil {
		return
	}
	if err := c.sink.Record(ctx, c.ID, m); err != nil {
		slog.Warn("metric sink record failed", "run_id", c.ID, "stage", m.Stage, "error", err)
	}
}

// Metrics returns a copy of the metrics recorded so far, in order.
func (c *Context) Metrics() []StageMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StageMetric, len(c.metrics))
	copy(out, c.metrics)
	return out
}

// SlogSink writes stage metrics as structured log records.
type SlogSink struct {
	Logger *slog.Logger
}

// Record implements Sink.
func (s SlogSink) Record(_ context.Context, runID uuid.UUID, m StageMetric) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		"run_id", runID,
		"stage", m.Stage,
		"start", m.Start,
		"end", m.End,
		"rows", m.Rows,
		"status", m.Status,
	}
	if m.Error != "" {
		attrs = append(attrs, "error", m.Error)
		logger.Error("stage failed", attrs...)
		return nil
	}
	logger.Info("stage completed", attrs...)
	return nil
}
