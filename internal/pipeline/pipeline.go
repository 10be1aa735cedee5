// Package pipeline wires the stages end to end: cleanse every entity,
// assemble the dimensions, resolve the fact, then run the advisory
// quality battery. A stage failure stops the run; stages that already
// replaced their snapshots keep them, pending ones keep the previous
// successful snapshot.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jlowell/salesdw/internal/cleanse"
	"github.com/jlowell/salesdw/internal/dimension"
	"github.com/jlowell/salesdw/internal/logging"
	"github.com/jlowell/salesdw/internal/quality"
	"github.com/jlowell/salesdw/internal/run"
	"github.com/jlowell/salesdw/internal/store"
)

// Pipeline owns the three layer stores and the metric sink.
type Pipeline struct {
	Raw         store.Raw
	Cleansed    store.Cleansed
	Dimensional store.Dimensional
	Sink        run.Sink

	// Clock overrides time.Now for deterministic tests.
	Clock func() time.Time
}

// Result summarizes one completed (or failed) run.
type Result struct {
	RunID      uuid.UUID         `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Metrics    []run.StageMetric `json:"metrics"`
	Report     quality.Report    `json:"report"`
	Error      string            `json:"error,omitempty"`
}

// Execute runs the full pipeline once. The returned Result is non-nil
// even on failure so callers can inspect partial metrics; err is non-nil
// only for infrastructure failures.
func (p *Pipeline) Execute(ctx context.Context) (*Result, error) {
	opts := []run.Option{}
	if p.Clock != nil {
		opts = append(opts, run.WithClock(p.Clock))
	}
	rc := run.New(p.Sink, opts...)

	logger := logging.WithFields(ctx, "run_id", rc.ID)
	logger.Info("pipeline run started")

	res := &Result{RunID: rc.ID, StartedAt: rc.StartedAt}
	fail := func(err error) (*Result, error) {
		res.Metrics = rc.Metrics()
		res.FinishedAt = rc.Now()
		res.Error = err.Error()
		logger.Error("pipeline run failed", "error", err)
		return res, err
	}

	cleansing := cleanse.Stage{Raw: p.Raw, Out: p.Cleansed}
	if err := cleansing.Run(ctx, rc); err != nil {
		return fail(fmt.Errorf("cleansing stage: %w", err))
	}

	assembly := dimension.Stage{In: p.Cleansed, Out: p.Dimensional}
	if err := assembly.Run(ctx, rc); err != nil {
		return fail(fmt.Errorf("dimensional stage: %w", err))
	}

	validator := quality.Validator{Cleansed: p.Cleansed, Dimensional: p.Dimensional}
	report, err := validator.Run(ctx, rc.Now())
	if err != nil {
		return fail(fmt.Errorf("quality validation: %w", err))
	}

	res.Metrics = rc.Metrics()
	res.FinishedAt = rc.Now()
	res.Report = report
	logger.Info("pipeline run completed",
		"stages", len(res.Metrics),
		"quality_clean", report.Clean(),
	)
	return res, nil
}
