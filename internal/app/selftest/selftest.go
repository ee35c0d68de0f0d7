// Package selftest runs the embedded gold piece examples and reports which
// of them hold. It backs the goldcheck command.
package selftest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/gold-appraisal/internal/platform/logging"
	"github.com/jsamuelsen11/gold-appraisal/internal/platform/telemetry"
)

// Case is a single named check. Run returns nil when the check holds.
type Case struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result holds the outcome of one case.
type Result struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report is the outcome of a run. Results are in case order.
type Report struct {
	RunID   string   `json:"run_id"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Runner executes cases sequentially, logging each result and counting it
// on the self-test metric.
type Runner struct {
	metrics *telemetry.Metrics
	logger  *slog.Logger
	newID   func() (uuid.UUID, error)
}

// NewRunner creates a Runner. Metrics may be nil.
func NewRunner(metrics *telemetry.Metrics, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		metrics: metrics,
		logger:  logger,
		newID:   uuid.NewV7,
	}
}

// Run executes every case and returns the report. A case that panics is
// recorded as failed. Cases are not started once ctx is done; they are
// recorded as failed with the context error.
func (r *Runner) Run(ctx context.Context, cases []Case) *Report {
	id, err := r.newID()
	if err != nil {
		id = uuid.Nil
	}

	logger := r.logger.With(slog.String("run_id", id.String()))
	ctx = logging.WithLogger(ctx, logger)

	report := &Report{
		RunID:   id.String(),
		Results: make([]Result, 0, len(cases)),
	}

	for _, c := range cases {
		res := r.runCase(ctx, c)
		report.Results = append(report.Results, res)

		if res.Passed {
			report.Passed++
			logger.DebugContext(ctx, "case passed", slog.String("case", c.Name))
		} else {
			report.Failed++
			logger.WarnContext(ctx, "case failed",
				slog.String("case", c.Name),
				slog.String("error", res.Error),
			)
		}
		r.record(ctx, res)
	}

	logger.InfoContext(ctx, "self-test finished",
		slog.Int("passed", report.Passed),
		slog.Int("failed", report.Failed),
	)
	return report
}

func (r *Runner) runCase(ctx context.Context, c Case) (res Result) {
	res.Name = c.Name
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			res.Passed = false
			res.Error = fmt.Sprintf("panic: %v", p)
		}
		res.Duration = time.Since(start)
	}()

	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	ctx = logging.WithAttrs(ctx, slog.String("case", c.Name))
	if err := c.Run(ctx); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Passed = true
	return res
}

func (r *Runner) record(ctx context.Context, res Result) {
	if r.metrics == nil {
		return
	}
	result := "pass"
	if !res.Passed {
		result = "fail"
	}
	r.metrics.SelfTestCaseTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrCase.String(res.Name),
		telemetry.AttrResult.String(result),
	))
}
