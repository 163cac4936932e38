// File: internal/insight/builder.go

// Package insight drives batch causal-driver discovery. It owns the
// bounded-context policy: the most recent window of the log history is
// enough for within-subject comparison while keeping request size bounded.
package insight

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
)

// DefaultWindowSize is the analysis window for driver discovery.
const DefaultWindowSize = 14

// ErrNoLogs means there is no history to analyze.
var ErrNoLogs = errors.New("no logs available for analysis")

// Runner shapes and dispatches one driver-analysis request per invocation.
// Runs are stateless and independent: no caching of prior results, no
// automatic retry.
type Runner struct {
	engine     schemas.ReasoningEngine
	windowSize int
	logger     *zap.Logger
}

// NewRunner builds a Runner. windowSize <= 0 selects the default.
func NewRunner(engine schemas.ReasoningEngine, windowSize int, logger *zap.Logger) *Runner {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Runner{
		engine:     engine,
		windowSize: windowSize,
		logger:     logger.Named("insight"),
	}
}

// Analyze slices the analysis window from a snapshot of the log history and
// requests driver discovery. Failures are recoverable by re-invoking; the
// snapshot is never mutated.
func (r *Runner) Analyze(ctx context.Context, logs []schemas.DailyLog) ([]schemas.CausalInsight, error) {
	window := Window(logs, r.windowSize)
	if len(window) == 0 {
		return nil, ErrNoLogs
	}

	r.logger.Info("Requesting driver analysis",
		zap.Int("history", len(logs)), zap.Int("window", len(window)))
	return r.engine.AnalyzeDrivers(ctx, window)
}

// Window returns the n most recent entries by date, oldest first, regardless
// of storage order. The input slice is left untouched. Entries sharing a date
// keep their relative storage order.
func Window(logs []schemas.DailyLog, n int) []schemas.DailyLog {
	sorted := make([]schemas.DailyLog, len(logs))
	copy(sorted, logs)
	// ISO dates order lexicographically.
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}
