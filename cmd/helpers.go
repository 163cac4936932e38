// File: cmd/helpers.go
package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/dataset"
	"github.com/nachiketsane1912/habit-impact-coach/internal/observability"
	"github.com/nachiketsane1912/habit-impact-coach/internal/reasoning"
	"github.com/nachiketsane1912/habit-impact-coach/internal/store"
)

// openState opens the durable store and hydrates the in-memory state, seeding
// a synthetic history on first run. Callers own the returned store and must
// Close it.
func openState(ctx context.Context, logger *zap.Logger) (*store.Store, *store.State, error) {
	s, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return nil, nil, err
	}

	seed := func() []schemas.DailyLog {
		logger.Info("No stored history found, generating synthetic dataset.", zap.Int("days", cfg.Dataset.Days))
		return dataset.New(cfg.Dataset.Days).Generate()
	}
	opts := store.Options{AllowDuplicateDates: cfg.Store.AllowDuplicateDates}

	state, err := store.Hydrate(ctx, s, seed, opts, logger)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, state, nil
}

// newEngine constructs the reasoning client and engine. Fails fast when no
// API key is configured so purely local commands never pay for it.
func newEngine(logger *zap.Logger) (*reasoning.Engine, schemas.LLMClient, error) {
	client, err := reasoning.NewGoogleClient(cfg.Reasoning, logger)
	if err != nil {
		return nil, nil, err
	}
	return reasoning.NewEngine(client, cfg.Reasoning, logger), client, nil
}

func cmdLogger(name string) *zap.Logger {
	return observability.GetLogger().Named(name)
}

// today returns the current local date in the record date layout.
func today() string {
	return time.Now().Format(schemas.DateLayout)
}
