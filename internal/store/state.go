// File: internal/store/state.go
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
)

// ErrPersist marks a failed durable write after a successful in-memory
// append. The in-memory collection remains authoritative for the session;
// callers surface this as a display warning, never as data loss.
var ErrPersist = errors.New("durable save failed")

// ErrDuplicateDate is returned by AppendLog when duplicate calendar dates are
// disallowed by policy and one already exists.
var ErrDuplicateDate = errors.New("a log for this date already exists")

// Options tunes State behavior.
type Options struct {
	// AllowDuplicateDates permits more than one log per calendar day. This is
	// the historical default; disable to enforce one-per-day.
	AllowDuplicateDates bool
}

// State is the single-writer container for the two live collections. All
// mutation funnels through AppendLog and AppendIntervention; reads get
// defensive copies, so request builders operate over snapshots.
type State struct {
	mu            sync.Mutex
	store         *Store
	logger        *zap.Logger
	opts          Options
	logs          []schemas.DailyLog
	interventions []schemas.HabitIntervention
}

// Hydrate loads startup state from the durable store. When no logs collection
// exists, the supplied seed function provides the synthetic dataset, which is
// written through immediately. Interventions load-or-empty with no fallback.
func Hydrate(ctx context.Context, s *Store, seed func() []schemas.DailyLog, opts Options, logger *zap.Logger) (*State, error) {
	st := &State{
		store:  s,
		logger: logger.Named("state"),
		opts:   opts,
	}

	logs, ok, err := s.LoadLogs(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		st.logs = logs
		st.logger.Info("Hydrated logs collection", zap.Int("count", len(logs)))
	} else {
		st.logs = seed()
		st.logger.Info("No logs collection found; seeded synthetic dataset", zap.Int("count", len(st.logs)))
		if err := s.SaveLogs(ctx, st.logs); err != nil {
			// The seed stays authoritative in memory; durable state catches up
			// on the next successful append.
			st.logger.Warn("Failed to persist seed dataset", zap.Error(err))
		}
	}

	ivs, ok, err := s.LoadInterventions(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		st.interventions = ivs
		st.logger.Info("Hydrated interventions collection", zap.Int("count", len(ivs)))
	}

	return st, nil
}

// Logs returns a snapshot copy of the log collection.
func (st *State) Logs() []schemas.DailyLog {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]schemas.DailyLog, len(st.logs))
	copy(out, st.logs)
	return out
}

// Interventions returns a snapshot copy of the interventions collection.
func (st *State) Interventions() []schemas.HabitIntervention {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]schemas.HabitIntervention, len(st.interventions))
	copy(out, st.interventions)
	return out
}

// AppendLog validates and appends one log, then synchronously writes the full
// collection. A validation or policy failure rejects the append outright; a
// failed durable write returns ErrPersist with the append already applied.
func (st *State) AppendLog(ctx context.Context, l schemas.DailyLog) error {
	if err := schemas.ValidateDailyLog(l); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !st.opts.AllowDuplicateDates {
		for _, existing := range st.logs {
			if existing.Date == l.Date {
				return fmt.Errorf("%w: %s", ErrDuplicateDate, l.Date)
			}
		}
	}

	st.logs = append(st.logs, l)
	if err := st.store.SaveLogs(ctx, st.logs); err != nil {
		st.logger.Warn("Log appended in memory but not persisted",
			zap.String("id", l.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// AppendIntervention validates and appends one behavior-change marker with
// the same write-through and failure semantics as AppendLog.
func (st *State) AppendIntervention(ctx context.Context, iv schemas.HabitIntervention) error {
	if err := schemas.ValidateIntervention(iv); err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.interventions = append(st.interventions, iv)
	if err := st.store.SaveInterventions(ctx, st.interventions); err != nil {
		st.logger.Warn("Intervention appended in memory but not persisted",
			zap.String("id", iv.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
