// File: internal/store/store.go

// Package store owns durable state: two independently versioned named
// collections (logs and interventions) round-tripped through exact JSON
// serialization into a local SQLite database, plus the single-writer State
// container that funnels every mutation through one auditable path.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
)

// Durable collection names. Each is loaded and saved as one JSON document;
// there is no transactional linkage between them.
const (
	CollectionLogs          = "logs"
	CollectionInterventions = "interventions"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the durable key-value adapter. One row per named collection.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the collection store at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection store: %w", err)
	}
	// A single writer keeps SQLite happy and matches the app's concurrency model.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize collection store: %w", err)
	}

	return &Store{db: db, logger: logger.Named("store")}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the raw payload of a named collection. ok is false when the
// collection has never been saved.
func (s *Store) Load(ctx context.Context, name string) (payload []byte, ok bool, err error) {
	var text string
	err = s.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE name = ?`, name).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load collection %q: %w", name, err)
	}
	return []byte(text), true, nil
}

// Save writes the full payload of a named collection, replacing any previous
// version. Writes are synchronous; by the time Save returns the snapshot is
// durable.
func (s *Store) Save(ctx context.Context, name string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save collection %q: %w", name, err)
	}
	return nil
}

// -- Typed collection accessors --

// LoadLogs decodes the logs collection. ok is false on first run.
func (s *Store) LoadLogs(ctx context.Context) (logs []schemas.DailyLog, ok bool, err error) {
	payload, ok, err := s.Load(ctx, CollectionLogs)
	if err != nil || !ok {
		return nil, ok, err
	}
	if err := json.Unmarshal(payload, &logs); err != nil {
		return nil, false, fmt.Errorf("corrupt %s collection: %w", CollectionLogs, err)
	}
	return logs, true, nil
}

// SaveLogs writes the full logs collection.
func (s *Store) SaveLogs(ctx context.Context, logs []schemas.DailyLog) error {
	payload, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", CollectionLogs, err)
	}
	return s.Save(ctx, CollectionLogs, payload)
}

// LoadInterventions decodes the interventions collection. ok is false when it
// has never been written; an empty collection is a valid state.
func (s *Store) LoadInterventions(ctx context.Context) (ivs []schemas.HabitIntervention, ok bool, err error) {
	payload, ok, err := s.Load(ctx, CollectionInterventions)
	if err != nil || !ok {
		return nil, ok, err
	}
	if err := json.Unmarshal(payload, &ivs); err != nil {
		return nil, false, fmt.Errorf("corrupt %s collection: %w", CollectionInterventions, err)
	}
	return ivs, true, nil
}

// SaveInterventions writes the full interventions collection.
func (s *Store) SaveInterventions(ctx context.Context, ivs []schemas.HabitIntervention) error {
	payload, err := json.Marshal(ivs)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", CollectionInterventions, err)
	}
	return s.Save(ctx, CollectionInterventions, payload)
}
