package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hjfreyer/stepwise/step/emit"
	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite-backed TranscriptStore.
//
// It stores one row per recorded DriverEvent in a single-file database.
// Designed for:
//   - Development and testing with zero setup
//   - Single-process driver runs
//   - Local audit trails requiring persistence across restarts
//
// SQLiteStore enables WAL mode and uses a single connection; appends are
// serialized by a mutex, not wrapped in a transaction.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteStore creates a new SQLite-backed store.
//
// The path parameter specifies the database file location:
//   - "./transcripts.db" - file in current directory
//   - ":memory:" - in-memory database (data lost on close)
//
// The store automatically creates the database file and required tables if
// they don't exist, and enables WAL mode for concurrent reads.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS transcript_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			step INTEGER NOT NULL,
			action TEXT NOT NULL,
			handler TEXT NOT NULL,
			msg TEXT NOT NULL,
			meta TEXT,
			UNIQUE(run_id, seq)
		)
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Append implements TranscriptStore.
func (s *SQLiteStore) Append(ctx context.Context, runID string, event emit.DriverEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("store: closed")
	}

	var metaJSON []byte
	if event.Meta != nil {
		var err error
		metaJSON, err = json.Marshal(event.Meta)
		if err != nil {
			return fmt.Errorf("failed to marshal meta: %w", err)
		}
	}

	var seq int
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM transcript_events WHERE run_id = ?`, runID)
	if err := row.Scan(&seq); err != nil {
		return fmt.Errorf("failed to compute next sequence: %w", err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcript_events (run_id, seq, step, action, handler, msg, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, seq, event.Step, event.Action, event.Handler, event.Msg, metaJSON)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// Transcript implements TranscriptStore.
func (s *SQLiteStore) Transcript(ctx context.Context, runID string) ([]emit.DriverEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT step, action, handler, msg, meta FROM transcript_events WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var events []emit.DriverEvent
	for rows.Next() {
		var ev emit.DriverEvent
		var metaJSON sql.NullString
		if err := rows.Scan(&ev.Step, &ev.Action, &ev.Handler, &ev.Msg, &metaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if metaJSON.Valid && metaJSON.String != "" {
			if err := json.Unmarshal([]byte(metaJSON.String), &ev.Meta); err != nil {
				return nil, fmt.Errorf("failed to unmarshal meta: %w", err)
			}
		}
		ev.RunID = runID
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return events, nil
}

// RunIDs implements TranscriptStore.
func (s *SQLiteStore) RunIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT run_id FROM transcript_events`)
	if err != nil {
		return nil, fmt.Errorf("failed to query run ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
