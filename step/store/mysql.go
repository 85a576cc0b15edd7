package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/hjfreyer/stepwise/step/emit"
)

// MySQLStore is a MySQL/MariaDB-backed TranscriptStore.
//
// Designed for:
//   - Production driver runs requiring persistence
//   - Distributed systems where several processes append to one store
//   - Audit trails and compliance requirements
//
// MySQLStore uses connection pooling and per-append transactions for
// reliability under concurrent writers.
type MySQLStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLStore creates a new MySQL-backed store.
//
// The DSN (Data Source Name) format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...]
//
// Security Warning:
//
//	NEVER hardcode credentials in your source code. Use environment
//	variables: dsn := os.Getenv("MYSQL_DSN").
//
// The store automatically creates required tables if they don't exist.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	store := &MySQLStore{db: db}
	if err := store.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *MySQLStore) createTables(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS transcript_events (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			run_id VARCHAR(255) NOT NULL,
			seq INT NOT NULL,
			step INT NOT NULL,
			action VARCHAR(255) NOT NULL,
			handler VARCHAR(255) NOT NULL,
			msg TEXT NOT NULL,
			meta JSON,
			UNIQUE KEY uniq_run_seq (run_id, seq),
			INDEX idx_run_id (run_id)
		) ENGINE=InnoDB
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Append implements TranscriptStore, using a transaction to serialize the
// sequence-number assignment against concurrent appenders for the same run.
func (s *MySQLStore) Append(ctx context.Context, runID string, event emit.DriverEvent) error {
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seq int
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM transcript_events WHERE run_id = ? FOR UPDATE`, runID)
	if err := row.Scan(&seq); err != nil {
		return fmt.Errorf("failed to compute next sequence: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO transcript_events (run_id, seq, step, action, handler, msg, meta) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, seq, event.Step, event.Action, event.Handler, event.Msg, metaJSON); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	return tx.Commit()
}

// Transcript implements TranscriptStore.
func (s *MySQLStore) Transcript(ctx context.Context, runID string) ([]emit.DriverEvent, error) {
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
func (s *MySQLStore) RunIDs(ctx context.Context) ([]string, error) {
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

// Close closes the underlying database connection pool.
func (s *MySQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
