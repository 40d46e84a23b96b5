package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequencer stamps each recorded call with a strictly increasing number so
// calls landing in the same millisecond still order. The counter row lives
// in the database, so separate processes sharing the file never reuse a value.
type sequencer struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequencer creates the counter row, resuming after the newest stored
// call. api_call_events must already exist.
func newSequencer(ctx context.Context, db *sql.DB) (*sequencer, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS call_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO call_sequence (id, last)
			SELECT 1, COALESCE(MAX(sequence), 0) FROM api_call_events`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("init call sequence: %w", err)
		}
	}
	return &sequencer{db: db}, nil
}

// Next reserves the next sequence number.
func (s *sequencer) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seq int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE call_sequence SET last = last + 1 WHERE id = 1 RETURNING last`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("reserve call sequence: %w", err)
	}
	return seq, nil
}
