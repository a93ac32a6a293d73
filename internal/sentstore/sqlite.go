// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// SQLiteStore keeps the sent-set in a SQLite table along with the time
// each identifier was first recorded.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens or creates the database at path and its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := newSQLiteStoreWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newSQLiteStoreWithDB(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sent_ids (
		id TEXT PRIMARY KEY,
		sent_at TEXT NOT NULL
	)`)
	return err
}

// Load returns every recorded identifier.
func (s *SQLiteStore) Load(ctx context.Context) (types.SentSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sent_ids`)
	if err != nil {
		return nil, fmt.Errorf("querying sent ids: %w", err)
	}
	defer rows.Close()

	sent := types.SentSet{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning sent id: %w", err)
		}
		sent.Add(id)
	}
	return sent, rows.Err()
}

// Save records every identifier in sent that is not stored yet, in one
// transaction. Existing rows keep their original sent_at.
func (s *SQLiteStore) Save(ctx context.Context, sent types.SentSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO sent_ids (id, sent_at) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	sentAt := s.now().UTC().Format(time.RFC3339)
	for _, id := range sent.Sorted() {
		if _, err := stmt.ExecContext(ctx, id, sentAt); err != nil {
			return fmt.Errorf("inserting %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Forget deletes the row for id.
func (s *SQLiteStore) Forget(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sent_ids WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SentAt returns when id was recorded.
func (s *SQLiteStore) SentAt(ctx context.Context, id string) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT sent_at FROM sent_ids WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}
