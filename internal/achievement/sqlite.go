package achievement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	namespace TEXT NOT NULL,
	key       TEXT NOT NULL,
	value     INTEGER NOT NULL,
	PRIMARY KEY (namespace, key)
);
CREATE TABLE IF NOT EXISTS results (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	score      INTEGER NOT NULL,
	max_combo  INTEGER NOT NULL,
	level      INTEGER NOT NULL,
	difficulty TEXT NOT NULL,
	played_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS results_score ON results(score DESC);
`

// SQLiteStore persists unlock flags and results in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at path and applies
// the schema. The parent directory is created for relative paths such as
// ./data/wordblast.db.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, namespace string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv WHERE namespace = ?`, namespace)
	if err != nil {
		return nil, fmt.Errorf("query flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]bool)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		flags[key] = value != 0
	}
	return flags, rows.Err()
}

// Set implements Store, replacing the namespace's flags in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, namespace string, flags map[string]bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ?`, namespace); err != nil {
		return fmt.Errorf("clear flags: %w", err)
	}
	for k, v := range flags {
		val := 0
		if v {
			val = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)`, namespace, k, val); err != nil {
			return fmt.Errorf("insert flag %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// RecordResult implements ResultRecorder.
func (s *SQLiteStore) RecordResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (score, max_combo, level, difficulty, played_at) VALUES (?, ?, ?, ?, ?)`,
		r.Score, r.MaxCombo, r.Level, r.Difficulty, r.PlayedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// BestResult implements ResultRecorder.
func (s *SQLiteStore) BestResult(ctx context.Context) (Result, bool, error) {
	var r Result
	var playedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT score, max_combo, level, difficulty, played_at FROM results ORDER BY score DESC, id ASC LIMIT 1`).
		Scan(&r.Score, &r.MaxCombo, &r.Level, &r.Difficulty, &playedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("query best result: %w", err)
	}
	r.PlayedAt = time.Unix(playedAt, 0)
	return r, true, nil
}
