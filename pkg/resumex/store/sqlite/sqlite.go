package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/record"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS collections (
	key TEXT PRIMARY KEY,
	saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	id TEXT PRIMARY KEY,
	collection TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT,
	email TEXT,
	body TEXT NOT NULL,
	UNIQUE(collection, position),
	FOREIGN KEY(collection) REFERENCES collections(key) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_records_email ON records(email);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Save appends recs after the records already stored under key
func (s *sqliteStore) Save(ctx context.Context, key string, recs ...record.Record) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO collections(key, saved_at) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET saved_at=excluded.saved_at`,
		key, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return err
	}

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM records WHERE collection = ?`, key,
	).Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records(id, collection, position, name, email, body)
		VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range recs {
		body, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), key, next+i, nullName(rec), firstEmail(rec), string(body)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Fetch returns the records stored under key in saved order
func (s *sqliteStore) Fetch(ctx context.Context, key string) ([]record.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM collections WHERE key = ?`, key).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT body FROM records WHERE collection = ? ORDER BY position`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []record.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec record.Record
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("decode record in %s: %w", key, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes key and its records
func (s *sqliteStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}
	return nil
}

// Keys lists stored keys in ascending order
func (s *sqliteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM collections ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func nullName(rec record.Record) sql.NullString {
	if rec.Name == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *rec.Name, Valid: true}
}

func firstEmail(rec record.Record) sql.NullString {
	if len(rec.Emails) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: rec.Emails[0], Valid: true}
}
