package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/record"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

// postgresStore implements the Store interface using PostgreSQL
type postgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open connects to PostgreSQL at dsn and creates the schema.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (store.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %v", internalerr.ErrStoreUnavailable, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("PostgreSQL connected")
	return &postgresStore{db: db, logger: logger}, nil
}

func (s *postgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resume_collections (
			key TEXT PRIMARY KEY,
			saved_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS resume_records (
			id UUID PRIMARY KEY,
			collection TEXT NOT NULL REFERENCES resume_collections(key) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT,
			email TEXT,
			body JSONB NOT NULL,
			UNIQUE(collection, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resume_records_email ON resume_records(email)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *postgresStore) Save(ctx context.Context, key string, recs ...record.Record) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO resume_collections(key, saved_at) VALUES($1, $2)
		ON CONFLICT(key) DO UPDATE SET saved_at = EXCLUDED.saved_at`,
		key, time.Now().UTC(),
	); err != nil {
		return err
	}

	// The upsert above locks the collection row, so concurrent appends
	// to one key see each other's positions.
	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM resume_records WHERE collection = $1`, key,
	).Scan(&next); err != nil {
		return err
	}

	for i, rec := range recs {
		body, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		var name, email sql.NullString
		if rec.Name != nil {
			name = sql.NullString{String: *rec.Name, Valid: true}
		}
		if len(rec.Emails) > 0 {
			email = sql.NullString{String: rec.Emails[0], Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO resume_records(id, collection, position, name, email, body)
			VALUES($1, $2, $3, $4, $5, $6)`,
			uuid.New().String(), key, next+i, name, email, string(body),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("Saved collection", zap.String("key", key), zap.Int("records", len(recs)))
	return nil
}

func (s *postgresStore) Fetch(ctx context.Context, key string) ([]record.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM resume_collections WHERE key = $1`, key).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT body FROM resume_records WHERE collection = $1 ORDER BY position`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []record.Record{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec record.Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("decode record in %s: %w", key, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resume_collections WHERE key = $1`, key)
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

func (s *postgresStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM resume_collections ORDER BY key`)
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
