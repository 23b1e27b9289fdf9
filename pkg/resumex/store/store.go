package store

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/resumex/pkg/resumex/record"
)

// Store persists records under caller-assigned keys. A key holds an
// ordered list of records: one for a single résumé keyed by email, many
// for a bulk collection.
type Store interface {
	Close() error

	// Save appends recs after whatever is already stored under key.
	Save(ctx context.Context, key string, recs ...record.Record) error
	// Fetch returns the records under key, or ErrNotFound.
	Fetch(ctx context.Context, key string) ([]record.Record, error)
	// Delete removes key, or returns ErrNotFound.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewKey returns a fresh, time-ordered collection key.
func NewKey() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// SaveCollection stores recs under a new key and returns it.
func SaveCollection(ctx context.Context, s Store, recs []record.Record) (string, error) {
	key := NewKey()
	if err := s.Save(ctx, key, recs...); err != nil {
		return "", fmt.Errorf("save collection %s: %w", key, err)
	}
	return key, nil
}

// KeyFor returns the key a single record is stored under: its first email,
// or a fresh key when it has none.
func KeyFor(rec record.Record) string {
	if len(rec.Emails) > 0 {
		return rec.Emails[0]
	}
	return NewKey()
}
