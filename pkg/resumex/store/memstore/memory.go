package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/record"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

// Store is an in-memory implementation of store.Store for tests.
// Records are held as JSON so callers never share slices with the store.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

var _ store.Store = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]json.RawMessage)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Save appends recs to the records under key.
func (s *Store) Save(ctx context.Context, key string, recs ...record.Record) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", internalerr.ErrInvalidInput)
	}
	encoded := make([]json.RawMessage, len(recs))
	for i, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[key] = append(s.collections[key], encoded...)
	if s.collections[key] == nil {
		s.collections[key] = []json.RawMessage{}
	}
	return nil
}

// Fetch returns the records under key.
func (s *Store) Fetch(ctx context.Context, key string) ([]record.Record, error) {
	s.mu.RLock()
	encoded, ok := s.collections[key]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}
	recs := make([]record.Record, len(encoded))
	for i, data := range encoded {
		if err := json.Unmarshal(data, &recs[i]); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[key]; !ok {
		return fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}
	delete(s.collections, key)
	return nil
}

// Keys lists stored keys in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.collections))
	for k := range s.collections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
