package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/record"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "resumex"

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store keeps each collection as a Redis list of JSON records and the
// set of keys in an index set.
type Store struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", internalerr.ErrStoreUnavailable, err)
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return New(client, cfg.Prefix, logger), nil
}

// New wraps an existing client.
func New(client *redis.Client, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, prefix: prefix, logger: logger}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) listKey(key string) string {
	return s.prefix + ":collection:" + key
}

func (s *Store) indexKey() string {
	return s.prefix + ":collections"
}

// Save appends recs to the list under key atomically.
func (s *Store) Save(ctx context.Context, key string, recs ...record.Record) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", internalerr.ErrInvalidInput)
	}

	values := make([]interface{}, len(recs))
	for i, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		values[i] = data
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(values) > 0 {
			pipe.RPush(ctx, s.listKey(key), values...)
		}
		pipe.SAdd(ctx, s.indexKey(), key)
		return nil
	})
	if err != nil {
		s.logger.Error("Redis save failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis save %s: %w", key, err)
	}
	return nil
}

// Fetch returns the records under key.
func (s *Store) Fetch(ctx context.Context, key string) ([]record.Record, error) {
	known, err := s.client.SIsMember(ctx, s.indexKey(), key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis fetch %s: %w", key, err)
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}

	values, err := s.client.LRange(ctx, s.listKey(key), 0, -1).Result()
	if err == redis.Nil {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis fetch %s: %w", key, err)
	}

	recs := make([]record.Record, 0, len(values))
	for _, v := range values {
		var rec record.Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("decode record in %s: %w", key, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	removed, err := s.client.SRem(ctx, s.indexKey(), key).Result()
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", internalerr.ErrNotFound, key)
	}
	return s.client.Del(ctx, s.listKey(key)).Err()
}

// Keys lists stored keys in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
