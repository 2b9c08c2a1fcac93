package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/importkit/pkg/failurestore"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

const (
	defaultPrefix = "importkit:failures"
	defaultTTL    = 7 * 24 * time.Hour
)

// Store keeps the failures of a run as JSON records in one Redis list. Every
// save refreshes the list TTL.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ failurestore.Store = (*Store)(nil)

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithTTL sets how long a run's failures are kept. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the list key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithConfig applies the TTL and key prefix of cfg.
func WithConfig(cfg Config) Option {
	return func(s *Store) {
		WithTTL(cfg.FailureTTL)(s)
		WithKeyPrefix(cfg.KeyPrefix)(s)
	}
}

// New creates a store on client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix, ttl: defaultTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the list key of runID.
func (s *Store) Key(runID uuid.UUID) string {
	return s.prefix + ":" + runID.String()
}

func (s *Store) Save(ctx context.Context, runID uuid.UUID, failures ...rowvalidator.Failure) error {
	if runID == uuid.Nil {
		return failurestore.ErrMissingRunID
	}
	if len(failures) == 0 {
		return nil
	}

	records := failurestore.NewRecords(runID, failures)
	values := make([]any, len(records))
	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return errors.Join(failurestore.ErrSaveFailed, err)
		}
		values[i] = data
	}

	key := s.Key(runID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(failurestore.ErrSaveFailed, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, runID uuid.UUID) ([]failurestore.Record, error) {
	items, err := s.client.LRange(ctx, s.Key(runID), 0, -1).Result()
	if err != nil {
		return nil, errors.Join(failurestore.ErrListFailed, err)
	}

	records := make([]failurestore.Record, 0, len(items))
	for _, item := range items {
		var rec failurestore.Record
		if err := failurestore.UnmarshalRecord([]byte(item), &rec); err != nil {
			return nil, errors.Join(failurestore.ErrListFailed, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
