package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/aretw0/seqline/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix is prepended to every key written by the store.
const DefaultPrefix = "seqline:"

// Store implements ports.LayoutStore on Redis.
//
// Each layout is a JSON string under prefix+"layout:"+id. A sorted set under prefix+"layouts"
// lists the ids, scored by expiry time, so List can drop expired entries lazily.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL makes stored layouts expire. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now for expiry bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(id string) string {
	return s.prefix + "layout:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "layouts"
}

// Save writes the layout and records it in the index.
func (s *Store) Save(ctx context.Context, id string, layout *domain.Layout) error {
	data, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout %s: %w", id, err)
	}

	score := math.Inf(1)
	if s.ttl > 0 {
		score = float64(s.now().Add(s.ttl).UnixMilli())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(id), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error saving layout %s: %w", id, err)
	}
	return nil
}

// Load reads a layout back.
func (s *Store) Load(ctx context.Context, id string) (*domain.Layout, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrLayoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading layout %s: %w", id, err)
	}

	var layout domain.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to decode layout %s: %w", id, err)
	}
	return &layout, nil
}

// Delete removes a layout and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error deleting layout %s: %w", id, err)
	}
	return nil
}

// List returns the ids of the layouts that have not expired, in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		// lazy cleanup of expired index entries
		cutoff := strconv.FormatInt(s.now().UnixMilli(), 10)
		if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", cutoff).Err(); err != nil {
			return nil, fmt.Errorf("redis error pruning index: %w", err)
		}
	}
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing layouts: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}
