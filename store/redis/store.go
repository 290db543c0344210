package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store implements store.Store backed by Redis.
type Store struct {
	client goredis.Cmdable
	logger *slog.Logger
}

// New creates a new Redis-backed store. The caller owns the Redis client
// lifecycle.
func New(client goredis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() goredis.Cmdable { return s.client }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ──────────────────────────────────────────────────
// Lists
// ──────────────────────────────────────────────────

// ListPush inserts at the head of the list (LPUSH).
func (s *Store) ListPush(ctx context.Context, key string, value []byte) error {
	if err := s.client.LPush(ctx, key, value).Err(); err != nil {
		return fmt.Errorf("redisqueue/redis: lpush: %w", err)
	}
	return nil
}

// ListPop removes one element from the given end. With timeout > 0 it
// issues the blocking variant (BRPOP/BLPOP) and waits up to timeout.
func (s *Store) ListPop(ctx context.Context, key string, end store.End, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		return s.listPopBlocking(ctx, key, end, timeout)
	}

	var cmd *goredis.StringCmd
	switch end {
	case store.Tail:
		cmd = s.client.RPop(ctx, key)
	default:
		cmd = s.client.LPop(ctx, key)
	}
	data, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, redisqueue.ErrEmpty
		}
		return nil, fmt.Errorf("redisqueue/redis: pop: %w", err)
	}
	return data, nil
}

func (s *Store) listPopBlocking(ctx context.Context, key string, end store.End, timeout time.Duration) ([]byte, error) {
	var cmd *goredis.StringSliceCmd
	switch end {
	case store.Tail:
		cmd = s.client.BRPop(ctx, timeout, key)
	default:
		cmd = s.client.BLPop(ctx, timeout, key)
	}
	// BRPOP/BLPOP reply with [key, value].
	res, err := cmd.Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, redisqueue.ErrEmpty
		}
		return nil, fmt.Errorf("redisqueue/redis: blocking pop: %w", err)
	}
	if len(res) < 2 {
		return nil, redisqueue.ErrEmpty
	}
	return []byte(res[1]), nil
}

// ListLen reports the list length (LLEN).
func (s *Store) ListLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redisqueue/redis: llen: %w", err)
	}
	return n, nil
}

// ──────────────────────────────────────────────────
// Sorted sets
// ──────────────────────────────────────────────────

// SortedAdd inserts into the sorted set keyed by score (ZADD).
func (s *Store) SortedAdd(ctx context.Context, key string, score float64, value []byte) error {
	err := s.client.ZAdd(ctx, key, goredis.Z{Score: score, Member: value}).Err()
	if err != nil {
		return fmt.Errorf("redisqueue/redis: zadd: %w", err)
	}
	return nil
}

// SortedPopMin atomically removes and returns the minimum-scored member
// (ZPOPMIN, a single-command transaction).
func (s *Store) SortedPopMin(ctx context.Context, key string) ([]byte, error) {
	members, err := s.client.ZPopMin(ctx, key, 1).Result()
	if err != nil {
		return nil, fmt.Errorf("redisqueue/redis: zpopmin: %w", err)
	}
	if len(members) == 0 {
		return nil, redisqueue.ErrEmpty
	}
	member, ok := members[0].Member.(string)
	if !ok {
		return nil, fmt.Errorf("redisqueue/redis: zpopmin: unexpected member type %T", members[0].Member)
	}
	return []byte(member), nil
}

// SortedLen reports the sorted-set cardinality (ZCARD).
func (s *Store) SortedLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redisqueue/redis: zcard: %w", err)
	}
	return n, nil
}

// ──────────────────────────────────────────────────
// Sets
// ──────────────────────────────────────────────────

// SetAdd atomically adds member to the set (SADD) and reports whether it
// was newly inserted.
func (s *Store) SetAdd(ctx context.Context, key string, member []byte) (bool, error) {
	added, err := s.client.SAdd(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("redisqueue/redis: sadd: %w", err)
	}
	return added > 0, nil
}

// SetLen reports the set cardinality (SCARD).
func (s *Store) SetLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redisqueue/redis: scard: %w", err)
	}
	return n, nil
}

// ──────────────────────────────────────────────────
// Collections
// ──────────────────────────────────────────────────

// Del removes the named collections (DEL).
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redisqueue/redis: del: %w", err)
	}
	return nil
}
