// Package store defines the backing-store capability the queueing layer
// relies on for cross-process coordination: atomic list, sorted-set and set
// primitives over named collections. Each method is a single atomic round
// trip against the shared store; the only method allowed to block beyond
// network latency is ListPop with a positive timeout.
//
// Backends live in subpackages: store/redis for production, store/memory
// for tests and development.
package store

import (
	"context"
	"time"
)

// End names a side of a list collection.
type End string

const (
	// Head is the end ListPush inserts at.
	Head End = "head"
	// Tail is the end opposite Head.
	Tail End = "tail"
)

// Store is the set of atomic primitives the queueing layer needs.
// Implementations must be safe for concurrent use from any number of
// processes sharing the same collections.
type Store interface {
	// ListPush inserts value at the head of the list at key, creating the
	// list if it does not exist.
	ListPush(ctx context.Context, key string, value []byte) error

	// ListPop removes and returns one element from the given end. When the
	// list is empty it reports redisqueue.ErrEmpty; with timeout > 0 it
	// first blocks up to timeout waiting for an element to appear.
	ListPop(ctx context.Context, key string, end End, timeout time.Duration) ([]byte, error)

	// ListLen reports the number of elements in the list at key.
	ListLen(ctx context.Context, key string) (int64, error)

	// SortedAdd inserts value into the sorted set at key, keyed by score.
	// Re-adding an existing member updates its score.
	SortedAdd(ctx context.Context, key string, score float64, value []byte) error

	// SortedPopMin removes and returns the minimum-scored member in a
	// single transaction. Empty sets report redisqueue.ErrEmpty. The order
	// among equal-scored members is the store's own (Redis: lexicographic
	// on the member bytes), not insertion order.
	SortedPopMin(ctx context.Context, key string) ([]byte, error)

	// SortedLen reports the cardinality of the sorted set at key.
	SortedLen(ctx context.Context, key string) (int64, error)

	// SetAdd atomically adds member to the set at key and reports whether
	// it was newly inserted. Two concurrent adds of the same member must
	// not both observe a new insert.
	SetAdd(ctx context.Context, key string, member []byte) (bool, error)

	// SetLen reports the cardinality of the set at key.
	SetLen(ctx context.Context, key string) (int64, error)

	// Del removes the named collections entirely. Deleting a missing
	// collection is a no-op.
	Del(ctx context.Context, keys ...string) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
