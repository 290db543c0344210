package queue

import (
	"context"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// PriorityQueue orders tasks by their Priority field, highest first, using
// the store's sorted-set primitives. Equal priorities pop in the store's
// own order for equal-scored members (Redis: lexicographic on the encoded
// payload), which is not insertion order; callers must not depend on it.
type PriorityQueue struct {
	base
}

// NewPriority creates a priority queue over the collection at key.
func NewPriority(st store.Store, key string, codec redisqueue.Codec) *PriorityQueue {
	return &PriorityQueue{base{store: st, key: key, codec: codec}}
}

// Push inserts the task keyed by its negated priority, so the smallest
// score is the most urgent task.
func (q *PriorityQueue) Push(ctx context.Context, t *redisqueue.Task) error {
	data, err := q.encode(t)
	if err != nil {
		return err
	}
	return q.store.SortedAdd(ctx, q.key, float64(-t.Priority), data)
}

// Pop removes the highest-priority task in a single store transaction, so
// a failed pop can never leave an item both present and handed to another
// caller. Blocking is not supported for this discipline; timeout is
// ignored and an empty queue reports redisqueue.ErrEmpty immediately.
// Callers polling an empty priority queue should bring their own idle
// strategy (see package backoff).
func (q *PriorityQueue) Pop(ctx context.Context, _ time.Duration) (*redisqueue.Task, error) {
	data, err := q.store.SortedPopMin(ctx, q.key)
	if err != nil {
		return nil, err
	}
	return q.decode(data)
}

// Len reports the number of queued tasks.
func (q *PriorityQueue) Len(ctx context.Context) (int64, error) {
	return q.store.SortedLen(ctx, q.key)
}
