package queue

import (
	"context"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// LIFOQueue is strict last-in-first-out: push and pop both at the head.
type LIFOQueue struct {
	base
}

// NewLIFO creates a LIFO queue over the collection at key.
func NewLIFO(st store.Store, key string, codec redisqueue.Codec) *LIFOQueue {
	return &LIFOQueue{base{store: st, key: key, codec: codec}}
}

// Push appends the task at the head of the list.
func (q *LIFOQueue) Push(ctx context.Context, t *redisqueue.Task) error {
	data, err := q.encode(t)
	if err != nil {
		return err
	}
	return q.store.ListPush(ctx, q.key, data)
}

// Pop removes the newest task, blocking up to timeout when positive.
func (q *LIFOQueue) Pop(ctx context.Context, timeout time.Duration) (*redisqueue.Task, error) {
	data, err := q.store.ListPop(ctx, q.key, store.Head, timeout)
	if err != nil {
		return nil, err
	}
	return q.decode(data)
}

// Len reports the number of queued tasks.
func (q *LIFOQueue) Len(ctx context.Context) (int64, error) {
	return q.store.ListLen(ctx, q.key)
}
