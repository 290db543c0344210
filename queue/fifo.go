package queue

import (
	"context"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// FIFOQueue is strict first-in-first-out: push at the head, pop from the
// tail.
type FIFOQueue struct {
	base
}

// NewFIFO creates a FIFO queue over the collection at key.
func NewFIFO(st store.Store, key string, codec redisqueue.Codec) *FIFOQueue {
	return &FIFOQueue{base{store: st, key: key, codec: codec}}
}

// Push appends the task at the head of the list.
func (q *FIFOQueue) Push(ctx context.Context, t *redisqueue.Task) error {
	data, err := q.encode(t)
	if err != nil {
		return err
	}
	return q.store.ListPush(ctx, q.key, data)
}

// Pop removes the oldest task, blocking up to timeout when positive.
func (q *FIFOQueue) Pop(ctx context.Context, timeout time.Duration) (*redisqueue.Task, error) {
	data, err := q.store.ListPop(ctx, q.key, store.Tail, timeout)
	if err != nil {
		return nil, err
	}
	return q.decode(data)
}

// Len reports the number of queued tasks.
func (q *FIFOQueue) Len(ctx context.Context) (int64, error) {
	return q.store.ListLen(ctx, q.key)
}
