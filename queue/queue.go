package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// Discipline selects the ordering policy of a queue.
type Discipline string

const (
	// FIFO is strict first-in-first-out ordering.
	FIFO Discipline = "fifo"
	// LIFO is strict last-in-first-out ordering.
	LIFO Discipline = "lifo"
	// Priority orders by the task Priority field, highest first.
	Priority Discipline = "priority"
)

// Queue is one ordering discipline over a single named collection.
// Implementations are stateless handles; all mutual exclusion comes from
// the backing store.
type Queue interface {
	// Push encodes the task and stores it.
	Push(ctx context.Context, t *redisqueue.Task) error

	// Pop removes and returns one task per the discipline's ordering.
	// An empty queue reports redisqueue.ErrEmpty; with timeout > 0,
	// FIFO and LIFO first block up to timeout waiting for a task
	// (Priority ignores the timeout). A task that pops but fails to
	// decode reports redisqueue.ErrDecode; the item is already gone.
	Pop(ctx context.Context, timeout time.Duration) (*redisqueue.Task, error)

	// Len reports the current item count.
	Len(ctx context.Context) (int64, error)

	// Clear deletes all items in the collection.
	Clear(ctx context.Context) error

	// Key returns the collection name this queue operates on.
	Key() string
}

// New constructs a queue with the given discipline over the collection at
// key. The empty discipline defaults to FIFO; unknown disciplines report
// redisqueue.ErrUnknownDiscipline.
func New(d Discipline, st store.Store, key string, codec redisqueue.Codec) (Queue, error) {
	switch d {
	case FIFO, "":
		return NewFIFO(st, key, codec), nil
	case LIFO:
		return NewLIFO(st, key, codec), nil
	case Priority:
		return NewPriority(st, key, codec), nil
	default:
		return nil, fmt.Errorf("%w: %q", redisqueue.ErrUnknownDiscipline, d)
	}
}

// base carries the handles shared by all disciplines.
type base struct {
	store store.Store
	key   string
	codec redisqueue.Codec
}

// Key returns the collection name.
func (b *base) Key() string { return b.key }

// Clear deletes the backing collection.
func (b *base) Clear(ctx context.Context) error {
	return b.store.Del(ctx, b.key)
}

func (b *base) encode(t *redisqueue.Task) ([]byte, error) {
	data, err := b.codec.Encode(t)
	if err != nil {
		return nil, fmt.Errorf("redisqueue/queue: encode task: %w", err)
	}
	return data, nil
}

// decode surfaces codec failures as ErrDecode. By the time decode runs the
// item has already been removed from the store, so a failure loses it.
func (b *base) decode(data []byte) (*redisqueue.Task, error) {
	t, err := b.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", redisqueue.ErrDecode, err)
	}
	return t, nil
}
