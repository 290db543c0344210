package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/queue"
	"github.com/fourth04/redisqueue/store"
)

type state int

const (
	stateCreated state = iota
	stateOpened
	stateClosed
)

// Scheduler owns one queue and exposes its enqueue/dequeue lifecycle.
// It holds no exclusive state in the backing store; the queue collection is
// shared and outlives the scheduler.
type Scheduler struct {
	store  store.Store
	cfg    Config
	codec  redisqueue.Codec
	logger *slog.Logger

	mu    sync.Mutex
	state state
	queue queue.Queue
}

// New creates a scheduler. Configuration errors (empty key, negative idle
// timeout, unknown discipline or codec) surface here, not at Open.
func New(st store.Store, cfg Config, opts ...Option) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	codec, err := redisqueue.CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	if _, err := queue.New(cfg.Queue.Discipline, st, cfg.Queue.Key, codec); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	return &Scheduler{store: st, cfg: cfg, codec: codec, logger: o.logger}, nil
}

// Open verifies the store is reachable and binds the queue. When
// Config.FlushOnStart is set the queue is cleared before use; otherwise a
// non-empty queue is logged so operators can see work being resumed.
// Opening an already-open scheduler is a no-op; a closed scheduler cannot
// be reopened.
func (s *Scheduler) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateOpened:
		return nil
	case stateClosed:
		return redisqueue.ErrClosed
	}

	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("redisqueue/sched: store unreachable: %w", err)
	}

	q, err := queue.New(s.cfg.Queue.Discipline, s.store, s.cfg.Queue.Key, s.codec)
	if err != nil {
		return err
	}
	if s.cfg.FlushOnStart {
		if err := q.Clear(ctx); err != nil {
			return err
		}
	}
	if n, lerr := q.Len(ctx); lerr == nil && n > 0 {
		s.logger.Info("resuming queue",
			slog.String("key", q.Key()),
			slog.Int64("tasks", n),
		)
	}

	s.queue = q
	s.state = stateOpened
	return nil
}

// opened returns the bound queue handle. Operations run outside the mutex:
// cross-process mutual exclusion is the store's job, and a blocking dequeue
// must not starve concurrent enqueues.
func (s *Scheduler) opened() (queue.Queue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateOpened:
		return s.queue, nil
	case stateClosed:
		return nil, redisqueue.ErrClosed
	default:
		return nil, redisqueue.ErrNotOpen
	}
}

// Enqueue pushes the task unconditionally.
func (s *Scheduler) Enqueue(ctx context.Context, t *redisqueue.Task) error {
	q, err := s.opened()
	if err != nil {
		return err
	}
	return q.Push(ctx, t)
}

// Dequeue pops one task, blocking up to Config.IdleTimeout when the queue
// discipline supports it. An empty queue reports redisqueue.ErrEmpty.
func (s *Scheduler) Dequeue(ctx context.Context) (*redisqueue.Task, error) {
	q, err := s.opened()
	if err != nil {
		return nil, err
	}
	return q.Pop(ctx, s.cfg.IdleTimeout)
}

// Len reports the number of queued tasks.
func (s *Scheduler) Len(ctx context.Context) (int64, error) {
	q, err := s.opened()
	if err != nil {
		return 0, err
	}
	return q.Len(ctx)
}

// Flush clears the queue.
func (s *Scheduler) Flush(ctx context.Context) error {
	q, err := s.opened()
	if err != nil {
		return err
	}
	return q.Clear(ctx)
}

// Close flushes the queue unless Config.Persist is set, then releases the
// in-process handles. Close is terminal: the scheduler cannot be reopened.
func (s *Scheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	q := s.queue
	wasOpen := s.state == stateOpened
	s.state = stateClosed
	s.queue = nil
	s.mu.Unlock()

	if !wasOpen || s.cfg.Persist {
		return nil
	}
	return q.Clear(ctx)
}
