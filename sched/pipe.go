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

// Side names one of the two queues a PipeScheduler routes between.
type Side string

const (
	// In is the inbound queue.
	In Side = "in"
	// Out is the outbound queue.
	Out Side = "out"
)

// PipeScheduler owns two independently configured queues and routes
// enqueues and dequeues between them. Pipe moves one task from the inbound
// to the outbound queue.
type PipeScheduler struct {
	store  store.Store
	cfg    PipeConfig
	codec  redisqueue.Codec
	logger *slog.Logger

	mu      sync.Mutex
	state   state
	in, out queue.Queue
}

// NewPipe creates a pipe scheduler. Configuration errors (empty or shared
// keys, negative idle timeout, unknown discipline or codec) surface here.
func NewPipe(st store.Store, cfg PipeConfig, opts ...Option) (*PipeScheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	codec, err := redisqueue.CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	for _, qc := range []QueueConfig{cfg.In, cfg.Out} {
		if _, err := queue.New(qc.Discipline, st, qc.Key, codec); err != nil {
			return nil, err
		}
	}

	o := newOptions(opts)
	return &PipeScheduler{store: st, cfg: cfg, codec: codec, logger: o.logger}, nil
}

// Open verifies the store is reachable and binds both queues. FlushOnStart
// clears both together.
func (p *PipeScheduler) Open(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateOpened:
		return nil
	case stateClosed:
		return redisqueue.ErrClosed
	}

	if err := p.store.Ping(ctx); err != nil {
		return fmt.Errorf("redisqueue/sched: store unreachable: %w", err)
	}

	in, err := queue.New(p.cfg.In.Discipline, p.store, p.cfg.In.Key, p.codec)
	if err != nil {
		return err
	}
	out, err := queue.New(p.cfg.Out.Discipline, p.store, p.cfg.Out.Key, p.codec)
	if err != nil {
		return err
	}

	for _, q := range []queue.Queue{in, out} {
		if p.cfg.FlushOnStart {
			if err := q.Clear(ctx); err != nil {
				return err
			}
		}
		if n, lerr := q.Len(ctx); lerr == nil && n > 0 {
			p.logger.Info("resuming queue",
				slog.String("key", q.Key()),
				slog.Int64("tasks", n),
			)
		}
	}

	p.in, p.out = in, out
	p.state = stateOpened
	return nil
}

// side resolves a Side to its bound queue handle.
func (p *PipeScheduler) side(s Side) (queue.Queue, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateClosed:
		return nil, redisqueue.ErrClosed
	case stateCreated:
		return nil, redisqueue.ErrNotOpen
	}

	switch s {
	case In:
		return p.in, nil
	case Out:
		return p.out, nil
	default:
		return nil, fmt.Errorf("%w: unknown queue side %q", redisqueue.ErrInvalidConfig, s)
	}
}

// Enqueue pushes the task onto the named side.
func (p *PipeScheduler) Enqueue(ctx context.Context, t *redisqueue.Task, s Side) error {
	q, err := p.side(s)
	if err != nil {
		return err
	}
	return q.Push(ctx, t)
}

// Dequeue pops one task from the named side, blocking up to
// Config.IdleTimeout when the discipline supports it.
func (p *PipeScheduler) Dequeue(ctx context.Context, s Side) (*redisqueue.Task, error) {
	q, err := p.side(s)
	if err != nil {
		return nil, err
	}
	return q.Pop(ctx, p.cfg.IdleTimeout)
}

// Pipe moves one task from the inbound to the outbound queue. The transfer
// is two independent store operations, not a transaction: a crash between
// them loses the task (at-most-once across the pipe boundary). An empty
// inbound queue reports redisqueue.ErrEmpty and leaves the outbound queue
// untouched.
func (p *PipeScheduler) Pipe(ctx context.Context) error {
	t, err := p.Dequeue(ctx, In)
	if err != nil {
		return err
	}
	if err := p.Enqueue(ctx, t, Out); err != nil {
		return fmt.Errorf("redisqueue/sched: pipe transfer: %w", err)
	}
	return nil
}

// Len reports the combined length of both queues.
func (p *PipeScheduler) Len(ctx context.Context) (int64, error) {
	in, err := p.side(In)
	if err != nil {
		return 0, err
	}
	out, err := p.side(Out)
	if err != nil {
		return 0, err
	}
	n, err := in.Len(ctx)
	if err != nil {
		return 0, err
	}
	m, err := out.Len(ctx)
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

// Flush clears both queues together.
func (p *PipeScheduler) Flush(ctx context.Context) error {
	in, err := p.side(In)
	if err != nil {
		return err
	}
	out, err := p.side(Out)
	if err != nil {
		return err
	}
	if err := in.Clear(ctx); err != nil {
		return err
	}
	return out.Clear(ctx)
}

// Close flushes both queues unless Config.Persist is set, then releases
// the in-process handles. Close is terminal.
func (p *PipeScheduler) Close(ctx context.Context) error {
	p.mu.Lock()
	in, out := p.in, p.out
	wasOpen := p.state == stateOpened
	p.state = stateClosed
	p.in, p.out = nil, nil
	p.mu.Unlock()

	if !wasOpen || p.cfg.Persist {
		return nil
	}
	if err := in.Clear(ctx); err != nil {
		return err
	}
	return out.Clear(ctx)
}
