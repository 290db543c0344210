package sched

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/dedup"
	"github.com/fourth04/redisqueue/store"
)

// DedupScheduler is a Scheduler that additionally owns a deduplication
// filter. Enqueue admits each task through the filter first; duplicates
// are dropped and reported as redisqueue.ErrDuplicate.
type DedupScheduler struct {
	sched  *Scheduler
	cfg    DedupConfig
	logger *slog.Logger

	fp dedup.Fingerprinter

	mu     sync.Mutex
	filter *dedup.Filter
}

// NewDedup creates a scheduler with deduplication.
func NewDedup(st store.Store, cfg DedupConfig, opts ...Option) (*DedupScheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	inner, err := New(st, cfg.Config, opts...)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	return &DedupScheduler{sched: inner, cfg: cfg, logger: o.logger, fp: o.fp}, nil
}

// Open binds the queue and the fingerprint set. FlushOnStart clears both.
func (d *DedupScheduler) Open(ctx context.Context) error {
	if err := d.sched.Open(ctx); err != nil {
		return err
	}

	fopts := []dedup.Option{
		dedup.WithLogger(d.logger),
		dedup.WithDebug(d.cfg.FilterDebug),
	}
	if d.fp != nil {
		fopts = append(fopts, dedup.WithFingerprinter(d.fp))
	}
	f := dedup.New(d.sched.store, d.cfg.FilterKey, fopts...)
	if d.cfg.FlushOnStart {
		if err := f.Clear(ctx); err != nil {
			return err
		}
	}
	if n, lerr := f.Len(ctx); lerr == nil && n > 0 {
		d.logger.Info("resuming dedup filter",
			slog.String("key", f.Key()),
			slog.Int64("fingerprints", n),
		)
	}

	d.mu.Lock()
	d.filter = f
	d.mu.Unlock()
	return nil
}

func (d *DedupScheduler) openedFilter() (*dedup.Filter, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.filter == nil {
		// Mirror the inner scheduler's lifecycle error.
		if _, err := d.sched.opened(); err != nil {
			return nil, err
		}
		return nil, redisqueue.ErrNotOpen
	}
	return d.filter, nil
}

// Enqueue admits the task through the filter, then pushes it. Admission
// and push are not transactional: a task is recorded as seen even if the
// subsequent push fails.
func (d *DedupScheduler) Enqueue(ctx context.Context, t *redisqueue.Task) error {
	f, err := d.openedFilter()
	if err != nil {
		return err
	}
	seen, err := f.Seen(ctx, t)
	if err != nil {
		return err
	}
	if seen {
		return redisqueue.ErrDuplicate
	}
	return d.sched.Enqueue(ctx, t)
}

// Dequeue behaves exactly as the plain Scheduler's Dequeue.
func (d *DedupScheduler) Dequeue(ctx context.Context) (*redisqueue.Task, error) {
	return d.sched.Dequeue(ctx)
}

// Len reports the number of queued tasks.
func (d *DedupScheduler) Len(ctx context.Context) (int64, error) {
	return d.sched.Len(ctx)
}

// FilterLen reports the number of distinct fingerprints recorded.
func (d *DedupScheduler) FilterLen(ctx context.Context) (int64, error) {
	f, err := d.openedFilter()
	if err != nil {
		return 0, err
	}
	return f.Len(ctx)
}

// Flush clears the fingerprint set and the queue together.
func (d *DedupScheduler) Flush(ctx context.Context) error {
	f, err := d.openedFilter()
	if err != nil {
		return err
	}
	if err := f.Clear(ctx); err != nil {
		return err
	}
	return d.sched.Flush(ctx)
}

// Close flushes the fingerprint set and the queue unless Config.Persist is
// set, then releases the in-process handles.
func (d *DedupScheduler) Close(ctx context.Context) error {
	d.mu.Lock()
	f := d.filter
	d.filter = nil
	d.mu.Unlock()

	if f != nil && !d.cfg.Persist {
		if err := f.Clear(ctx); err != nil {
			return err
		}
	}
	return d.sched.Close(ctx)
}
