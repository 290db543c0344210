package sched

import (
	"fmt"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/queue"
)

// QueueConfig names one queue collection and its ordering discipline.
type QueueConfig struct {
	// Key is the store collection name. Required: collection names are
	// resolved once at construction and never defaulted from ambient
	// state.
	Key string

	// Discipline selects the ordering policy. Empty defaults to FIFO.
	Discipline queue.Discipline
}

// Config holds configuration for a Scheduler. All fields are fixed for the
// scheduler's lifetime.
type Config struct {
	// Queue is the collection the scheduler operates on.
	Queue QueueConfig

	// Persist keeps the backing collections on Close instead of flushing
	// them.
	Persist bool

	// FlushOnStart clears the backing collections during Open.
	FlushOnStart bool

	// IdleTimeout is how long Dequeue blocks waiting for a task before
	// reporting empty. Zero means non-blocking. Must be >= 0. Ignored by
	// the priority discipline, which never blocks.
	IdleTimeout time.Duration

	// Codec selects the task codec by name. Empty defaults to JSON.
	Codec string
}

// DefaultConfig returns a Config with sensible defaults: a persistent
// FIFO queue named "redisqueue:tasks" with non-blocking dequeue.
func DefaultConfig() Config {
	return Config{
		Queue:   QueueConfig{Key: "redisqueue:tasks", Discipline: queue.FIFO},
		Persist: true,
	}
}

func (c Config) validate() error {
	if c.Queue.Key == "" {
		return fmt.Errorf("%w: queue key must not be empty", redisqueue.ErrInvalidConfig)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout must not be negative", redisqueue.ErrInvalidConfig)
	}
	return nil
}

// DedupConfig extends Config with the deduplication filter settings.
type DedupConfig struct {
	Config

	// FilterKey is the store collection holding the fingerprint set.
	// Required.
	FilterKey string

	// FilterDebug logs every filtered duplicate instead of only the first
	// per scheduler instance.
	FilterDebug bool
}

func (c DedupConfig) validate() error {
	if err := c.Config.validate(); err != nil {
		return err
	}
	if c.FilterKey == "" {
		return fmt.Errorf("%w: filter key must not be empty", redisqueue.ErrInvalidConfig)
	}
	return nil
}

// PipeConfig holds configuration for a PipeScheduler: two independently
// configured queues plus the shared lifecycle flags.
type PipeConfig struct {
	// In is the inbound queue, Out the outbound.
	In  QueueConfig
	Out QueueConfig

	// Persist keeps both collections on Close instead of flushing them.
	Persist bool

	// FlushOnStart clears both collections during Open.
	FlushOnStart bool

	// IdleTimeout is how long Dequeue (and the dequeue half of Pipe)
	// blocks waiting for a task. Zero means non-blocking. Must be >= 0.
	IdleTimeout time.Duration

	// Codec selects the task codec by name, shared by both queues.
	Codec string
}

func (c PipeConfig) validate() error {
	if c.In.Key == "" || c.Out.Key == "" {
		return fmt.Errorf("%w: pipe queue keys must not be empty", redisqueue.ErrInvalidConfig)
	}
	if c.In.Key == c.Out.Key {
		return fmt.Errorf("%w: pipe queues must use distinct keys", redisqueue.ErrInvalidConfig)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout must not be negative", redisqueue.ErrInvalidConfig)
	}
	return nil
}
