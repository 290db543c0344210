package sched

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/backoff"
)

// Pump drives a PipeScheduler continuously: a set of worker goroutines
// call Pipe in a loop, pacing transfers with an optional token-bucket rate
// limit and backing off while the inbound queue is empty.
type Pump struct {
	pipe    *PipeScheduler
	workers int
	limiter *rate.Limiter
	idle    backoff.Strategy
	logger  *slog.Logger
}

// PumpOption configures a Pump.
type PumpOption func(*Pump)

// WithPumpWorkers sets the number of concurrent transfer goroutines.
func WithPumpWorkers(n int) PumpOption {
	return func(p *Pump) { p.workers = n }
}

// WithPumpRateLimit caps sustained transfers per second across all
// workers, with the given burst size.
func WithPumpRateLimit(perSecond float64, burst int) PumpOption {
	return func(p *Pump) {
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithPumpIdleStrategy sets the wait strategy applied between polls while
// the inbound queue is empty.
func WithPumpIdleStrategy(s backoff.Strategy) PumpOption {
	return func(p *Pump) { p.idle = s }
}

// WithPumpLogger sets a custom logger.
func WithPumpLogger(l *slog.Logger) PumpOption {
	return func(p *Pump) { p.logger = l }
}

// NewPump creates a pump over an opened PipeScheduler.
func NewPump(pipe *PipeScheduler, opts ...PumpOption) *Pump {
	p := &Pump{
		pipe:    pipe,
		workers: 1,
		idle:    backoff.DefaultStrategy(),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	return p
}

// Run transfers tasks until the context is cancelled or a transfer fails.
// It returns the context's error on cancellation, so callers typically
// treat context.Canceled as a clean shutdown.
func (p *Pump) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error { return p.run(ctx) })
	}
	return g.Wait()
}

func (p *Pump) run(ctx context.Context) error {
	idle := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err := p.pipe.Pipe(ctx)
		switch {
		case err == nil:
			idle = 0
		case errors.Is(err, redisqueue.ErrEmpty):
			idle++
			if err := p.sleep(ctx, p.idle.Delay(idle)); err != nil {
				return err
			}
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			p.logger.Error("pipe transfer failed", slog.String("error", err.Error()))
			return fmt.Errorf("redisqueue/sched: pump: %w", err)
		}
	}
}

func (p *Pump) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
