// Package backoff provides idle-wait strategies for pollers of queues that
// cannot block, such as the priority discipline or a pipe pump draining an
// empty inbound queue. All strategies are safe for concurrent use (they
// are stateless).
package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy computes the wait before the next poll.
type Strategy interface {
	// Delay returns how long to wait after the nth consecutive empty poll
	// (1-indexed). Callers reset n to zero whenever a poll yields an item.
	Delay(n int) time.Duration
}

// ──────────────────────────────────────────────────
// Constant
// ──────────────────────────────────────────────────

// Constant always returns the same delay regardless of how long the queue
// has been empty.
type Constant struct {
	Interval time.Duration
}

// NewConstant creates a constant idle-wait strategy.
func NewConstant(interval time.Duration) *Constant {
	return &Constant{Interval: interval}
}

// Delay returns the fixed interval.
func (c *Constant) Delay(_ int) time.Duration {
	return c.Interval
}

// ──────────────────────────────────────────────────
// Exponential
// ──────────────────────────────────────────────────

// Exponential doubles the delay for each consecutive empty poll.
// Delay = min(Initial * 2^(n-1), Max).
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
}

// NewExponential creates an exponential idle-wait strategy.
func NewExponential(initial, maxDelay time.Duration) *Exponential {
	return &Exponential{Initial: initial, Max: maxDelay}
}

// Delay returns Initial * 2^(n-1), capped at Max.
func (e *Exponential) Delay(n int) time.Duration {
	d := time.Duration(float64(e.Initial) * math.Pow(2, float64(n-1)))
	if e.Max > 0 && d > e.Max {
		return e.Max
	}
	return d
}

// ──────────────────────────────────────────────────
// ExponentialWithJitter (full jitter)
// ──────────────────────────────────────────────────

// ExponentialWithJitter applies full jitter to an exponential base.
// Delay = random value in [0, min(Initial * 2^(n-1), Max)].
// This spreads out re-polls when many consumers go idle at once.
type ExponentialWithJitter struct {
	Initial time.Duration
	Max     time.Duration
}

// NewExponentialWithJitter creates an exponential idle-wait with full jitter.
func NewExponentialWithJitter(initial, maxDelay time.Duration) *ExponentialWithJitter {
	return &ExponentialWithJitter{Initial: initial, Max: maxDelay}
}

// Delay returns a random duration in [0, min(Initial * 2^(n-1), Max)].
func (e *ExponentialWithJitter) Delay(n int) time.Duration {
	base := float64(e.Initial) * math.Pow(2, float64(n-1))
	if e.Max > 0 && base > float64(e.Max) {
		base = float64(e.Max)
	}
	return time.Duration(rand.Float64() * base) //nolint:gosec // jitter intentionally uses non-crypto rand
}

// ──────────────────────────────────────────────────
// Default
// ──────────────────────────────────────────────────

// DefaultStrategy returns the default idle wait used by the pipe pump:
// ExponentialWithJitter with 100ms initial and 5s max.
func DefaultStrategy() Strategy {
	return NewExponentialWithJitter(100*time.Millisecond, 5*time.Second)
}
