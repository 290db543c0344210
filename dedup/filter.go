package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// Option configures the Filter.
type Option func(*Filter)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) { f.logger = l }
}

// WithFingerprinter sets a custom fingerprinter.
func WithFingerprinter(fp Fingerprinter) Option {
	return func(f *Filter) { f.fp = fp }
}

// WithDebug controls duplicate logging: when true every duplicate is
// logged, otherwise only the first duplicate per Filter instance is.
func WithDebug(debug bool) Option {
	return func(f *Filter) { f.debug = debug }
}

// Filter is a fingerprint-set admission filter over a single named
// collection. It is a process-local handle; the fingerprint set itself is
// shared and outlives any Filter instance.
type Filter struct {
	store  store.Store
	key    string
	fp     Fingerprinter
	logger *slog.Logger
	debug  bool

	// logDupes latches the "first duplicate" log message for this
	// instance when debug logging is off.
	mu       sync.Mutex
	logDupes bool
}

// New creates a filter over the fingerprint set at key.
func New(st store.Store, key string, opts ...Option) *Filter {
	f := &Filter{
		store:    st,
		key:      key,
		fp:       FingerprintFunc(Fingerprint),
		logger:   slog.Default(),
		logDupes: true,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Key returns the collection name the fingerprint set is stored under.
func (f *Filter) Key() string { return f.key }

// Seen computes the task's fingerprint, atomically records it, and reports
// whether it was already present: true for duplicates, false for
// first-time admissions. The check-and-insert is a single atomic store
// round trip.
func (f *Filter) Seen(ctx context.Context, t *redisqueue.Task) (bool, error) {
	fp := f.fp.Fingerprint(t)
	added, err := f.store.SetAdd(ctx, f.key, []byte(fp))
	if err != nil {
		return false, fmt.Errorf("redisqueue/dedup: record fingerprint: %w", err)
	}
	if added {
		return false, nil
	}
	f.logDuplicate(t, fp)
	return true, nil
}

// Len reports the number of distinct fingerprints recorded.
func (f *Filter) Len(ctx context.Context) (int64, error) {
	n, err := f.store.SetLen(ctx, f.key)
	if err != nil {
		return 0, fmt.Errorf("redisqueue/dedup: fingerprint count: %w", err)
	}
	return n, nil
}

// Clear removes all recorded fingerprints.
func (f *Filter) Clear(ctx context.Context) error {
	if err := f.store.Del(ctx, f.key); err != nil {
		return fmt.Errorf("redisqueue/dedup: clear fingerprints: %w", err)
	}
	return nil
}

func (f *Filter) logDuplicate(t *redisqueue.Task, fp string) {
	if f.debug {
		f.logger.Debug("filtered duplicate task",
			slog.String("task_name", t.Name),
			slog.String("fingerprint", fp),
			slog.String("key", f.key),
		)
		return
	}

	f.mu.Lock()
	first := f.logDupes
	f.logDupes = false
	f.mu.Unlock()

	if first {
		f.logger.Info("filtered duplicate task; further duplicates will not be logged (enable debug to log all)",
			slog.String("task_name", t.Name),
			slog.String("fingerprint", fp),
			slog.String("key", f.key),
		)
	}
}
