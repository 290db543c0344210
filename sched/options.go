package sched

import (
	"log/slog"

	"github.com/fourth04/redisqueue/dedup"
)

// Option configures a scheduler.
type Option func(*options)

type options struct {
	logger *slog.Logger
	fp     dedup.Fingerprinter
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFingerprinter sets a custom fingerprinter for the deduplication
// filter. Only DedupScheduler consults it; other schedulers ignore it.
func WithFingerprinter(fp dedup.Fingerprinter) Option {
	return func(o *options) { o.fp = fp }
}
