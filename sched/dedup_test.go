package sched

import (
	"context"
	"errors"
	"testing"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/dedup"
	"github.com/fourth04/redisqueue/queue"
	"github.com/fourth04/redisqueue/store/memory"
)

func dedupConfig() DedupConfig {
	return DedupConfig{
		Config:    Config{Queue: QueueConfig{Key: "q", Discipline: queue.FIFO}},
		FilterKey: "fp",
	}
}

func openDedup(t *testing.T, st *memory.Store, cfg DedupConfig) *DedupScheduler {
	t.Helper()
	d, err := NewDedup(st, cfg)
	if err != nil {
		t.Fatalf("NewDedup returned error: %v", err)
	}
	if err := d.Open(context.Background()); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return d
}

func TestNewDedup_RequiresFilterKey(t *testing.T) {
	t.Parallel()
	cfg := dedupConfig()
	cfg.FilterKey = ""
	if _, err := NewDedup(memory.New(), cfg); !errors.Is(err, redisqueue.ErrInvalidConfig) {
		t.Fatalf("NewDedup error = %v, want ErrInvalidConfig", err)
	}
}

func TestDedupEnqueue_DropsDuplicates(t *testing.T) {
	t.Parallel()
	d := openDedup(t, memory.New(), dedupConfig())
	ctx := context.Background()

	if err := d.Enqueue(ctx, task("x")); err != nil {
		t.Fatalf("first Enqueue returned error: %v", err)
	}
	if n, _ := d.Len(ctx); n != 1 {
		t.Fatalf("Len after first enqueue = %d, want 1", n)
	}

	if err := d.Enqueue(ctx, task("x")); !errors.Is(err, redisqueue.ErrDuplicate) {
		t.Fatalf("duplicate Enqueue error = %v, want ErrDuplicate", err)
	}
	if n, _ := d.Len(ctx); n != 1 {
		t.Fatalf("Len after duplicate enqueue = %d, want 1", n)
	}

	if err := d.Enqueue(ctx, task("y")); err != nil {
		t.Fatalf("Enqueue of distinct task returned error: %v", err)
	}
	if n, _ := d.Len(ctx); n != 2 {
		t.Fatalf("Len after distinct enqueue = %d, want 2", n)
	}
	if n, _ := d.FilterLen(ctx); n != 2 {
		t.Fatalf("FilterLen = %d, want 2", n)
	}
}

func TestDedupDequeue_PassesThrough(t *testing.T) {
	t.Parallel()
	d := openDedup(t, memory.New(), dedupConfig())
	ctx := context.Background()

	if err := d.Enqueue(ctx, task("x")); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	got, err := d.Dequeue(ctx)
	if err != nil {
		t.Fatalf("Dequeue returned error: %v", err)
	}
	if got.Name != "x" {
		t.Fatalf("Dequeue = %q, want %q", got.Name, "x")
	}

	// Dequeue does not consult the filter: the fingerprint stays recorded.
	if err := d.Enqueue(ctx, task("x")); !errors.Is(err, redisqueue.ErrDuplicate) {
		t.Fatalf("re-enqueue after dequeue error = %v, want ErrDuplicate", err)
	}
}

func TestDedupFlush_ClearsFilterAndQueue(t *testing.T) {
	t.Parallel()
	d := openDedup(t, memory.New(), dedupConfig())
	ctx := context.Background()

	if err := d.Enqueue(ctx, task("x")); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if err := d.Flush(ctx); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}

	if n, _ := d.Len(ctx); n != 0 {
		t.Fatalf("Len after Flush = %d, want 0", n)
	}
	if n, _ := d.FilterLen(ctx); n != 0 {
		t.Fatalf("FilterLen after Flush = %d, want 0", n)
	}

	// The same task is admissible again.
	if err := d.Enqueue(ctx, task("x")); err != nil {
		t.Fatalf("Enqueue after Flush returned error: %v", err)
	}
}

func TestDedupClose_FlushesBothUnlessPersist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		persist bool
		want    int64
	}{
		{"flushed on close", false, 0},
		{"persisted on close", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st := memory.New()
			cfg := dedupConfig()
			cfg.Persist = tt.persist
			d := openDedup(t, st, cfg)

			if err := d.Enqueue(ctx, task("x")); err != nil {
				t.Fatalf("Enqueue returned error: %v", err)
			}
			if err := d.Close(ctx); err != nil {
				t.Fatalf("Close returned error: %v", err)
			}

			if n, _ := st.ListLen(ctx, "q"); n != tt.want {
				t.Fatalf("queue length after Close = %d, want %d", n, tt.want)
			}
			if n, _ := st.SetLen(ctx, "fp"); n != tt.want {
				t.Fatalf("fingerprint count after Close = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestDedup_CustomFingerprinter(t *testing.T) {
	t.Parallel()
	st := memory.New()

	byName := func(tk *redisqueue.Task) string { return tk.Name }
	d, err := NewDedup(st, dedupConfig(), WithFingerprinter(dedup.FingerprintFunc(byName)))
	if err != nil {
		t.Fatalf("NewDedup returned error: %v", err)
	}
	ctx := context.Background()
	if err := d.Open(ctx); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := d.Enqueue(ctx, &redisqueue.Task{Name: "x", Payload: []byte("1")}); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	err = d.Enqueue(ctx, &redisqueue.Task{Name: "x", Payload: []byte("2")})
	if !errors.Is(err, redisqueue.ErrDuplicate) {
		t.Fatalf("Enqueue with same name error = %v, want ErrDuplicate", err)
	}
}

func TestDedupOperations_BeforeOpen(t *testing.T) {
	t.Parallel()
	d, err := NewDedup(memory.New(), dedupConfig())
	if err != nil {
		t.Fatalf("NewDedup returned error: %v", err)
	}
	ctx := context.Background()

	if err := d.Enqueue(ctx, task("x")); !errors.Is(err, redisqueue.ErrNotOpen) {
		t.Fatalf("Enqueue before Open error = %v, want ErrNotOpen", err)
	}
	if _, err := d.FilterLen(ctx); !errors.Is(err, redisqueue.ErrNotOpen) {
		t.Fatalf("FilterLen before Open error = %v, want ErrNotOpen", err)
	}
}
