package memory

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// ──────────────────────────────────────────────────
// Lists
// ──────────────────────────────────────────────────

func TestListPushPop_Ends(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	for _, v := range []string{"a", "b", "c"} {
		if err := m.ListPush(ctx, "q", []byte(v)); err != nil {
			t.Fatalf("ListPush returned error: %v", err)
		}
	}

	// Push inserts at the head, so the tail holds the oldest element.
	data, err := m.ListPop(ctx, "q", store.Tail, 0)
	if err != nil {
		t.Fatalf("ListPop(Tail) returned error: %v", err)
	}
	if string(data) != "a" {
		t.Fatalf("ListPop(Tail) = %q, want %q", data, "a")
	}

	data, err = m.ListPop(ctx, "q", store.Head, 0)
	if err != nil {
		t.Fatalf("ListPop(Head) returned error: %v", err)
	}
	if string(data) != "c" {
		t.Fatalf("ListPop(Head) = %q, want %q", data, "c")
	}

	n, err := m.ListLen(ctx, "q")
	if err != nil {
		t.Fatalf("ListLen returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("ListLen = %d, want 1", n)
	}
}

func TestListPop_EmptyNonBlocking(t *testing.T) {
	t.Parallel()
	m := New()

	_, err := m.ListPop(context.Background(), "missing", store.Tail, 0)
	if !errors.Is(err, redisqueue.ErrEmpty) {
		t.Fatalf("ListPop on empty list error = %v, want ErrEmpty", err)
	}
}

func TestListPop_BlockingTimesOut(t *testing.T) {
	t.Parallel()
	m := New()

	start := time.Now()
	_, err := m.ListPop(context.Background(), "q", store.Tail, 150*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, redisqueue.ErrEmpty) {
		t.Fatalf("blocking ListPop error = %v, want ErrEmpty", err)
	}
	if elapsed < 100*time.Millisecond {
		t.Fatalf("blocking ListPop returned after %v, expected to wait ~150ms", elapsed)
	}
}

func TestListPop_BlockingWokenByPush(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = m.ListPush(ctx, "q", []byte("late"))
	}()

	start := time.Now()
	data, err := m.ListPop(ctx, "q", store.Tail, 5*time.Second)
	if err != nil {
		t.Fatalf("blocking ListPop returned error: %v", err)
	}
	if string(data) != "late" {
		t.Fatalf("blocking ListPop = %q, want %q", data, "late")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("blocking ListPop took %v, expected prompt wake-up", elapsed)
	}
}

func TestListPop_ContextCancelled(t *testing.T) {
	t.Parallel()
	m := New()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := m.ListPop(ctx, "q", store.Tail, 5*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled ListPop error = %v, want context.Canceled", err)
	}
}

func TestListPop_ConcurrentExactlyOnce(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	const items = 50
	for i := 0; i < items; i++ {
		if err := m.ListPush(ctx, "q", []byte{byte(i)}); err != nil {
			t.Fatalf("ListPush returned error: %v", err)
		}
	}

	var mu sync.Mutex
	got := make(map[byte]int)

	var wg sync.WaitGroup
	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				data, err := m.ListPop(ctx, "q", store.Tail, 0)
				if errors.Is(err, redisqueue.ErrEmpty) {
					return
				}
				if err != nil {
					t.Errorf("ListPop returned error: %v", err)
					return
				}
				mu.Lock()
				got[data[0]]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(got) != items {
		t.Fatalf("popped %d distinct items, want %d", len(got), items)
	}
	for v, n := range got {
		if n != 1 {
			t.Fatalf("item %d popped %d times, want exactly once", v, n)
		}
	}
}

// ──────────────────────────────────────────────────
// Sorted sets
// ──────────────────────────────────────────────────

func TestSortedPopMin_Order(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	adds := []struct {
		score float64
		v     string
	}{
		{2, "second"},
		{1, "first"},
		{3, "third"},
	}
	for _, a := range adds {
		if err := m.SortedAdd(ctx, "z", a.score, []byte(a.v)); err != nil {
			t.Fatalf("SortedAdd returned error: %v", err)
		}
	}

	for _, want := range []string{"first", "second", "third"} {
		data, err := m.SortedPopMin(ctx, "z")
		if err != nil {
			t.Fatalf("SortedPopMin returned error: %v", err)
		}
		if string(data) != want {
			t.Fatalf("SortedPopMin = %q, want %q", data, want)
		}
	}

	if _, err := m.SortedPopMin(ctx, "z"); !errors.Is(err, redisqueue.ErrEmpty) {
		t.Fatalf("SortedPopMin on empty set error = %v, want ErrEmpty", err)
	}
}

func TestSortedAdd_TieBreakIsLexicographic(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	if err := m.SortedAdd(ctx, "z", 1, []byte("bbb")); err != nil {
		t.Fatalf("SortedAdd returned error: %v", err)
	}
	if err := m.SortedAdd(ctx, "z", 1, []byte("aaa")); err != nil {
		t.Fatalf("SortedAdd returned error: %v", err)
	}

	data, err := m.SortedPopMin(ctx, "z")
	if err != nil {
		t.Fatalf("SortedPopMin returned error: %v", err)
	}
	if !bytes.Equal(data, []byte("aaa")) {
		t.Fatalf("SortedPopMin = %q, want lexicographically smaller member first", data)
	}
}

func TestSortedAdd_RescoresExistingMember(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	if err := m.SortedAdd(ctx, "z", 5, []byte("x")); err != nil {
		t.Fatalf("SortedAdd returned error: %v", err)
	}
	if err := m.SortedAdd(ctx, "z", 1, []byte("x")); err != nil {
		t.Fatalf("SortedAdd returned error: %v", err)
	}

	n, err := m.SortedLen(ctx, "z")
	if err != nil {
		t.Fatalf("SortedLen returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("SortedLen after re-add = %d, want 1", n)
	}
}

// ──────────────────────────────────────────────────
// Sets
// ──────────────────────────────────────────────────

func TestSetAdd_ReportsNewInserts(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	added, err := m.SetAdd(ctx, "s", []byte("fp"))
	if err != nil {
		t.Fatalf("SetAdd returned error: %v", err)
	}
	if !added {
		t.Fatal("first SetAdd reported existing member")
	}

	added, err = m.SetAdd(ctx, "s", []byte("fp"))
	if err != nil {
		t.Fatalf("SetAdd returned error: %v", err)
	}
	if added {
		t.Fatal("second SetAdd reported new insert")
	}

	n, err := m.SetLen(ctx, "s")
	if err != nil {
		t.Fatalf("SetLen returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("SetLen = %d, want 1", n)
	}
}

// ──────────────────────────────────────────────────
// Del / Ping
// ──────────────────────────────────────────────────

func TestDel_RemovesAllKinds(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := context.Background()

	_ = m.ListPush(ctx, "l", []byte("v"))
	_ = m.SortedAdd(ctx, "z", 1, []byte("v"))
	if _, err := m.SetAdd(ctx, "s", []byte("v")); err != nil {
		t.Fatalf("SetAdd returned error: %v", err)
	}

	if err := m.Del(ctx, "l", "z", "s"); err != nil {
		t.Fatalf("Del returned error: %v", err)
	}

	if n, _ := m.ListLen(ctx, "l"); n != 0 {
		t.Fatalf("ListLen after Del = %d, want 0", n)
	}
	if n, _ := m.SortedLen(ctx, "z"); n != 0 {
		t.Fatalf("SortedLen after Del = %d, want 0", n)
	}
	if n, _ := m.SetLen(ctx, "s"); n != 0 {
		t.Fatalf("SetLen after Del = %d, want 0", n)
	}

	// Deleting missing collections is a no-op.
	if err := m.Del(ctx, "l", "never-existed"); err != nil {
		t.Fatalf("Del of missing keys returned error: %v", err)
	}
}

func TestPing(t *testing.T) {
	t.Parallel()
	if err := New().Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}
