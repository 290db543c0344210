// Package memory is a fully in-memory implementation of store.Store.
// Safe for concurrent access. Intended for unit testing and development;
// it coordinates only within a single process.
package memory

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/fourth04/redisqueue"
	"github.com/fourth04/redisqueue/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

type zentry struct {
	score  float64
	member []byte
}

// Store holds all collections behind a single mutex. Lists keep index 0 as
// the head; sorted sets are kept ordered by (score, member bytes) to match
// Redis tie-breaking.
type Store struct {
	mu     sync.Mutex
	lists  map[string][][]byte
	sorted map[string][]zentry
	sets   map[string]map[string]struct{}

	// notify holds one channel per list key, closed (and replaced) on each
	// push so blocked poppers can re-check.
	notify map[string]chan struct{}
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		lists:  make(map[string][][]byte),
		sorted: make(map[string][]zentry),
		sets:   make(map[string]map[string]struct{}),
		notify: make(map[string]chan struct{}),
	}
}

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// ──────────────────────────────────────────────────
// Lists
// ──────────────────────────────────────────────────

// ListPush inserts value at the head of the list and wakes any blocked
// poppers.
func (m *Store) ListPush(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.lists[key] = append([][]byte{cp}, m.lists[key]...)

	if ch, ok := m.notify[key]; ok {
		close(ch)
		delete(m.notify, key)
	}
	return nil
}

// ListPop removes one element from the given end, blocking up to timeout
// when the list is empty and timeout > 0.
func (m *Store) ListPop(ctx context.Context, key string, end store.End, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)

	for {
		m.mu.Lock()
		if data, ok := m.takeLocked(key, end); ok {
			m.mu.Unlock()
			return data, nil
		}
		if timeout <= 0 {
			m.mu.Unlock()
			return nil, redisqueue.ErrEmpty
		}
		wait := time.Until(deadline)
		if wait <= 0 {
			m.mu.Unlock()
			return nil, redisqueue.ErrEmpty
		}
		ch := m.notifyLocked(key)
		m.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ch:
			timer.Stop()
		case <-timer.C:
			// Re-check once; a push may have raced the timer.
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// takeLocked removes one element from the named end. Caller holds mu.
func (m *Store) takeLocked(key string, end store.End) ([]byte, bool) {
	list := m.lists[key]
	if len(list) == 0 {
		return nil, false
	}
	var data []byte
	if end == store.Tail {
		data = list[len(list)-1]
		list = list[:len(list)-1]
	} else {
		data = list[0]
		list = list[1:]
	}
	if len(list) == 0 {
		delete(m.lists, key)
	} else {
		m.lists[key] = list
	}
	return data, true
}

// notifyLocked returns the wake-up channel for key, creating it if needed.
// Caller holds mu.
func (m *Store) notifyLocked(key string) chan struct{} {
	ch, ok := m.notify[key]
	if !ok {
		ch = make(chan struct{})
		m.notify[key] = ch
	}
	return ch
}

// ListLen reports the number of elements in the list at key.
func (m *Store) ListLen(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.lists[key])), nil
}

// ──────────────────────────────────────────────────
// Sorted sets
// ──────────────────────────────────────────────────

// SortedAdd inserts value keyed by score. Re-adding an existing member
// updates its score, as Redis ZADD does.
func (m *Store) SortedAdd(_ context.Context, key string, score float64, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.sorted[key]
	for i, e := range entries {
		if bytes.Equal(e.member, value) {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	// Insertion point: ascending score, ties broken by member bytes.
	i := 0
	for i < len(entries) {
		e := entries[i]
		if e.score > score || (e.score == score && bytes.Compare(e.member, cp) > 0) {
			break
		}
		i++
	}
	entries = append(entries, zentry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = zentry{score: score, member: cp}
	m.sorted[key] = entries
	return nil
}

// SortedPopMin removes and returns the minimum-scored member.
func (m *Store) SortedPopMin(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.sorted[key]
	if len(entries) == 0 {
		return nil, redisqueue.ErrEmpty
	}
	data := entries[0].member
	entries = entries[1:]
	if len(entries) == 0 {
		delete(m.sorted, key)
	} else {
		m.sorted[key] = entries
	}
	return data, nil
}

// SortedLen reports the cardinality of the sorted set at key.
func (m *Store) SortedLen(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sorted[key])), nil
}

// ──────────────────────────────────────────────────
// Sets
// ──────────────────────────────────────────────────

// SetAdd adds member to the set and reports whether it was newly inserted.
func (m *Store) SetAdd(_ context.Context, key string, member []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	if _, exists := set[string(member)]; exists {
		return false, nil
	}
	set[string(member)] = struct{}{}
	return true, nil
}

// SetLen reports the cardinality of the set at key.
func (m *Store) SetLen(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sets[key])), nil
}

// ──────────────────────────────────────────────────
// Collections
// ──────────────────────────────────────────────────

// Del removes the named collections. Blocked poppers are not woken; they
// time out as if the list stayed empty, matching Redis DEL semantics.
func (m *Store) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.lists, key)
		delete(m.sorted, key)
		delete(m.sets, key)
	}
	return nil
}
