// Package queue implements the ordering disciplines over a single named
// collection in the backing store: FIFO, LIFO, and Priority.
//
// All three disciplines expose the same capability set (Push, Pop, Len,
// Clear) through the [Queue] interface, and hold no state of their own
// beyond the collection key: any number of processes may push and pop the
// same collection concurrently, coordinated entirely by the store's atomic
// primitives.
//
// # Disciplines
//
// FIFO pushes at the head and pops from the tail (strict first-in
// first-out across all producers and consumers). LIFO pushes and pops at
// the head. Priority keys items by negated priority in a sorted set, so
// the highest-priority item pops first; ties between equal priorities
// follow the store's ordering of equal-keyed members, not insertion order.
//
// FIFO and LIFO support blocking pops: Pop with a positive timeout waits
// up to that long for an item to appear. Priority pops never block:
// the timeout is ignored, and callers polling an empty priority queue
// should bring their own idle strategy (see package backoff).
//
// # Construction
//
// Use [New] with a [Discipline] value:
//
//	q, err := queue.New(queue.Priority, st, "crawl:requests", codec)
package queue
