// Package sched composes queues and the deduplication filter into
// enqueue/dequeue lifecycles shared by producer and consumer processes.
//
// Three schedulers are provided:
//
//   - [Scheduler] owns one queue and exposes Enqueue, Dequeue, Flush and
//     the Open/Close lifecycle.
//   - [DedupScheduler] additionally owns a dedup.Filter; Enqueue admits a
//     task through the filter first and drops duplicates with
//     redisqueue.ErrDuplicate.
//   - [PipeScheduler] owns an inbound and an outbound queue, routes
//     Enqueue/Dequeue by [Side], and moves items between them with
//     [PipeScheduler.Pipe]. [Pump] drives Pipe continuously in the
//     background with rate limiting and idle backoff.
//
// # Lifecycle
//
// Schedulers move Created → Opened → Closed, and Closed is terminal.
// Open binds the backing collections (pinging the store first) and flushes
// them when Config.FlushOnStart is set. Close flushes unless
// Config.Persist is set, then releases the in-process handles; further
// calls report redisqueue.ErrClosed.
//
// Schedulers are process-local handles: the backing collections are shared,
// outlive any scheduler instance, and may be worked by any number of
// schedulers in other processes concurrently.
package sched
