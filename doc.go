// Package redisqueue provides distributed, persistent work queues backed by
// a shared store (typically Redis). Any number of producer and consumer
// processes enqueue and dequeue opaque tasks through named collections, with
// pluggable ordering disciplines, fingerprint-based deduplication, and
// two-queue pipeline composition.
//
// Redisqueue is designed as a library, not a service. The host application
// owns the Redis client lifecycle and embeds a scheduler:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	st := redisstore.New(client)
//
//	s, err := sched.New(st, sched.Config{
//	    Queue: sched.QueueConfig{Key: "crawl:requests", Discipline: queue.FIFO},
//	})
//	if err := s.Open(ctx); err != nil { ... }
//	defer s.Close(ctx)
//
// # Architecture
//
// All cross-process coordination is delegated to the store's atomic
// primitives (store.Store); redisqueue holds no local locks, because local
// locks cannot coordinate across processes. Ordering disciplines live in
// package queue, the admission filter in package dedup, and the composed
// enqueue/dequeue lifecycles in package sched.
//
// Delivery is at-least-once: an item popped but failing to decode is lost,
// and the two-step pipe transfer can lose an item on a crash between its
// dequeue and enqueue halves. Deduplication is best-effort at admission
// time, not an exactly-once guarantee.
package redisqueue
