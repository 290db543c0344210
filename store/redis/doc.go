// Package redis implements store.Store on a Redis server or cluster.
// Lists back the FIFO/LIFO disciplines (LPUSH with RPOP/LPOP, or
// BRPOP/BLPOP for blocking pops), Sorted Sets back the priority discipline
// (ZADD/ZPOPMIN), and Sets back the deduplication filter (SADD/SCARD).
//
// The caller owns the Redis client lifecycle; this package never closes
// it. Pass the client through the constructor:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	st := redisstore.New(client)
//	if err := st.Ping(ctx); err != nil { ... }
package redis
