package rest

import (
	"context"
	"sync"
	"time"
)

// bucket tracks the server-reported allowance for one rate limit
// domain and serializes every request that consumes from it.
//
// The capacity-1 channel is the bucket's lock: a request holds a slot
// for the whole exchange, so at most one request per bucket is in
// flight and header updates land in send order. The runtime wakes
// blocked senders in FIFO order, so queued requests proceed in the
// order they arrived. The mutex guards the counters themselves; it
// exists so the ratelimiter-disabled mode can record observed headers
// without owning the slot.
type bucket struct {
	sem chan struct{}

	mu        sync.Mutex
	limit     int
	remaining int
	resetAt   time.Time
	lastUsed  time.Time
}

func newBucket(now time.Time) *bucket {
	return &bucket{
		sem:      make(chan struct{}, 1),
		lastUsed: now,
	}
}

// acquire takes the bucket's slot, suspending while another request
// for the same key is in flight. The returned release func is safe to
// defer; on cancellation no slot is held and no state has changed.
func (b *bucket) acquire(ctx context.Context) (func(), error) {
	select {
	case b.sem <- struct{}{}:
		return func() { <-b.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// snapshot reads the current counters.
func (b *bucket) snapshot() (limit, remaining int, resetAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limit, b.remaining, b.resetAt
}

// applyUpdate overwrites the counters from response headers. The
// caller sequences updates (via the slot, or accepts arrival order in
// disabled mode), so the latest completed exchange always wins.
func (b *bucket) applyUpdate(limit, remaining int, resetAfter time.Duration, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.limit = limit
	b.remaining = remaining
	b.resetAt = now.Add(resetAfter)
	b.lastUsed = now
}

// apply429 zeroes the allowance until retryAfter elapses. A 429 is a
// tighter bound than anything the regular headers reported.
func (b *bucket) apply429(retryAfter time.Duration, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remaining = 0
	b.resetAt = now.Add(retryAfter)
	b.lastUsed = now
}

func (b *bucket) touch(now time.Time) {
	b.mu.Lock()
	b.lastUsed = now
	b.mu.Unlock()
}

func (b *bucket) idleSince() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUsed
}

// bucketStore is the registry of live buckets, keyed by route template
// plus major parameter. Entries are created lazily on first use and
// swept once idle past the TTL, so a long-lived process churning
// through many channels does not grow the map without bound.
type bucketStore struct {
	ttl           time.Duration
	sweepInterval time.Duration

	mu        sync.Mutex
	buckets   map[bucketKey]*bucket
	lastSweep time.Time
}

func newBucketStore(ttl, sweepInterval time.Duration) *bucketStore {
	return &bucketStore{
		ttl:           ttl,
		sweepInterval: sweepInterval,
		buckets:       make(map[bucketKey]*bucket),
	}
}

// get returns the bucket for key, creating it on first use. An
// occasional inline sweep replaces a background janitor: no goroutine
// to manage, and an idle store has nothing to sweep anyway.
func (s *bucketStore) get(key bucketKey, now time.Time) *bucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sweepInterval > 0 && now.Sub(s.lastSweep) >= s.sweepInterval {
		s.sweepLocked(now)
	}

	b, ok := s.buckets[key]
	if !ok {
		b = newBucket(now)
		s.buckets[key] = b
	} else {
		b.touch(now)
	}
	return b
}

// len reports the number of live buckets.
func (s *bucketStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// sweep drops buckets idle past the TTL. Only unheld buckets whose
// reset deadline has passed are candidates; a bucket touched by get
// moments ago has a fresh lastUsed and is never collected out from
// under its caller.
func (s *bucketStore) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *bucketStore) sweepLocked(now time.Time) int {
	s.lastSweep = now
	if s.ttl <= 0 {
		return 0
	}

	removed := 0
	for key, b := range s.buckets {
		if len(b.sem) > 0 {
			continue
		}
		_, _, resetAt := b.snapshot()
		if now.Before(resetAt) {
			continue
		}
		if now.Sub(b.idleSince()) >= s.ttl {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

// globalGuard is the platform-wide limit shared by every bucket. It is
// tripped only by a 429 marked global and clears itself once the
// deadline passes.
type globalGuard struct {
	mu    sync.Mutex
	until time.Time
}

// deadline reports whether the guard is active at now, and until when.
func (g *globalGuard) deadline(now time.Time) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if now.Before(g.until) {
		return g.until, true
	}
	return time.Time{}, false
}

// trip activates the guard. Concurrent trips keep the later deadline.
func (g *globalGuard) trip(until time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if until.After(g.until) {
		g.until = until
	}
}
