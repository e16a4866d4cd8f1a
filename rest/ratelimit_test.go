package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// sleepRecorder stands in for real sleeping: it records each requested
// wait and advances the fake clock by it, so deadline waits pass
// instantly and deterministically.
type sleepRecorder struct {
	mu    sync.Mutex
	clock *testClock
	slept []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	r.clock.Advance(d)
	return nil
}

func (r *sleepRecorder) durations() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.slept...)
}

// instrument swaps the client's time sources for fakes.
func instrument(c *Client) (*testClock, *sleepRecorder) {
	clock := newTestClock()
	rec := &sleepRecorder{clock: clock}
	c.rl.now = clock.Now
	c.rl.sleep = rec.sleep
	return clock, rec
}

func rateHeaders(w http.ResponseWriter, limit, remaining int, resetAfter string) {
	w.Header().Set("X-RateLimit-Limit", fmt.Sprint(limit))
	w.Header().Set("X-RateLimit-Remaining", fmt.Sprint(remaining))
	w.Header().Set("X-RateLimit-Reset-After", resetAfter)
	w.Header().Set("X-RateLimit-Bucket", "abcd1234")
}

func TestExhaustedBucketWaitsForReset(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		remaining := 5 - int(n)
		if remaining < 0 {
			remaining = 4
		}
		rateHeaders(w, 5, remaining, "2.000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, rec := instrument(c)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		resp, err := c.rl.Perform(ctx, newRequest(routeCreateMessage(1)))
		require.NoError(t, err)
		drainBody(resp)
	}
	// The first five spend the window without any rate limit wait.
	require.Empty(t, rec.durations())

	// The sixth arrives with remaining 0 and must sit out the rest of
	// the window.
	resp, err := c.rl.Perform(ctx, newRequest(routeCreateMessage(1)))
	require.NoError(t, err)
	drainBody(resp)
	require.Equal(t, []time.Duration{2 * time.Second}, rec.durations())
	require.EqualValues(t, 6, calls.Load())
}

func TestGlobalGuardStallsAllBuckets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rateHeaders(w, 5, 4, "1.000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})
	clock, rec := instrument(c)

	c.rl.global.trip(clock.Now().Add(2 * time.Second))

	ctx := context.Background()
	// Unrelated buckets both wait out the same deadline.
	resp, err := c.rl.Perform(ctx, newRequest(routeCreateMessage(1)))
	require.NoError(t, err)
	drainBody(resp)
	resp, err = c.rl.Perform(ctx, newRequest(routeGuild(9)))
	require.NoError(t, err)
	drainBody(resp)

	slept := rec.durations()
	require.Len(t, slept, 1)
	require.Equal(t, 2*time.Second, slept[0])

	// Past the deadline the guard is clear and nothing waits.
	resp, err = c.rl.Perform(ctx, newRequest(routeGuild(10)))
	require.NoError(t, err)
	drainBody(resp)
	require.Len(t, rec.durations(), 1)
}

func TestGlobal429TripsGuardNotBucket(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("X-RateLimit-Global", "true")
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"You are being rate limited.","retry_after":2.0,"global":true}`))
			return
		}
		rateHeaders(w, 5, 4, "1.000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, rec := instrument(c)

	resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
	require.NoError(t, err)
	drainBody(resp)
	require.EqualValues(t, 2, calls.Load())
	require.Equal(t, []time.Duration{2 * time.Second}, rec.durations())

	// A global 429 must not tighten the per-route bucket.
	b := c.rl.buckets.get(routeCreateMessage(1).key, c.rl.now())
	_, remaining, _ := b.snapshot()
	require.Equal(t, 4, remaining)
}

func TestDifferentBucketsDoNotBlock(t *testing.T) {
	blockedEntered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/channels/1/messages" {
			close(blockedEntered)
			<-release
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})

	done := make(chan error, 1)
	go func() {
		resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
		if resp != nil {
			drainBody(resp)
		}
		done <- err
	}()

	<-blockedEntered
	// With channel 1 stalled in flight, channel 2 still completes.
	resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(2)))
	require.NoError(t, err)
	drainBody(resp)

	close(release)
	require.NoError(t, <-done)
}

func TestSameBucketSerialized(t *testing.T) {
	var inFlight, maxInFlight atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			seen := maxInFlight.Load()
			if cur <= seen || maxInFlight.CompareAndSwap(seen, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
			require.NoError(t, err)
			drainBody(resp)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, maxInFlight.Load())
}

func TestHeaderUpdatesApplyInSendOrder(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	b := newBucket(now)

	b.applyUpdate(5, 5, 2*time.Second, now)
	second := now.Add(200 * time.Millisecond)
	b.applyUpdate(5, 4, 1500*time.Millisecond, second)

	limit, remaining, resetAt := b.snapshot()
	require.Equal(t, 5, limit)
	require.Equal(t, 4, remaining)
	require.Equal(t, second.Add(1500*time.Millisecond), resetAt)
}

func TestDisabledModeSkipsWaitsButTracksState(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		rateHeaders(w, 5, 0, "60.000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client(), DisableRatelimiter: true})
	_, rec := instrument(c)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		resp, err := c.rl.Perform(ctx, newRequest(routeCreateMessage(1)))
		require.NoError(t, err)
		drainBody(resp)
	}

	// Never suspends, even with the window reported spent.
	require.Empty(t, rec.durations())
	require.EqualValues(t, 3, calls.Load())

	// Headers are still recorded for observability.
	b := c.rl.buckets.get(routeCreateMessage(1).key, c.rl.now())
	limit, remaining, resetAt := b.snapshot()
	require.Equal(t, 5, limit)
	require.Equal(t, 0, remaining)
	require.True(t, resetAt.After(c.rl.now()))
}

func TestRetryCapReturnsRateLimited(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"You are being rate limited.","retry_after":1.0,"global":false}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client(), RetryCap: 3})
	_, rec := instrument(c)

	_, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	require.Equal(t, 3, rle.Attempts)
	require.False(t, rle.Global)
	require.Equal(t, time.Second, rle.RetryAfter)

	// Exactly cap sends, with a wait between consecutive attempts but
	// none after the last.
	require.EqualValues(t, 3, calls.Load())
	require.Len(t, rec.durations(), 2)
}

func TestPerRoute429TightensBucket(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			rateHeaders(w, 5, 3, "10.000")
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"You are being rate limited.","retry_after":3.0,"global":false}`))
			return
		}
		rateHeaders(w, 5, 4, "1.000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, rec := instrument(c)

	resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
	require.NoError(t, err)
	drainBody(resp)

	// The 429's Retry-After wins over the header-derived reset.
	require.Equal(t, []time.Duration{3 * time.Second}, rec.durations())
	require.EqualValues(t, 2, calls.Load())
}

func TestCancellationReleasesSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rateHeaders(w, 5, 4, "1.000")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})

	key := routeCreateMessage(1).key
	b := c.rl.buckets.get(key, time.Now())
	b.applyUpdate(5, 0, time.Hour, time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.rl.Perform(ctx, newRequest(routeCreateMessage(1)))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The slot came back and the bucket state is untouched by the
	// cancelled call.
	require.Empty(t, b.sem)
	_, remaining, _ := b.snapshot()
	require.Equal(t, 0, remaining)

	// A later request for the same key can still proceed once the
	// window replenishes.
	b.applyUpdate(5, 1, time.Hour, time.Now())
	resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
	require.NoError(t, err)
	drainBody(resp)
}

func TestNetworkErrorsAreNotRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL})

	_, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	require.NotNil(t, errors.Unwrap(ne))
}

func TestBucketSweepDropsIdleEntries(t *testing.T) {
	clock := newTestClock()
	store := newBucketStore(time.Hour, time.Minute)

	key := routeCreateMessage(1).key
	store.get(key, clock.Now())
	require.Equal(t, 1, store.len())

	// Still fresh: survives a sweep.
	clock.Advance(30 * time.Minute)
	require.Zero(t, store.sweep(clock.Now()))

	// Idle past the TTL: collected.
	clock.Advance(31 * time.Minute)
	require.Equal(t, 1, store.sweep(clock.Now()))
	require.Zero(t, store.len())
}

func TestBucketSweepKeepsHeldAndPending(t *testing.T) {
	clock := newTestClock()
	store := newBucketStore(time.Hour, time.Minute)

	held := store.get(routeCreateMessage(1).key, clock.Now())
	releaseHeld, err := held.acquire(context.Background())
	require.NoError(t, err)

	pending := store.get(routeCreateMessage(2).key, clock.Now())
	pending.applyUpdate(5, 0, 3*time.Hour, clock.Now())

	clock.Advance(2 * time.Hour)
	require.Zero(t, store.sweep(clock.Now()))
	require.Equal(t, 2, store.len())

	releaseHeld()
	// The held bucket becomes collectible; the pending one still has
	// an unexpired reset deadline.
	require.Equal(t, 1, store.sweep(clock.Now()))
	require.Equal(t, 1, store.len())
}

func TestRetryStateCap(t *testing.T) {
	s := retryState{cap: 3}
	require.True(t, s.retry())
	require.True(t, s.retry())
	require.False(t, s.retry())
	require.Equal(t, 3, s.seen429)
}

func TestHeaderParsing(t *testing.T) {
	h := http.Header{}
	h.Set("X-RateLimit-Limit", "5")
	h.Set("X-RateLimit-Remaining", "0")
	h.Set("X-RateLimit-Reset-After", "1.250")
	h.Set("X-RateLimit-Global", "true")

	limit, ok := headerInt(h, headerLimit)
	require.True(t, ok)
	require.Equal(t, 5, limit)

	remaining, ok := headerInt(h, headerRemaining)
	require.True(t, ok)
	require.Zero(t, remaining)

	reset, ok := headerSeconds(h, headerResetAfter)
	require.True(t, ok)
	require.Equal(t, 1250*time.Millisecond, reset)

	require.True(t, headerBool(h, headerGlobal))
	require.False(t, headerBool(h, "X-Missing"))

	_, ok = headerInt(h, "X-Missing")
	require.False(t, ok)

	h.Set("X-RateLimit-Limit", "not-a-number")
	_, ok = headerInt(h, headerLimit)
	require.False(t, ok)
}

func TestNormalizeToken(t *testing.T) {
	require.Equal(t, "Bot abc", normalizeToken("abc"))
	require.Equal(t, "Bot abc", normalizeToken("  abc  "))
	require.Equal(t, "Bot abc", normalizeToken("Bot abc"))
	require.Equal(t, "Bearer abc", normalizeToken("Bearer abc"))
	require.Empty(t, normalizeToken("   "))
}

func TestIncompleteHeadersLeaveStateAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{Token: "t", BaseURL: srv.URL, HTTPClient: srv.Client()})
	resp, err := c.rl.Perform(context.Background(), newRequest(routeCreateMessage(1)))
	require.NoError(t, err)
	drainBody(resp)

	b := c.rl.buckets.get(routeCreateMessage(1).key, time.Now())
	limit, remaining, resetAt := b.snapshot()
	require.Zero(t, limit)
	require.Zero(t, remaining)
	require.True(t, resetAt.IsZero())
}
