package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Rate limit response headers. Matching is case-insensitive via
// http.Header canonicalization.
const (
	headerLimit      = "X-RateLimit-Limit"
	headerRemaining  = "X-RateLimit-Remaining"
	headerResetAfter = "X-RateLimit-Reset-After"
	headerBucket     = "X-RateLimit-Bucket"
	headerGlobal     = "X-RateLimit-Global"
	headerRetryAfter = "Retry-After"
)

// DefaultRetryCap bounds how many consecutive 429 responses one
// logical call absorbs before giving up.
const DefaultRetryCap = 3

// Defaults for bucket map cleanup. Buckets idle past the TTL are
// dropped during an occasional sweep.
const (
	DefaultBucketTTL     = time.Hour
	DefaultSweepInterval = 5 * time.Minute
)

// sender is the request executor seam: it turns one built request into
// one HTTP exchange.
type sender interface {
	send(ctx context.Context, req *Request) (*http.Response, error)
}

// Ratelimiter throttles requests to honor the platform's per-route
// buckets and global limit. Each client owns one instance; the bucket
// registry lives and dies with it, so independent clients never share
// throttling state.
type Ratelimiter struct {
	buckets  *bucketStore
	global   *globalGuard
	exec     sender
	disabled bool
	retryCap int
	log      *zap.Logger

	// Injected time sources keep the wait logic testable without real
	// sleeping.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func newRatelimiter(exec sender, disabled bool, retryCap int, ttl, sweepInterval time.Duration, log *zap.Logger) *Ratelimiter {
	if retryCap <= 0 {
		retryCap = DefaultRetryCap
	}
	return &Ratelimiter{
		buckets:  newBucketStore(ttl, sweepInterval),
		global:   &globalGuard{},
		exec:     exec,
		disabled: disabled,
		retryCap: retryCap,
		log:      log,
		now:      func() time.Time { return time.Now() },
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryState bounds the 429 retry loop for one logical call. It is a
// plain value so tests can exercise the cap without a server.
type retryState struct {
	seen429 int
	cap     int
}

// retry records one more 429 and reports whether another attempt is
// allowed.
func (s *retryState) retry() bool {
	s.seen429++
	return s.seen429 < s.cap
}

// Perform sends the request under rate limit control and returns the
// raw response for the caller to classify. Requests to the same bucket
// are serialized in arrival order; requests to different buckets never
// block one another unless the global limit is active. On
// cancellation, held slots are released and no bucket state changes.
func (rl *Ratelimiter) Perform(ctx context.Context, req *Request) (*http.Response, error) {
	b := rl.buckets.get(req.Route.key, rl.now())
	if rl.disabled {
		return rl.performDirect(ctx, req, b)
	}

	release, err := b.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	state := retryState{cap: rl.retryCap}
	for {
		if err := rl.waitBucket(ctx, req, b); err != nil {
			return nil, err
		}
		if err := rl.waitGlobal(ctx, req); err != nil {
			return nil, err
		}

		resp, err := rl.exec.send(ctx, req)
		if err != nil {
			return nil, &NetworkError{Route: req.Route.String(), Err: err}
		}

		rl.applyHeaders(b, resp)
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		retryAfter, global := rl.handle429(b, resp)
		drainBody(resp)
		if !state.retry() {
			return nil, &RateLimitError{
				Route:      req.Route.String(),
				RetryAfter: retryAfter,
				Global:     global,
				Attempts:   state.seen429,
			}
		}
		rl.log.Warn("rate limited, retrying",
			zap.String("route", req.Route.String()),
			zap.Duration("retry_after", retryAfter),
			zap.Bool("global", global),
			zap.Int("attempt", state.seen429))
		if err := rl.sleep(ctx, retryAfter); err != nil {
			return nil, err
		}
	}
}

// performDirect is the ratelimiter-disabled path: no slot, no waits,
// no retries. Headers are still parsed and recorded so diagnostics
// stay consistent for callers throttling through an external proxy.
func (rl *Ratelimiter) performDirect(ctx context.Context, req *Request, b *bucket) (*http.Response, error) {
	resp, err := rl.exec.send(ctx, req)
	if err != nil {
		return nil, &NetworkError{Route: req.Route.String(), Err: err}
	}
	rl.applyHeaders(b, resp)
	if resp.StatusCode == http.StatusTooManyRequests {
		rl.handle429(b, resp)
	}
	return resp, nil
}

// waitBucket suspends until the bucket's window replenishes, when the
// last observed headers say the allowance is spent.
func (rl *Ratelimiter) waitBucket(ctx context.Context, req *Request, b *bucket) error {
	_, remaining, resetAt := b.snapshot()
	now := rl.now()
	if remaining > 0 || !now.Before(resetAt) {
		return nil
	}
	wait := resetAt.Sub(now)
	rl.log.Debug("bucket exhausted, waiting",
		zap.String("route", req.Route.String()),
		zap.Duration("wait", wait))
	return rl.sleep(ctx, wait)
}

// waitGlobal suspends while the platform-wide limit is active. Every
// bucket checks here before sending, so an active global limit stalls
// all traffic without any bucket holding a shared lock for the wait.
func (rl *Ratelimiter) waitGlobal(ctx context.Context, req *Request) error {
	until, active := rl.global.deadline(rl.now())
	if !active {
		return nil
	}
	wait := until.Sub(rl.now())
	rl.log.Debug("global limit active, waiting",
		zap.String("route", req.Route.String()),
		zap.Duration("wait", wait))
	return rl.sleep(ctx, wait)
}

// applyHeaders records the server's view of the bucket. Counters are
// only ever set from observed headers, never guessed; an incomplete
// header set leaves the state untouched.
func (rl *Ratelimiter) applyHeaders(b *bucket, resp *http.Response) {
	limit, okLimit := headerInt(resp.Header, headerLimit)
	remaining, okRemaining := headerInt(resp.Header, headerRemaining)
	resetAfter, okReset := headerSeconds(resp.Header, headerResetAfter)
	if !okLimit || !okRemaining || !okReset {
		return
	}

	b.applyUpdate(limit, remaining, resetAfter, rl.now())
	if id := resp.Header.Get(headerBucket); id != "" {
		rl.log.Debug("bucket update",
			zap.String("bucket", id),
			zap.Int("limit", limit),
			zap.Int("remaining", remaining),
			zap.Duration("reset_after", resetAfter))
	}
}

// handle429 applies a throttling response: a global 429 trips the
// shared guard, a per-route one tightens this bucket directly.
func (rl *Ratelimiter) handle429(b *bucket, resp *http.Response) (time.Duration, bool) {
	retryAfter, ok := headerSeconds(resp.Header, headerRetryAfter)
	if !ok {
		retryAfter = time.Second
	}
	global := headerBool(resp.Header, headerGlobal)
	if global {
		rl.global.trip(rl.now().Add(retryAfter))
	} else {
		b.apply429(retryAfter, rl.now())
	}
	return retryAfter, global
}

// headerInt parses a base-10 header value.
func headerInt(h http.Header, key string) (int, bool) {
	raw := h.Get(key)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// headerSeconds parses a fractional seconds header value.
func headerSeconds(h http.Header, key string) (time.Duration, bool) {
	raw := h.Get(key)
	if raw == "" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// headerBool parses a boolean header value.
func headerBool(h http.Header, key string) bool {
	raw := h.Get(key)
	if raw == "" {
		return false
	}
	val, err := strconv.ParseBool(raw)
	return err == nil && val
}

// drainBody releases a response we will not return to the caller so
// the transport can reuse the connection.
func drainBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
