// Package rest implements the HTTP client for the chat platform API:
// typed endpoint methods layered over a rate-limited request
// dispatcher that honors the platform's per-route buckets and global
// limit.
package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cordialhq/cordial/discord"
)

// Version is the library version reported in the User-Agent.
const Version = "0.3.0"

const (
	defaultAPIBase   = "https://discord.com/api/v10"
	defaultUserAgent = "DiscordBot (https://github.com/cordialhq/cordial, " + Version + ")"
)

// Exchange describes one completed HTTP exchange for diagnostics.
type Exchange struct {
	At       time.Time
	Method   string
	Route    string
	Status   int
	Duration time.Duration
}

// Recorder observes completed exchanges. Implementations must be safe
// for concurrent use; a slow recorder slows requests.
type Recorder interface {
	RecordExchange(ctx context.Context, ex Exchange)
}

// Options configures a Client. The zero value is a usable
// unauthenticated client against the public API.
type Options struct {
	// Token is the bot or bearer token. Empty builds an
	// unauthenticated client, enough for webhook-token and invite
	// endpoints. A bare token is sent with the Bot prefix.
	Token string

	// BaseURL overrides the API base, for routing through a local
	// proxy. The default is the public v10 base.
	BaseURL string

	// UserAgent overrides the default library identification.
	UserAgent string

	// HTTPClient supplies the transport; timeout policy belongs to it,
	// not to the dispatcher.
	HTTPClient *http.Client

	// Logger receives dispatcher diagnostics. Nil logs nothing.
	Logger *zap.Logger

	// DisableRatelimiter bypasses bucket and global throttling and the
	// 429 retry loop, for callers throttling through an external
	// proxy. Headers are still parsed so observability is unchanged.
	DisableRatelimiter bool

	// RetryCap bounds consecutive 429 responses absorbed per call.
	// Zero means DefaultRetryCap.
	RetryCap int

	// BucketTTL and SweepInterval control cleanup of idle rate limit
	// buckets. Zero means the package defaults; a negative TTL keeps
	// buckets forever.
	BucketTTL     time.Duration
	SweepInterval time.Duration

	// ApplicationID seeds the id used by application command
	// endpoints. It may also be set later, once known.
	ApplicationID discord.ApplicationID

	// DefaultAllowedMentions is merged into outgoing messages that do
	// not set their own mention policy.
	DefaultAllowedMentions *discord.AllowedMentions

	// Recorder, when set, observes every completed exchange.
	Recorder Recorder
}

// Client is a typed API client. Safe for concurrent use; all methods
// go through one shared rate limit dispatcher.
type Client struct {
	rl                     *Ratelimiter
	log                    *zap.Logger
	recorder               Recorder
	defaultAllowedMentions *discord.AllowedMentions

	appID atomic.Uint64
}

// New builds a client from options.
func New(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultAPIBase
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	ttl := opts.BucketTTL
	if ttl == 0 {
		ttl = DefaultBucketTTL
	}
	sweepInterval := opts.SweepInterval
	if sweepInterval == 0 {
		sweepInterval = DefaultSweepInterval
	}

	exec := &executor{
		baseURL:   baseURL,
		token:     normalizeToken(opts.Token),
		userAgent: userAgent,
		client:    httpClient,
	}

	c := &Client{
		rl:                     newRatelimiter(exec, opts.DisableRatelimiter, opts.RetryCap, ttl, sweepInterval, log.Named("ratelimit")),
		log:                    log,
		recorder:               opts.Recorder,
		defaultAllowedMentions: opts.DefaultAllowedMentions,
	}
	c.appID.Store(uint64(opts.ApplicationID))
	return c
}

// NewWithToken builds a client with defaults for everything but the
// token.
func NewWithToken(token string) *Client {
	return New(Options{Token: token})
}

// normalizeToken trims the token and applies the Bot prefix unless the
// caller already chose a scheme.
func normalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Bot ") || strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bot " + token
}

// SetApplicationID records the application id once known, typically
// from the gateway ready event or CurrentApplication.
func (c *Client) SetApplicationID(id discord.ApplicationID) {
	c.appID.Store(uint64(id))
}

// applicationID returns the configured id or ErrNoApplicationID.
func (c *Client) applicationID() (discord.ApplicationID, error) {
	id := discord.ApplicationID(c.appID.Load())
	if id.IsZero() {
		return 0, ErrNoApplicationID
	}
	return id, nil
}

// Ratelimiter exposes the dispatcher for observability.
func (c *Client) Ratelimiter() *Ratelimiter {
	return c.rl
}

// do performs one exchange and classifies the status: 2xx returns the
// drained response and body, anything else becomes an error.
func (c *Client) do(ctx context.Context, req *Request) (*http.Response, []byte, error) {
	started := time.Now()
	resp, err := c.rl.Perform(ctx, req)
	if err != nil {
		c.record(ctx, req, 0, started)
		return nil, nil, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	c.record(ctx, req, resp.StatusCode, started)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &NetworkError{Route: req.Route.String(), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nil, newStatusError(resp.StatusCode, body)
	}
	return resp, body, nil
}

func (c *Client) record(ctx context.Context, req *Request, status int, started time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordExchange(ctx, Exchange{
		At:       started,
		Method:   req.Route.Method(),
		Route:    req.Route.Path(),
		Status:   status,
		Duration: time.Since(started),
	})
}

// fire performs the request and decodes the JSON response body into
// out. A nil out discards the body.
func (c *Client) fire(ctx context.Context, req *Request, out any) error {
	_, body, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Route: req.Route.String(), Err: err}
	}
	return nil
}

// wind performs the request expecting a no-content success. A 2xx
// other than 204 is tolerated with a diagnostic; servers deviate
// without breaking the contract.
func (c *Client) wind(ctx context.Context, req *Request) error {
	resp, _, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		c.log.Warn("expected no content",
			zap.String("route", req.Route.String()),
			zap.Int("status", resp.StatusCode))
	}
	return nil
}
