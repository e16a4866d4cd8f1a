// Package gateway maintains a websocket session against the platform's
// real-time event stream: the hello/identify handshake, heartbeating
// with ack monitoring, sequence tracking and automatic resume after
// dropped connections.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cordialhq/cordial/discord"
)

// DefaultURL is the gateway endpoint used when none is configured.
// GET /gateway/bot returns the same address plus session quota.
const DefaultURL = "wss://gateway.discord.gg"

const (
	writeTimeout     = 10 * time.Second
	handshakeTimeout = 30 * time.Second
	maxBackoff       = 64 * time.Second

	// The platform allows 120 gateway commands per minute per
	// connection. The limiter hands out 110 of them; the rest stays
	// reserved for heartbeats, which bypass the limiter.
	commandsPerMinute = 110
)

// ErrClosed reports use of a session that was closed or gave up.
var ErrClosed = errors.New("session closed")

// errReconnect is returned by the read loop when the server asks the
// client to drop the connection and resume elsewhere.
var errReconnect = errors.New("reconnect requested")

type invalidSessionError struct {
	resumable bool
}

func (e *invalidSessionError) Error() string {
	if e.resumable {
		return "session invalidated (resumable)"
	}
	return "session invalidated"
}

// Options configures a Session.
type Options struct {
	// Token authenticates the identify. A leading "Bot " prefix is
	// stripped; the gateway wants the bare token.
	Token string

	// Intents selects the event families to receive. Zero means
	// discord.IntentsDefault.
	Intents int

	// URL overrides the gateway endpoint. Mostly for tests.
	URL string

	// Shard is the [index, total] pair for sharded sessions, nil for
	// a single connection.
	Shard *[2]int

	Logger *zap.Logger
	Dialer *websocket.Dialer

	// EventBufferSize caps the Events channel. Dispatches beyond it
	// are dropped, never blocked on. Zero means 256.
	EventBufferSize int
}

// Session is one gateway connection. It redials and resumes on its own
// until Close is called or the server rejects the configuration.
type Session struct {
	opts    Options
	log     *zap.Logger
	dialer  *websocket.Dialer
	limiter *rate.Limiter

	mu        sync.Mutex
	conn      *websocket.Conn
	cancel    context.CancelFunc
	opened    bool
	sessionID string
	resumeURL string
	err       error

	// wmu serializes frame writes; the websocket allows one writer.
	wmu sync.Mutex

	seq         atomic.Int64
	awaitingAck atomic.Bool
	beatSentAt  atomic.Int64
	latency     atomic.Int64

	events     chan Event
	collectors collectorSet
	done       chan struct{}

	// initialBackoff seeds the redial backoff. Tests shrink it.
	initialBackoff time.Duration
}

// New builds a session. Open starts it.
func New(opts Options) (*Session, error) {
	opts.Token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(opts.Token), "Bot "))
	if opts.Token == "" {
		return nil, errors.New("token is required")
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Intents == 0 {
		opts.Intents = discord.IntentsDefault
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.EventBufferSize <= 0 {
		opts.EventBufferSize = 256
	}

	return &Session{
		opts:           opts,
		log:            opts.Logger,
		dialer:         opts.Dialer,
		limiter:        rate.NewLimiter(rate.Every(time.Minute/commandsPerMinute), commandsPerMinute),
		events:         make(chan Event, opts.EventBufferSize),
		done:           make(chan struct{}),
		initialBackoff: time.Second,
	}, nil
}

// Open dials the gateway, completes the handshake up to the identify
// and hands the connection to a background loop. The first ReadyEvent
// arrives on Events. ctx bounds the initial dial only; the session
// lives until Close.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return errors.New("session already opened")
	}
	s.opened = true
	s.mu.Unlock()

	conn, interval, err := s.connect(ctx, false)
	if err != nil {
		close(s.done)
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx, conn, interval)
	return nil
}

// Close tears the connection down with a normal closure so the server
// discards the session, then waits for the background loop to stop.
func (s *Session) Close() error {
	s.mu.Lock()
	cancel := s.cancel
	conn := s.conn
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	}
	<-s.done
	return nil
}

// Events streams decoded dispatches. The channel is never closed; use
// Done to learn when the session stops.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed once the session has stopped for good, either by
// Close or because the server rejected the configuration.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err reports why the session stopped, nil after a plain Close.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Latency returns the delay between the last heartbeat and its ack.
func (s *Session) Latency() time.Duration {
	return time.Duration(s.latency.Load())
}

// UpdatePresence publishes a new status and activity list.
func (s *Session) UpdatePresence(ctx context.Context, status discord.OnlineStatus, activities ...discord.Activity) error {
	conn := s.currentConn()
	if conn == nil {
		return ErrClosed
	}
	if activities == nil {
		activities = []discord.Activity{}
	}
	return s.write(ctx, conn, opPresenceUpdate, presenceData{
		Activities: activities,
		Status:     string(status),
	})
}

// RequestGuildMembers asks the gateway to stream a guild's member
// chunks. Requires the guild members intent; limit 0 means everyone
// matching the query.
func (s *Session) RequestGuildMembers(ctx context.Context, guildID discord.GuildID, query string, limit int) error {
	conn := s.currentConn()
	if conn == nil {
		return ErrClosed
	}
	return s.write(ctx, conn, opRequestGuildMembers, guildMembersRequest{
		GuildID: guildID,
		Query:   query,
		Limit:   limit,
	})
}

func (s *Session) currentConn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

// connect dials, waits for hello and sends the identify or resume.
func (s *Session) connect(ctx context.Context, resume bool) (*websocket.Conn, time.Duration, error) {
	s.mu.Lock()
	addr := s.opts.URL
	sessionID := s.sessionID
	if resume && s.resumeURL != "" {
		addr = s.resumeURL
	}
	s.mu.Unlock()
	if sessionID == "" {
		resume = false
	}

	conn, resp, err := s.dialer.DialContext(ctx, gatewayAddr(addr), nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close() // nolint:errcheck // best-effort cleanup
		}
		return nil, 0, fmt.Errorf("dial gateway: %w", err)
	}

	hello, err := s.readHello(conn)
	if err != nil {
		conn.Close() // nolint:errcheck // handshake already failed
		return nil, 0, err
	}
	interval := time.Duration(hello.HeartbeatInterval) * time.Millisecond

	if resume {
		err = s.write(ctx, conn, opResume, resumeData{
			Token:     s.opts.Token,
			SessionID: sessionID,
			Seq:       s.seq.Load(),
		})
	} else {
		err = s.write(ctx, conn, opIdentify, identifyData{
			Token:      s.opts.Token,
			Properties: defaultProperties(),
			Intents:    s.opts.Intents,
			Shard:      s.opts.Shard,
		})
	}
	if err != nil {
		conn.Close() // nolint:errcheck // handshake already failed
		return nil, 0, err
	}

	s.awaitingAck.Store(false)
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.log.Info("gateway connected",
		zap.Bool("resume", resume),
		zap.Duration("heartbeat_interval", interval))
	return conn, interval, nil
}

func (s *Session) readHello(conn *websocket.Conn) (helloData, error) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	defer conn.SetReadDeadline(time.Time{}) // nolint:errcheck // clearing a deadline

	_, data, err := conn.ReadMessage()
	if err != nil {
		return helloData{}, fmt.Errorf("read hello: %w", err)
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return helloData{}, fmt.Errorf("decode hello: %w", err)
	}
	if p.Op != opHello {
		return helloData{}, fmt.Errorf("expected hello, got op %d", p.Op)
	}
	var hello helloData
	if err := json.Unmarshal(p.D, &hello); err != nil {
		return helloData{}, fmt.Errorf("decode hello: %w", err)
	}
	if hello.HeartbeatInterval <= 0 {
		return helloData{}, errors.New("hello without heartbeat interval")
	}
	return hello, nil
}

// run owns the connection after the first handshake: it serves it until
// it drops, then redials with backoff, resuming when the close reason
// allows it.
func (s *Session) run(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	defer close(s.done)

	backoff := s.initialBackoff
	for {
		err := s.serve(ctx, conn, interval)
		conn.Close() // nolint:errcheck // connection is being abandoned
		if ctx.Err() != nil {
			return
		}

		resume := true
		var closeErr *websocket.CloseError
		var invalid *invalidSessionError
		switch {
		case errors.As(err, &invalid):
			resume = invalid.resumable
			s.log.Warn("session invalidated", zap.Bool("resumable", resume))
		case errors.As(err, &closeErr):
			if fatalClose(closeErr.Code) {
				s.fail(fmt.Errorf("gateway refused session: %s", closeText(closeErr.Code)))
				return
			}
			resume = resumableClose(closeErr.Code)
			s.log.Warn("gateway closed connection",
				zap.Int("code", closeErr.Code),
				zap.String("reason", closeText(closeErr.Code)))
		case errors.Is(err, errReconnect):
			s.log.Info("gateway requested reconnect")
		default:
			s.log.Warn("gateway connection lost", zap.Error(err))
		}

		for {
			if err := sleepContext(ctx, backoff); err != nil {
				return
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			next, nextInterval, err := s.connect(ctx, resume)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Warn("reconnect failed", zap.Error(err))
				continue
			}
			conn, interval = next, nextInterval
			backoff = s.initialBackoff
			break
		}
	}
}

// serve reads frames until the connection dies and reports why. It
// only returns once the heartbeat goroutine has stopped too.
func (s *Session) serve(ctx context.Context, conn *websocket.Conn, interval time.Duration) error {
	hbCtx, stop := context.WithCancel(ctx)
	hbDone := make(chan struct{})
	go func() {
		defer close(hbDone)
		s.heartbeat(hbCtx, conn, interval)
	}()
	defer func() {
		stop()
		<-hbDone
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		var p payload
		if err := json.Unmarshal(data, &p); err != nil {
			s.log.Warn("dropping malformed frame", zap.Error(err))
			continue
		}

		switch p.Op {
		case opDispatch:
			if p.S > 0 {
				s.seq.Store(p.S)
			}
			s.handleDispatch(p)
		case opHeartbeat:
			s.sendHeartbeat(conn)
		case opHeartbeatACK:
			s.awaitingAck.Store(false)
			if sentAt := s.beatSentAt.Load(); sentAt > 0 {
				s.latency.Store(time.Since(time.Unix(0, sentAt)).Nanoseconds())
			}
		case opReconnect:
			return errReconnect
		case opInvalidSession:
			var resumable bool
			_ = json.Unmarshal(p.D, &resumable)
			return &invalidSessionError{resumable: resumable}
		default:
			s.log.Debug("unhandled opcode", zap.Int("op", p.Op))
		}
	}
}

func (s *Session) handleDispatch(p payload) {
	ev, err := parseEvent(p.T, p.D)
	if err != nil {
		s.log.Warn("dropping undecodable event", zap.String("type", p.T), zap.Error(err))
		return
	}

	switch ev := ev.(type) {
	case *ReadyEvent:
		s.mu.Lock()
		s.sessionID = ev.SessionID
		s.resumeURL = ev.ResumeGatewayURL
		s.mu.Unlock()
		s.log.Info("session ready",
			zap.String("session_id", ev.SessionID),
			zap.String("user", ev.User.Tag()),
			zap.Int("guilds", len(ev.Guilds)))
	case *ResumedEvent:
		s.log.Info("session resumed", zap.Int64("seq", s.seq.Load()))
	}

	s.dispatch(ev)
}

func (s *Session) dispatch(ev Event) {
	s.collectors.offer(ev)
	select {
	case s.events <- ev:
	default:
		s.log.Debug("event buffer full, dropping", zap.String("type", ev.EventType()))
	}
}

// heartbeat beats at the negotiated interval. A beat that was never
// acked means the connection is dead on the far side even though TCP
// still looks alive; the conn gets closed so the serve loop redials.
func (s *Session) heartbeat(ctx context.Context, conn *websocket.Conn, interval time.Duration) {
	// First beat lands at a random point inside the interval so
	// reconnecting shards spread out.
	timer := time.NewTimer(time.Duration(rand.Int64N(int64(interval))))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close() // nolint:errcheck // unblocks the read loop
			return
		case <-timer.C:
		}
		if s.awaitingAck.Load() {
			s.log.Warn("heartbeat ack missed, closing connection")
			conn.Close() // nolint:errcheck // forcing a redial
			return
		}
		s.sendHeartbeat(conn)
		timer.Reset(interval)
	}
}

func (s *Session) sendHeartbeat(conn *websocket.Conn) {
	var d any
	if seq := s.seq.Load(); seq > 0 {
		d = seq
	}
	if err := s.writeRaw(conn, command{Op: opHeartbeat, D: d}); err != nil {
		s.log.Debug("heartbeat write failed", zap.Error(err))
		return
	}
	s.awaitingAck.Store(true)
	s.beatSentAt.Store(time.Now().UnixNano())
}

// write sends one command after taking a slot from the send limiter.
func (s *Session) write(ctx context.Context, conn *websocket.Conn, op int, d any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.writeRaw(conn, command{Op: op, D: d})
}

func (s *Session) writeRaw(conn *websocket.Conn, cmd command) error {
	buf, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode op %d: %w", cmd.Op, err)
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, buf)
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.log.Error("gateway session stopped", zap.Error(err))
}

// gatewayAddr appends the protocol version and encoding unless the
// address already carries a query.
func gatewayAddr(base string) string {
	base = strings.TrimSuffix(base, "/")
	if strings.Contains(base, "?") {
		return base
	}
	return base + "/?v=10&encoding=json"
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
