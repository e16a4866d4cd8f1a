package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cordialhq/cordial/discord"
)

// newGatewayServer runs one script per accepted connection. Extra
// connections are drained until the client hangs up.
func newGatewayServer(t *testing.T, scripts ...func(t *testing.T, conn *websocket.Conn)) (string, *atomic.Int32) {
	t.Helper()
	var conns atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(conns.Add(1)) - 1
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close() // nolint:errcheck // test server cleanup
		if n < len(scripts) {
			scripts[n](t, conn)
		}
		drainConn(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), &conns
}

func drainConn(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func sendHello(t *testing.T, conn *websocket.Conn, intervalMS int64) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{
		"op": opHello,
		"d":  map[string]any{"heartbeat_interval": intervalMS},
	}))
}

func sendDispatch(t *testing.T, conn *websocket.Conn, typ string, seq int64, d any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{
		"op": opDispatch, "t": typ, "s": seq, "d": d,
	}))
}

func sendOp(t *testing.T, conn *websocket.Conn, op int, d any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"op": op, "d": d}))
}

func closeWith(t *testing.T, conn *websocket.Conn, code int) {
	t.Helper()
	msg := websocket.FormatCloseMessage(code, "")
	require.NoError(t, conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)))
}

// readCommand returns the next client command of the wanted opcode,
// acking any heartbeats that arrive in between.
func readCommand(t *testing.T, conn *websocket.Conn, wantOp int) json.RawMessage {
	t.Helper()
	for {
		var cmd struct {
			Op int             `json:"op"`
			D  json.RawMessage `json:"d"`
		}
		require.NoError(t, conn.ReadJSON(&cmd))
		if cmd.Op == opHeartbeat {
			sendOp(t, conn, opHeartbeatACK, nil)
			continue
		}
		require.Equal(t, wantOp, cmd.Op)
		return cmd.D
	}
}

func newTestSession(t *testing.T, url string, opts Options) *Session {
	t.Helper()
	opts.URL = url
	if opts.Token == "" {
		opts.Token = "Bot test-token"
	}
	opts.Logger = zaptest.NewLogger(t)
	s, err := New(opts)
	require.NoError(t, err)
	s.initialBackoff = 10 * time.Millisecond
	return s
}

func nextEvent(t *testing.T, s *Session) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func readyPayload(sessionID, resumeURL string) map[string]any {
	return map[string]any{
		"v":                  10,
		"user":               map[string]any{"id": "99", "username": "lens"},
		"guilds":             []any{map[string]any{"id": "42", "unavailable": true}},
		"session_id":         sessionID,
		"resume_gateway_url": resumeURL,
		"application":        map[string]any{"id": "77", "flags": 0},
	}
}

func TestSessionIdentifyAndDispatch(t *testing.T) {
	url, _ := newGatewayServer(t, func(t *testing.T, conn *websocket.Conn) {
		sendHello(t, conn, 60000)

		var ident identifyData
		require.NoError(t, json.Unmarshal(readCommand(t, conn, opIdentify), &ident))
		require.Equal(t, "test-token", ident.Token)
		require.Equal(t, discord.IntentGuilds|discord.IntentMessageContent, ident.Intents)
		require.Equal(t, "cordial", ident.Properties.Browser)

		sendDispatch(t, conn, "READY", 1, readyPayload("sess-1", ""))
		sendDispatch(t, conn, "MESSAGE_CREATE", 2, map[string]any{
			"id": "111", "channel_id": "222", "content": "hello",
			"author": map[string]any{"id": "333", "username": "bob"},
		})
		sendDispatch(t, conn, "TYPING_START", 3, map[string]any{"channel_id": "222"})
	})

	s := newTestSession(t, url, Options{Intents: discord.IntentGuilds | discord.IntentMessageContent})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	ready, ok := nextEvent(t, s).(*ReadyEvent)
	require.True(t, ok)
	require.Equal(t, "sess-1", ready.SessionID)
	require.Equal(t, discord.UserID(99), ready.User.ID)
	require.Len(t, ready.Guilds, 1)

	msg, ok := nextEvent(t, s).(*MessageCreateEvent)
	require.True(t, ok)
	require.Equal(t, "hello", msg.Content)
	require.Equal(t, discord.ChannelID(222), msg.ChannelID)

	raw, ok := nextEvent(t, s).(*RawEvent)
	require.True(t, ok)
	require.Equal(t, "TYPING_START", raw.EventType())

	require.EqualValues(t, 3, s.seq.Load())

	require.NoError(t, s.Close())
	require.NoError(t, s.Err())
}

func TestSessionResumesAfterDrop(t *testing.T) {
	var resumeURL string
	url, conns := newGatewayServer(t,
		func(t *testing.T, conn *websocket.Conn) {
			sendHello(t, conn, 60000)
			readCommand(t, conn, opIdentify)
			sendDispatch(t, conn, "READY", 1, readyPayload("sess-9", resumeURL))
			closeWith(t, conn, closeUnknownError)
		},
		func(t *testing.T, conn *websocket.Conn) {
			sendHello(t, conn, 60000)
			var res resumeData
			require.NoError(t, json.Unmarshal(readCommand(t, conn, opResume), &res))
			require.Equal(t, "sess-9", res.SessionID)
			require.EqualValues(t, 1, res.Seq)
			sendDispatch(t, conn, "RESUMED", 0, nil)
		},
	)
	resumeURL = url

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	_, ok := nextEvent(t, s).(*ReadyEvent)
	require.True(t, ok)
	_, ok = nextEvent(t, s).(*ResumedEvent)
	require.True(t, ok)
	require.EqualValues(t, 2, conns.Load())
}

func TestSessionInvalidSessionIdentifiesAgain(t *testing.T) {
	url, conns := newGatewayServer(t,
		func(t *testing.T, conn *websocket.Conn) {
			sendHello(t, conn, 60000)
			readCommand(t, conn, opIdentify)
			sendDispatch(t, conn, "READY", 1, readyPayload("sess-2", ""))
			sendOp(t, conn, opInvalidSession, false)
		},
		func(t *testing.T, conn *websocket.Conn) {
			sendHello(t, conn, 60000)
			// A dead session must not be resumed.
			readCommand(t, conn, opIdentify)
			sendDispatch(t, conn, "READY", 1, readyPayload("sess-3", ""))
		},
	)

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	first, ok := nextEvent(t, s).(*ReadyEvent)
	require.True(t, ok)
	require.Equal(t, "sess-2", first.SessionID)

	second, ok := nextEvent(t, s).(*ReadyEvent)
	require.True(t, ok)
	require.Equal(t, "sess-3", second.SessionID)
	require.EqualValues(t, 2, conns.Load())
}

func TestSessionFatalCloseStops(t *testing.T) {
	url, conns := newGatewayServer(t, func(t *testing.T, conn *websocket.Conn) {
		sendHello(t, conn, 60000)
		readCommand(t, conn, opIdentify)
		closeWith(t, conn, closeAuthenticationFailed)
	})

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))

	select {
	case <-s.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("session did not stop on fatal close")
	}
	require.ErrorContains(t, s.Err(), "authentication failed")

	// No redial after a fatal close.
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, conns.Load())
}

func TestSessionZombieConnectionRedials(t *testing.T) {
	url, conns := newGatewayServer(t,
		func(t *testing.T, conn *websocket.Conn) {
			// Never ack heartbeats; the client should give up on the
			// connection by itself.
			sendHello(t, conn, 25)
			var cmd struct {
				Op int `json:"op"`
			}
			require.NoError(t, conn.ReadJSON(&cmd))
			require.Equal(t, opIdentify, cmd.Op)
		},
		func(t *testing.T, conn *websocket.Conn) {
			sendHello(t, conn, 60000)
			readCommand(t, conn, opIdentify)
			sendDispatch(t, conn, "READY", 1, readyPayload("sess-4", ""))
		},
	)

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	require.Eventually(t, func() bool { return conns.Load() >= 2 },
		3*time.Second, 10*time.Millisecond)

	ready, ok := nextEvent(t, s).(*ReadyEvent)
	require.True(t, ok)
	require.Equal(t, "sess-4", ready.SessionID)
}

func TestUpdatePresenceSendsCommand(t *testing.T) {
	got := make(chan string, 1)
	url, _ := newGatewayServer(t, func(t *testing.T, conn *websocket.Conn) {
		sendHello(t, conn, 60000)
		readCommand(t, conn, opIdentify)
		got <- string(readCommand(t, conn, opPresenceUpdate))
	})

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	require.NoError(t, s.UpdatePresence(context.Background(), discord.StatusIdle))

	select {
	case d := <-got:
		require.JSONEq(t, `{"since":null,"activities":[],"status":"idle","afk":false}`, d)
	case <-time.After(3 * time.Second):
		t.Fatal("presence command never arrived")
	}
}

func TestWaitForMessage(t *testing.T) {
	release := make(chan struct{})
	url, _ := newGatewayServer(t, func(t *testing.T, conn *websocket.Conn) {
		sendHello(t, conn, 60000)
		readCommand(t, conn, opIdentify)
		sendDispatch(t, conn, "READY", 1, readyPayload("sess-5", ""))
		<-release
		sendDispatch(t, conn, "MESSAGE_CREATE", 2, map[string]any{
			"id": "1", "channel_id": "10", "content": "skip",
			"author": map[string]any{"id": "500"},
		})
		sendDispatch(t, conn, "MESSAGE_CREATE", 3, map[string]any{
			"id": "2", "channel_id": "10", "content": "hit",
			"author": map[string]any{"id": "600"},
		})
	})

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	_, ok := nextEvent(t, s).(*ReadyEvent)
	require.True(t, ok)

	type result struct {
		msg *discord.Message
		err error
	}
	res := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		m, err := s.WaitForMessage(ctx, func(m *discord.Message) bool {
			return m.Author.ID == 600
		})
		res <- result{m, err}
	}()

	require.Eventually(t, func() bool { return s.collectors.size() == 1 },
		time.Second, 5*time.Millisecond)
	close(release)

	r := <-res
	require.NoError(t, r.err)
	require.Equal(t, "hit", r.msg.Content)
}

func TestWaitForCanceledContext(t *testing.T) {
	url, _ := newGatewayServer(t, func(t *testing.T, conn *websocket.Conn) {
		sendHello(t, conn, 60000)
		readCommand(t, conn, opIdentify)
		sendDispatch(t, conn, "READY", 1, readyPayload("sess-6", ""))
	})

	s := newTestSession(t, url, Options{})
	require.NoError(t, s.Open(context.Background()))
	defer s.Close() // nolint:errcheck // best-effort cleanup

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.WaitFor(ctx, func(Event) bool { return false })
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCollectorSetRemoval(t *testing.T) {
	var set collectorSet
	var calls int
	set.add(func(Event) bool {
		calls++
		return calls < 2
	})
	set.offer(&ResumedEvent{})
	set.offer(&ResumedEvent{})
	set.offer(&ResumedEvent{})
	require.Equal(t, 2, calls)
	require.Equal(t, 0, set.size())
}

func TestNewValidation(t *testing.T) {
	_, err := New(Options{Token: "   "})
	require.Error(t, err)

	s, err := New(Options{Token: "Bot abc"})
	require.NoError(t, err)
	require.Equal(t, "abc", s.opts.Token)
	require.Equal(t, discord.IntentsDefault, s.opts.Intents)
}

func TestGatewayAddr(t *testing.T) {
	require.Equal(t, "wss://gateway.discord.gg/?v=10&encoding=json", gatewayAddr("wss://gateway.discord.gg"))
	require.Equal(t, "wss://gateway.discord.gg/?v=10&encoding=json", gatewayAddr("wss://gateway.discord.gg/"))
	require.Equal(t, "ws://x/?v=9", gatewayAddr("ws://x/?v=9"))
}

func TestClosePolicies(t *testing.T) {
	for _, code := range []int{closeAuthenticationFailed, closeInvalidShard, closeShardingRequired,
		closeInvalidAPIVersion, closeInvalidIntents, closeDisallowedIntents} {
		require.True(t, fatalClose(code), "code %d", code)
	}
	require.False(t, fatalClose(closeUnknownError))
	require.False(t, fatalClose(closeRateLimited))

	require.False(t, resumableClose(closeInvalidSeq))
	require.False(t, resumableClose(closeSessionTimedOut))
	require.True(t, resumableClose(closeUnknownError))
	require.True(t, resumableClose(closeRateLimited))
}

func TestParseEvent(t *testing.T) {
	ev, err := parseEvent("MESSAGE_DELETE", json.RawMessage(`{"id":"5","channel_id":"6"}`))
	require.NoError(t, err)
	del, ok := ev.(*MessageDeleteEvent)
	require.True(t, ok)
	require.Equal(t, discord.MessageID(5), del.ID)

	ev, err = parseEvent("GUILD_DELETE", json.RawMessage(`{"id":"7","unavailable":true}`))
	require.NoError(t, err)
	gd, ok := ev.(*GuildDeleteEvent)
	require.True(t, ok)
	require.True(t, gd.Unavailable)

	ev, err = parseEvent("PRESENCE_UPDATE", json.RawMessage(`{"user":{"id":"1"}}`))
	require.NoError(t, err)
	require.Equal(t, "PRESENCE_UPDATE", ev.EventType())

	_, err = parseEvent("MESSAGE_CREATE", json.RawMessage(`{"id":[]}`))
	require.Error(t, err)
}
