// Package interactions receives and answers signed interaction
// callbacks over HTTP, the webhook alternative to reading them off a
// gateway session. Every callback is verified against the
// application's ed25519 key before it is dispatched.
package interactions

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cordialhq/cordial/discord"
)

// maxBodySize caps callback payloads. Real interactions stay far below.
const maxBodySize = 1 << 20

// Signature headers set on every callback.
const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"
)

// Handler answers one interaction. Returning nil defers the response;
// the caller is then expected to follow up through the rest client.
type Handler func(ctx context.Context, interaction *discord.Interaction) (*discord.InteractionResponse, error)

// Options configures a Server.
type Options struct {
	// PublicKey is the application's hex-encoded verification key from
	// the developer portal.
	PublicKey string

	// Path is the route receiving callbacks. Defaults to /interactions.
	Path string

	Logger *zap.Logger
}

// Server verifies, decodes and dispatches interaction callbacks.
type Server struct {
	key    ed25519.PublicKey
	log    *zap.Logger
	router *chi.Mux
	server *http.Server

	mu       sync.RWMutex
	commands map[string]Handler
	fallback Handler
}

// New builds a server around the application's verification key.
func New(opts Options) (*Server, error) {
	key, err := hex.DecodeString(strings.TrimSpace(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	if opts.Path == "" {
		opts.Path = "/interactions"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		key:      ed25519.PublicKey(key),
		log:      opts.Logger,
		commands: make(map[string]Handler),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Post(opts.Path, s.handle)
	s.router = r
	return s, nil
}

// Command registers the handler for a slash command name.
func (s *Server) Command(name string, h Handler) {
	s.mu.Lock()
	s.commands[name] = h
	s.mu.Unlock()
}

// Fallback registers the handler for everything without a command
// handler: components, modals, unknown commands.
func (s *Server) Fallback(h Handler) {
	s.mu.Lock()
	s.fallback = h
	s.mu.Unlock()
}

// Handler exposes the router for tests and for mounting into a larger
// mux.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.log.Info("interaction server listening", zap.String("addr", addr))
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight callbacks and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
		return
	}

	if !s.verify(r.Header.Get(headerTimestamp), body, r.Header.Get(headerSignature)) {
		s.log.Warn("rejecting unsigned interaction", zap.String("remote", r.RemoteAddr))
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var interaction discord.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		http.Error(w, "malformed interaction", http.StatusBadRequest)
		return
	}

	if interaction.Type == discord.InteractionTypePing {
		s.respond(w, &discord.InteractionResponse{Type: discord.InteractionResponsePong})
		return
	}

	h := s.lookup(&interaction)
	if h == nil {
		s.log.Warn("no handler for interaction",
			zap.Int("type", int(interaction.Type)),
			zap.String("command", commandName(&interaction)))
		s.respond(w, EphemeralMessage("This command is not available right now."))
		return
	}

	resp, err := h(r.Context(), &interaction)
	if err != nil {
		s.log.Error("interaction handler failed",
			zap.String("command", commandName(&interaction)),
			zap.Error(err))
		s.respond(w, EphemeralMessage("Something went wrong handling that."))
		return
	}
	if resp == nil {
		resp = &discord.InteractionResponse{Type: discord.InteractionResponseDeferredChannelMessage}
	}
	s.respond(w, resp)
}

// verify checks the ed25519 signature over timestamp||body.
func (s *Server) verify(timestamp string, body []byte, sigHex string) bool {
	if timestamp == "" || sigHex == "" {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(s.key, msg, sig)
}

func (s *Server) lookup(interaction *discord.Interaction) Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name := commandName(interaction); name != "" {
		if h, ok := s.commands[name]; ok {
			return h
		}
	}
	return s.fallback
}

func commandName(interaction *discord.Interaction) string {
	if interaction.Data == nil {
		return ""
	}
	return interaction.Data.Name
}

func (s *Server) respond(w http.ResponseWriter, resp *discord.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Warn("write interaction response", zap.Error(err))
	}
}

// Message is a plain channel-message response.
func Message(content string) *discord.InteractionResponse {
	return &discord.InteractionResponse{
		Type: discord.InteractionResponseChannelMessage,
		Data: &discord.InteractionResponseData{Content: content},
	}
}

// EphemeralMessage is a channel-message response only the invoking
// user sees.
func EphemeralMessage(content string) *discord.InteractionResponse {
	return &discord.InteractionResponse{
		Type: discord.InteractionResponseChannelMessage,
		Data: &discord.InteractionResponseData{
			Content: content,
			Flags:   discord.MessageFlagEphemeral,
		},
	}
}
