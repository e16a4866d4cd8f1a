package interactions

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/discord"
)

type signedClient struct {
	priv ed25519.PrivateKey
	srv  *Server
}

func newSignedClient(t *testing.T) *signedClient {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	srv, err := New(Options{PublicKey: hex.EncodeToString(pub)})
	require.NoError(t, err)
	return &signedClient{priv: priv, srv: srv}
}

// post sends body with a valid signature unless sig overrides it.
func (c *signedClient) post(t *testing.T, body string, sig string) *httptest.ResponseRecorder {
	t.Helper()
	ts := fmt.Sprintf("%d", time.Now().Unix())
	if sig == "" {
		sig = hex.EncodeToString(ed25519.Sign(c.priv, []byte(ts+body)))
	}
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set(headerTimestamp, ts)
	req.Header.Set(headerSignature, sig)
	rec := httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPingPong(t *testing.T) {
	c := newSignedClient(t)
	rec := c.post(t, `{"id":"1","type":1,"token":"tok"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"type":1}`, rec.Body.String())
}

func TestRejectsBadSignature(t *testing.T) {
	c := newSignedClient(t)

	wrong := hex.EncodeToString(make([]byte, ed25519.SignatureSize))
	rec := c.post(t, `{"id":"1","type":1}`, wrong)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Missing headers entirely.
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{"type":1}`))
	rec = httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Signature over different content.
	other := hex.EncodeToString(ed25519.Sign(c.priv, []byte("something else")))
	rec = c.post(t, `{"id":"1","type":1}`, other)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCommandDispatch(t *testing.T) {
	c := newSignedClient(t)
	c.srv.Command("greet", func(_ context.Context, i *discord.Interaction) (*discord.InteractionResponse, error) {
		require.Equal(t, discord.InteractionTypeApplicationCommand, i.Type)
		who := i.Data.Options[0].StringValue()
		return Message("hello " + who), nil
	})

	body := `{
		"id": "10", "application_id": "77", "type": 2, "token": "tok",
		"data": {"id": "5", "name": "greet", "type": 1,
			"options": [{"name": "who", "type": 3, "value": "sam"}]}
	}`
	rec := c.post(t, body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"type":4,"data":{"content":"hello sam"}}`, rec.Body.String())
}

func TestUnknownCommandGetsEphemeralNotice(t *testing.T) {
	c := newSignedClient(t)
	rec := c.post(t, `{"id":"10","type":2,"token":"tok","data":{"name":"missing"}}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp discord.InteractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, discord.InteractionResponseChannelMessage, resp.Type)
	require.Equal(t, discord.MessageFlagEphemeral, resp.Data.Flags)
}

func TestFallbackHandlesComponents(t *testing.T) {
	c := newSignedClient(t)
	c.srv.Fallback(func(_ context.Context, i *discord.Interaction) (*discord.InteractionResponse, error) {
		require.Equal(t, discord.InteractionTypeMessageComponent, i.Type)
		require.Equal(t, "confirm-42", i.Data.CustomID)
		return &discord.InteractionResponse{Type: discord.InteractionResponseDeferredUpdateMessage}, nil
	})

	body := `{"id":"11","type":3,"token":"tok","data":{"custom_id":"confirm-42","component_type":2}}`
	rec := c.post(t, body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"type":6}`, rec.Body.String())
}

func TestHandlerErrorBecomesEphemeralApology(t *testing.T) {
	c := newSignedClient(t)
	c.srv.Command("boom", func(context.Context, *discord.Interaction) (*discord.InteractionResponse, error) {
		return nil, errors.New("backend down")
	})

	rec := c.post(t, `{"id":"12","type":2,"token":"tok","data":{"name":"boom"}}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp discord.InteractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, discord.MessageFlagEphemeral, resp.Data.Flags)
}

func TestNilHandlerResponseDefers(t *testing.T) {
	c := newSignedClient(t)
	c.srv.Command("later", func(context.Context, *discord.Interaction) (*discord.InteractionResponse, error) {
		return nil, nil
	})

	rec := c.post(t, `{"id":"13","type":2,"token":"tok","data":{"name":"later"}}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"type":5}`, rec.Body.String())
}

func TestMalformedBodyRejected(t *testing.T) {
	c := newSignedClient(t)
	rec := c.post(t, `{"type":`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewValidatesKey(t *testing.T) {
	_, err := New(Options{PublicKey: "not hex"})
	require.Error(t, err)

	_, err = New(Options{PublicKey: "abcd"})
	require.ErrorContains(t, err, "32 bytes")
}
