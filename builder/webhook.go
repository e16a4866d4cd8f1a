package builder

import (
	"context"
	"io"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/rest"
)

// WebhookMessage accumulates a message posted through a webhook,
// including the per-post identity overrides webhooks allow.
type WebhookMessage struct {
	params rest.ExecuteWebhookParams
}

// NewWebhookMessage starts a webhook message with the given content.
func NewWebhookMessage(content string) *WebhookMessage {
	return &WebhookMessage{params: rest.ExecuteWebhookParams{Content: content}}
}

// Username overrides the webhook's display name for this post.
func (w *WebhookMessage) Username(name string) *WebhookMessage {
	w.params.Username = name
	return w
}

// AvatarURL overrides the webhook's avatar for this post.
func (w *WebhookMessage) AvatarURL(url string) *WebhookMessage {
	w.params.AvatarURL = url
	return w
}

// Embed appends an embed.
func (w *WebhookMessage) Embed(e discord.Embed) *WebhookMessage {
	w.params.Embeds = append(w.params.Embeds, e)
	return w
}

// Mentions sets the mention policy for this post only.
func (w *WebhookMessage) Mentions(allowed discord.AllowedMentions) *WebhookMessage {
	w.params.AllowedMentions = &allowed
	return w
}

// File attaches an upload.
func (w *WebhookMessage) File(name, contentType string, r io.Reader) *WebhookMessage {
	w.params.Files = append(w.params.Files, rest.File{
		Name:        name,
		ContentType: contentType,
		Reader:      r,
	})
	return w
}

// ThreadName creates a forum post with the given title instead of a
// plain message.
func (w *WebhookMessage) ThreadName(name string) *WebhookMessage {
	w.params.ThreadName = name
	return w
}

// Build returns the accumulated params.
func (w *WebhookMessage) Build() rest.ExecuteWebhookParams {
	return w.params
}

// Execute posts through the webhook and waits for the created message.
func (w *WebhookMessage) Execute(ctx context.Context, c *rest.Client, id discord.WebhookID, token string) (*discord.Message, error) {
	return c.ExecuteWebhook(ctx, id, token, w.params, true)
}
