package rest

import (
	"context"
	"net/url"

	"github.com/cordialhq/cordial/discord"
)

// CreateWebhookParams is the body for creating a webhook. Avatar is a
// data URI.
type CreateWebhookParams struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// CreateWebhook creates an incoming webhook on a channel.
func (c *Client) CreateWebhook(ctx context.Context, channelID discord.ChannelID, params CreateWebhookParams, reason string) (*discord.Webhook, error) {
	req, err := newJSONRequest(routeCreateWebhook(channelID), params)
	if err != nil {
		return nil, err
	}
	var hook discord.Webhook
	if err := c.fire(ctx, req.withReason(reason), &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// ChannelWebhooks lists a channel's webhooks.
func (c *Client) ChannelWebhooks(ctx context.Context, channelID discord.ChannelID) ([]discord.Webhook, error) {
	var hooks []discord.Webhook
	if err := c.fire(ctx, newRequest(routeChannelWebhooks(channelID)), &hooks); err != nil {
		return nil, err
	}
	return hooks, nil
}

// Webhook fetches a webhook by id. Requires authentication.
func (c *Client) Webhook(ctx context.Context, webhookID discord.WebhookID) (*discord.Webhook, error) {
	var hook discord.Webhook
	if err := c.fire(ctx, newRequest(routeWebhook(webhookID)), &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// WebhookWithToken fetches a webhook by id and token, no
// authentication needed.
func (c *Client) WebhookWithToken(ctx context.Context, webhookID discord.WebhookID, token string) (*discord.Webhook, error) {
	var hook discord.Webhook
	if err := c.fire(ctx, newRequest(routeWebhookWithToken(webhookID, token)), &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// EditWebhookParams is the body for modifying a webhook.
type EditWebhookParams struct {
	Name      *string            `json:"name,omitempty"`
	Avatar    *string            `json:"avatar,omitempty"`
	ChannelID *discord.ChannelID `json:"channel_id,omitempty"`
}

// EditWebhook modifies a webhook.
func (c *Client) EditWebhook(ctx context.Context, webhookID discord.WebhookID, params EditWebhookParams, reason string) (*discord.Webhook, error) {
	req, err := newJSONRequest(routeEditWebhook(webhookID), params)
	if err != nil {
		return nil, err
	}
	var hook discord.Webhook
	if err := c.fire(ctx, req.withReason(reason), &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// EditWebhookWithToken modifies a webhook using only its token.
func (c *Client) EditWebhookWithToken(ctx context.Context, webhookID discord.WebhookID, token string, params EditWebhookParams) (*discord.Webhook, error) {
	req, err := newJSONRequest(routeEditWebhookWithToken(webhookID, token), params)
	if err != nil {
		return nil, err
	}
	var hook discord.Webhook
	if err := c.fire(ctx, req, &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

// DeleteWebhook deletes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID discord.WebhookID, reason string) error {
	return c.wind(ctx, newRequest(routeDeleteWebhook(webhookID)).withReason(reason))
}

// DeleteWebhookWithToken deletes a webhook using only its token.
func (c *Client) DeleteWebhookWithToken(ctx context.Context, webhookID discord.WebhookID, token string) error {
	return c.wind(ctx, newRequest(routeDeleteWebhookWithToken(webhookID, token)))
}

// ExecuteWebhookParams is the body for posting through a webhook.
type ExecuteWebhookParams struct {
	Content         string                   `json:"content,omitempty"`
	Username        string                   `json:"username,omitempty"`
	AvatarURL       string                   `json:"avatar_url,omitempty"`
	TTS             bool                     `json:"tts,omitempty"`
	Embeds          []discord.Embed          `json:"embeds,omitempty"`
	AllowedMentions *discord.AllowedMentions `json:"allowed_mentions,omitempty"`
	ThreadName      string                   `json:"thread_name,omitempty"`

	Files []File `json:"-"`
}

// ExecuteWebhook posts a message through a webhook. With wait set the
// server returns the created message; otherwise the call returns nil
// on success.
func (c *Client) ExecuteWebhook(ctx context.Context, webhookID discord.WebhookID, token string, params ExecuteWebhookParams, wait bool) (*discord.Message, error) {
	if params.AllowedMentions == nil {
		params.AllowedMentions = c.defaultAllowedMentions
	}
	req, err := jsonOrMultipart(routeExecuteWebhook(webhookID, token), params, params.Files)
	if err != nil {
		return nil, err
	}
	if !wait {
		return nil, c.wind(ctx, req)
	}
	req.withParams(url.Values{"wait": {"true"}})
	var msg discord.Message
	if err := c.fire(ctx, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WebhookMessage fetches a message previously sent by the webhook.
func (c *Client) WebhookMessage(ctx context.Context, webhookID discord.WebhookID, token string, messageID discord.MessageID) (*discord.Message, error) {
	var msg discord.Message
	if err := c.fire(ctx, newRequest(routeWebhookMessage(webhookID, token, messageID)), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditWebhookMessage edits a message previously sent by the webhook.
func (c *Client) EditWebhookMessage(ctx context.Context, webhookID discord.WebhookID, token string, messageID discord.MessageID, params EditMessageParams) (*discord.Message, error) {
	req, err := newJSONRequest(routeEditWebhookMessage(webhookID, token, messageID), params)
	if err != nil {
		return nil, err
	}
	var msg discord.Message
	if err := c.fire(ctx, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteWebhookMessage deletes a message previously sent by the
// webhook.
func (c *Client) DeleteWebhookMessage(ctx context.Context, webhookID discord.WebhookID, token string, messageID discord.MessageID) error {
	return c.wind(ctx, newRequest(routeDeleteWebhookMessage(webhookID, token, messageID)))
}

// Invite fetches an invite by code.
func (c *Client) Invite(ctx context.Context, code string, withCounts bool) (*discord.Invite, error) {
	req := newRequest(routeInvite(code))
	if withCounts {
		req.withParams(url.Values{"with_counts": {"true"}})
	}
	var invite discord.Invite
	if err := c.fire(ctx, req, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// DeleteInvite revokes an invite.
func (c *Client) DeleteInvite(ctx context.Context, code string, reason string) (*discord.Invite, error) {
	var invite discord.Invite
	if err := c.fire(ctx, newRequest(routeDeleteInvite(code)).withReason(reason), &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}
