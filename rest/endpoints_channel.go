package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cordialhq/cordial/discord"
)

// Channel fetches a channel by id.
func (c *Client) Channel(ctx context.Context, channelID discord.ChannelID) (*discord.Channel, error) {
	var ch discord.Channel
	if err := c.fire(ctx, newRequest(routeChannel(channelID)), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// EditChannelParams is the body for modifying a channel. Nil fields
// stay untouched.
type EditChannelParams struct {
	Name             *string                        `json:"name,omitempty"`
	Position         *int                           `json:"position,omitempty"`
	Topic            *string                        `json:"topic,omitempty"`
	NSFW             *bool                          `json:"nsfw,omitempty"`
	RateLimitPerUser *int                           `json:"rate_limit_per_user,omitempty"`
	Bitrate          *int                           `json:"bitrate,omitempty"`
	UserLimit        *int                           `json:"user_limit,omitempty"`
	ParentID         *discord.ChannelID             `json:"parent_id,omitempty"`
	Overwrites       *[]discord.PermissionOverwrite `json:"permission_overwrites,omitempty"`
	Archived         *bool                          `json:"archived,omitempty"`
	Locked           *bool                          `json:"locked,omitempty"`
}

// EditChannel modifies a channel, with an optional audit log reason.
func (c *Client) EditChannel(ctx context.Context, channelID discord.ChannelID, params EditChannelParams, reason string) (*discord.Channel, error) {
	req, err := newJSONRequest(routeEditChannel(channelID), params)
	if err != nil {
		return nil, err
	}
	var ch discord.Channel
	if err := c.fire(ctx, req.withReason(reason), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// DeleteChannel deletes a channel, or closes it for DMs.
func (c *Client) DeleteChannel(ctx context.Context, channelID discord.ChannelID, reason string) (*discord.Channel, error) {
	var ch discord.Channel
	if err := c.fire(ctx, newRequest(routeDeleteChannel(channelID)).withReason(reason), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// MessagesQuery selects a window of channel history. At most one of
// Around, Before and After may be set.
type MessagesQuery struct {
	Around discord.MessageID
	Before discord.MessageID
	After  discord.MessageID
	Limit  int
}

func (q MessagesQuery) values() url.Values {
	v := url.Values{}
	if !q.Around.IsZero() {
		v.Set("around", q.Around.String())
	}
	if !q.Before.IsZero() {
		v.Set("before", q.Before.String())
	}
	if !q.After.IsZero() {
		v.Set("after", q.After.String())
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Messages fetches a window of channel history, newest first.
func (c *Client) Messages(ctx context.Context, channelID discord.ChannelID, query MessagesQuery) ([]discord.Message, error) {
	var msgs []discord.Message
	req := newRequest(routeMessages(channelID)).withParams(query.values())
	if err := c.fire(ctx, req, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Message fetches a single message.
func (c *Client) Message(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID) (*discord.Message, error) {
	var msg discord.Message
	if err := c.fire(ctx, newRequest(routeMessage(channelID, messageID)), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateMessageParams is the body for sending a message. Files switch
// the request to multipart; everything else rides along as the JSON
// payload part.
type CreateMessageParams struct {
	Content          string                    `json:"content,omitempty"`
	Nonce            string                    `json:"nonce,omitempty"`
	TTS              bool                      `json:"tts,omitempty"`
	Embeds           []discord.Embed           `json:"embeds,omitempty"`
	AllowedMentions  *discord.AllowedMentions  `json:"allowed_mentions,omitempty"`
	MessageReference *discord.MessageReference `json:"message_reference,omitempty"`
	Flags            int                       `json:"flags,omitempty"`

	Files []File `json:"-"`
}

// CreateMessage sends a message to a channel. The client's default
// mention policy applies when the params carry none.
func (c *Client) CreateMessage(ctx context.Context, channelID discord.ChannelID, params CreateMessageParams) (*discord.Message, error) {
	if params.AllowedMentions == nil {
		params.AllowedMentions = c.defaultAllowedMentions
	}
	req, err := jsonOrMultipart(routeCreateMessage(channelID), params, params.Files)
	if err != nil {
		return nil, err
	}
	var msg discord.Message
	if err := c.fire(ctx, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessageParams is the body for editing a message. Nil fields stay
// untouched; a pointer to the zero value clears.
type EditMessageParams struct {
	Content         *string                  `json:"content,omitempty"`
	Embeds          *[]discord.Embed         `json:"embeds,omitempty"`
	Flags           *int                     `json:"flags,omitempty"`
	AllowedMentions *discord.AllowedMentions `json:"allowed_mentions,omitempty"`
}

// EditMessage edits a previously sent message.
func (c *Client) EditMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, params EditMessageParams) (*discord.Message, error) {
	req, err := newJSONRequest(routeEditMessage(channelID, messageID), params)
	if err != nil {
		return nil, err
	}
	var msg discord.Message
	if err := c.fire(ctx, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, reason string) error {
	return c.wind(ctx, newRequest(routeDeleteMessage(channelID, messageID)).withReason(reason))
}

// BulkDeleteMessages deletes 2 to 100 messages younger than two weeks
// in one call.
func (c *Client) BulkDeleteMessages(ctx context.Context, channelID discord.ChannelID, messageIDs []discord.MessageID, reason string) error {
	payload := struct {
		Messages []discord.MessageID `json:"messages"`
	}{Messages: messageIDs}
	req, err := newJSONRequest(routeBulkDeleteMessages(channelID), payload)
	if err != nil {
		return err
	}
	return c.wind(ctx, req.withReason(reason))
}

// CrosspostMessage publishes an announcement channel message to
// followers.
func (c *Client) CrosspostMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID) (*discord.Message, error) {
	var msg discord.Message
	if err := c.fire(ctx, newRequest(routeCrosspostMessage(channelID, messageID)), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateReaction adds the current user's reaction to a message.
func (c *Client) CreateReaction(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, emoji discord.Emoji) error {
	return c.wind(ctx, newRequest(routeCreateReaction(channelID, messageID, emoji)))
}

// DeleteOwnReaction removes the current user's reaction.
func (c *Client) DeleteOwnReaction(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, emoji discord.Emoji) error {
	return c.wind(ctx, newRequest(routeDeleteOwnReaction(channelID, messageID, emoji)))
}

// DeleteUserReaction removes another user's reaction.
func (c *Client) DeleteUserReaction(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, emoji discord.Emoji, userID discord.UserID) error {
	return c.wind(ctx, newRequest(routeDeleteUserReaction(channelID, messageID, emoji, userID)))
}

// Reactions lists users who reacted with the emoji, paginated by the
// after cursor.
func (c *Client) Reactions(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, emoji discord.Emoji, after discord.UserID, limit int) ([]discord.User, error) {
	v := url.Values{}
	if !after.IsZero() {
		v.Set("after", after.String())
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var users []discord.User
	req := newRequest(routeReactions(channelID, messageID, emoji)).withParams(v)
	if err := c.fire(ctx, req, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteAllReactions removes every reaction from a message.
func (c *Client) DeleteAllReactions(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID) error {
	return c.wind(ctx, newRequest(routeDeleteAllReactions(channelID, messageID)))
}

// EditChannelPermission overwrites a role's or member's permissions in
// a channel.
func (c *Client) EditChannelPermission(ctx context.Context, channelID discord.ChannelID, overwrite discord.PermissionOverwrite, reason string) error {
	req, err := newJSONRequest(routeEditChannelPermission(channelID, overwrite.ID), overwrite)
	if err != nil {
		return err
	}
	return c.wind(ctx, req.withReason(reason))
}

// DeleteChannelPermission removes a channel permission overwrite.
func (c *Client) DeleteChannelPermission(ctx context.Context, channelID discord.ChannelID, overwriteID discord.Snowflake, reason string) error {
	return c.wind(ctx, newRequest(routeDeleteChannelPermission(channelID, overwriteID)).withReason(reason))
}

// ChannelInvites lists a channel's invites.
func (c *Client) ChannelInvites(ctx context.Context, channelID discord.ChannelID) ([]discord.Invite, error) {
	var invites []discord.Invite
	if err := c.fire(ctx, newRequest(routeChannelInvites(channelID)), &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// CreateInviteParams is the body for creating a channel invite. Zero
// values defer to server defaults.
type CreateInviteParams struct {
	MaxAge    *int `json:"max_age,omitempty"`
	MaxUses   *int `json:"max_uses,omitempty"`
	Temporary bool `json:"temporary,omitempty"`
	Unique    bool `json:"unique,omitempty"`
}

// CreateChannelInvite creates an invite to a channel.
func (c *Client) CreateChannelInvite(ctx context.Context, channelID discord.ChannelID, params CreateInviteParams, reason string) (*discord.Invite, error) {
	req, err := newJSONRequest(routeCreateChannelInvite(channelID), params)
	if err != nil {
		return nil, err
	}
	var invite discord.Invite
	if err := c.fire(ctx, req.withReason(reason), &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// TriggerTyping shows the typing indicator in a channel for a few
// seconds.
func (c *Client) TriggerTyping(ctx context.Context, channelID discord.ChannelID) error {
	return c.wind(ctx, newRequest(routeTriggerTyping(channelID)))
}

// PinnedMessages lists a channel's pinned messages.
func (c *Client) PinnedMessages(ctx context.Context, channelID discord.ChannelID) ([]discord.Message, error) {
	var msgs []discord.Message
	if err := c.fire(ctx, newRequest(routePinnedMessages(channelID)), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// PinMessage pins a message in its channel.
func (c *Client) PinMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, reason string) error {
	return c.wind(ctx, newRequest(routePinMessage(channelID, messageID)).withReason(reason))
}

// UnpinMessage unpins a message.
func (c *Client) UnpinMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, reason string) error {
	return c.wind(ctx, newRequest(routeUnpinMessage(channelID, messageID)).withReason(reason))
}

// StartThreadParams is the body for starting a thread.
type StartThreadParams struct {
	Name                string              `json:"name"`
	AutoArchiveDuration int                 `json:"auto_archive_duration,omitempty"`
	Type                discord.ChannelType `json:"type,omitempty"`
	Invitable           *bool               `json:"invitable,omitempty"`
}

// StartThread starts a thread not attached to any message.
func (c *Client) StartThread(ctx context.Context, channelID discord.ChannelID, params StartThreadParams, reason string) (*discord.Channel, error) {
	req, err := newJSONRequest(routeStartThread(channelID), params)
	if err != nil {
		return nil, err
	}
	var ch discord.Channel
	if err := c.fire(ctx, req.withReason(reason), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// StartThreadWithMessage starts a thread from an existing message.
func (c *Client) StartThreadWithMessage(ctx context.Context, channelID discord.ChannelID, messageID discord.MessageID, params StartThreadParams, reason string) (*discord.Channel, error) {
	req, err := newJSONRequest(routeStartThreadWithMessage(channelID, messageID), params)
	if err != nil {
		return nil, err
	}
	var ch discord.Channel
	if err := c.fire(ctx, req.withReason(reason), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// JoinThread adds the current user to a thread.
func (c *Client) JoinThread(ctx context.Context, threadID discord.ChannelID) error {
	return c.wind(ctx, newRequest(routeJoinThread(threadID)))
}

// LeaveThread removes the current user from a thread.
func (c *Client) LeaveThread(ctx context.Context, threadID discord.ChannelID) error {
	return c.wind(ctx, newRequest(routeLeaveThread(threadID)))
}

// AddThreadMember adds a user to a thread.
func (c *Client) AddThreadMember(ctx context.Context, threadID discord.ChannelID, userID discord.UserID) error {
	return c.wind(ctx, newRequest(routeAddThreadMember(threadID, userID)))
}

// RemoveThreadMember removes a user from a thread.
func (c *Client) RemoveThreadMember(ctx context.Context, threadID discord.ChannelID, userID discord.UserID) error {
	return c.wind(ctx, newRequest(routeRemoveThreadMember(threadID, userID)))
}
