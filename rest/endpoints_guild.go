package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cordialhq/cordial/discord"
)

// CreateGuildParams is the body for creating a guild. Bots in fewer
// than ten guilds only.
type CreateGuildParams struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// CreateGuild creates a new guild owned by the current user.
func (c *Client) CreateGuild(ctx context.Context, params CreateGuildParams) (*discord.Guild, error) {
	req, err := newJSONRequest(routeCreateGuild(), params)
	if err != nil {
		return nil, err
	}
	var g discord.Guild
	if err := c.fire(ctx, req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Guild fetches a guild by id, including approximate member counts
// when withCounts is set.
func (c *Client) Guild(ctx context.Context, guildID discord.GuildID, withCounts bool) (*discord.Guild, error) {
	req := newRequest(routeGuild(guildID))
	if withCounts {
		req.withParams(url.Values{"with_counts": {"true"}})
	}
	var g discord.Guild
	if err := c.fire(ctx, req, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GuildPreview fetches the public preview of a discoverable guild.
func (c *Client) GuildPreview(ctx context.Context, guildID discord.GuildID) (*discord.GuildPreview, error) {
	var p discord.GuildPreview
	if err := c.fire(ctx, newRequest(routeGuildPreview(guildID)), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// EditGuildParams is the body for modifying guild settings.
type EditGuildParams struct {
	Name              *string            `json:"name,omitempty"`
	VerificationLevel *int               `json:"verification_level,omitempty"`
	AFKChannelID      *discord.ChannelID `json:"afk_channel_id,omitempty"`
	AFKTimeout        *int               `json:"afk_timeout,omitempty"`
	Icon              *string            `json:"icon,omitempty"`
	OwnerID           *discord.UserID    `json:"owner_id,omitempty"`
	Splash            *string            `json:"splash,omitempty"`
	Banner            *string            `json:"banner,omitempty"`
	SystemChannelID   *discord.ChannelID `json:"system_channel_id,omitempty"`
	RulesChannelID    *discord.ChannelID `json:"rules_channel_id,omitempty"`
	PreferredLocale   *string            `json:"preferred_locale,omitempty"`
	Description       *string            `json:"description,omitempty"`
}

// EditGuild modifies guild settings.
func (c *Client) EditGuild(ctx context.Context, guildID discord.GuildID, params EditGuildParams, reason string) (*discord.Guild, error) {
	req, err := newJSONRequest(routeEditGuild(guildID), params)
	if err != nil {
		return nil, err
	}
	var g discord.Guild
	if err := c.fire(ctx, req.withReason(reason), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GuildChannels lists a guild's channels, excluding threads.
func (c *Client) GuildChannels(ctx context.Context, guildID discord.GuildID) ([]discord.Channel, error) {
	var chs []discord.Channel
	if err := c.fire(ctx, newRequest(routeGuildChannels(guildID)), &chs); err != nil {
		return nil, err
	}
	return chs, nil
}

// CreateGuildChannelParams is the body for creating a guild channel.
type CreateGuildChannelParams struct {
	Name             string                        `json:"name"`
	Type             discord.ChannelType           `json:"type,omitempty"`
	Topic            string                        `json:"topic,omitempty"`
	Bitrate          int                           `json:"bitrate,omitempty"`
	UserLimit        int                           `json:"user_limit,omitempty"`
	RateLimitPerUser int                           `json:"rate_limit_per_user,omitempty"`
	Position         int                           `json:"position,omitempty"`
	Overwrites       []discord.PermissionOverwrite `json:"permission_overwrites,omitempty"`
	ParentID         discord.ChannelID             `json:"parent_id,omitempty"`
	NSFW             bool                          `json:"nsfw,omitempty"`
}

// CreateGuildChannel creates a channel in a guild.
func (c *Client) CreateGuildChannel(ctx context.Context, guildID discord.GuildID, params CreateGuildChannelParams, reason string) (*discord.Channel, error) {
	req, err := newJSONRequest(routeCreateGuildChannel(guildID), params)
	if err != nil {
		return nil, err
	}
	var ch discord.Channel
	if err := c.fire(ctx, req.withReason(reason), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GuildMember fetches one member of a guild.
func (c *Client) GuildMember(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.Member, error) {
	var m discord.Member
	if err := c.fire(ctx, newRequest(routeGuildMember(guildID, userID)), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GuildMembers pages through a guild's members, ordered by user id
// ascending from the after cursor.
func (c *Client) GuildMembers(ctx context.Context, guildID discord.GuildID, after discord.UserID, limit int) ([]discord.Member, error) {
	v := url.Values{}
	if !after.IsZero() {
		v.Set("after", after.String())
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var members []discord.Member
	req := newRequest(routeGuildMembers(guildID)).withParams(v)
	if err := c.fire(ctx, req, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// SearchGuildMembers finds members whose username or nickname starts
// with the query.
func (c *Client) SearchGuildMembers(ctx context.Context, guildID discord.GuildID, query string, limit int) ([]discord.Member, error) {
	v := url.Values{"query": {query}}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var members []discord.Member
	req := newRequest(routeSearchGuildMembers(guildID)).withParams(v)
	if err := c.fire(ctx, req, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// EditMemberParams is the body for modifying a member. Nil fields stay
// untouched.
type EditMemberParams struct {
	Nick                       *string            `json:"nick,omitempty"`
	Roles                      *[]discord.RoleID  `json:"roles,omitempty"`
	Mute                       *bool              `json:"mute,omitempty"`
	Deaf                       *bool              `json:"deaf,omitempty"`
	ChannelID                  *discord.ChannelID `json:"channel_id,omitempty"`
	CommunicationDisabledUntil *string            `json:"communication_disabled_until,omitempty"`
}

// EditMember modifies a guild member.
func (c *Client) EditMember(ctx context.Context, guildID discord.GuildID, userID discord.UserID, params EditMemberParams, reason string) (*discord.Member, error) {
	req, err := newJSONRequest(routeEditMember(guildID, userID), params)
	if err != nil {
		return nil, err
	}
	var m discord.Member
	if err := c.fire(ctx, req.withReason(reason), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// AddMemberRole grants a role to a member.
func (c *Client) AddMemberRole(ctx context.Context, guildID discord.GuildID, userID discord.UserID, roleID discord.RoleID, reason string) error {
	return c.wind(ctx, newRequest(routeAddMemberRole(guildID, userID, roleID)).withReason(reason))
}

// RemoveMemberRole revokes a role from a member.
func (c *Client) RemoveMemberRole(ctx context.Context, guildID discord.GuildID, userID discord.UserID, roleID discord.RoleID, reason string) error {
	return c.wind(ctx, newRequest(routeRemoveMemberRole(guildID, userID, roleID)).withReason(reason))
}

// KickMember removes a member from a guild.
func (c *Client) KickMember(ctx context.Context, guildID discord.GuildID, userID discord.UserID, reason string) error {
	return c.wind(ctx, newRequest(routeKickMember(guildID, userID)).withReason(reason))
}

// GuildBans pages through a guild's bans.
func (c *Client) GuildBans(ctx context.Context, guildID discord.GuildID, after discord.UserID, limit int) ([]discord.Ban, error) {
	v := url.Values{}
	if !after.IsZero() {
		v.Set("after", after.String())
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var bans []discord.Ban
	req := newRequest(routeGuildBans(guildID)).withParams(v)
	if err := c.fire(ctx, req, &bans); err != nil {
		return nil, err
	}
	return bans, nil
}

// GuildBan fetches one ban, a 404 meaning the user is not banned.
func (c *Client) GuildBan(ctx context.Context, guildID discord.GuildID, userID discord.UserID) (*discord.Ban, error) {
	var ban discord.Ban
	if err := c.fire(ctx, newRequest(routeGuildBan(guildID, userID)), &ban); err != nil {
		return nil, err
	}
	return &ban, nil
}

// BanMember bans a user, optionally pruning their recent messages.
func (c *Client) BanMember(ctx context.Context, guildID discord.GuildID, userID discord.UserID, deleteMessageSeconds int, reason string) error {
	payload := struct {
		DeleteMessageSeconds int `json:"delete_message_seconds,omitempty"`
	}{DeleteMessageSeconds: deleteMessageSeconds}
	req, err := newJSONRequest(routeBanMember(guildID, userID), payload)
	if err != nil {
		return err
	}
	return c.wind(ctx, req.withReason(reason))
}

// UnbanMember lifts a ban.
func (c *Client) UnbanMember(ctx context.Context, guildID discord.GuildID, userID discord.UserID, reason string) error {
	return c.wind(ctx, newRequest(routeUnbanMember(guildID, userID)).withReason(reason))
}

// GuildRoles lists a guild's roles.
func (c *Client) GuildRoles(ctx context.Context, guildID discord.GuildID) ([]discord.Role, error) {
	var roles []discord.Role
	if err := c.fire(ctx, newRequest(routeGuildRoles(guildID)), &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// RoleParams is the body for creating or editing a role.
type RoleParams struct {
	Name        *string              `json:"name,omitempty"`
	Permissions *discord.Permissions `json:"permissions,omitempty"`
	Color       *int                 `json:"color,omitempty"`
	Hoist       *bool                `json:"hoist,omitempty"`
	Mentionable *bool                `json:"mentionable,omitempty"`
	Icon        *string              `json:"icon,omitempty"`
}

// CreateRole creates a role in a guild.
func (c *Client) CreateRole(ctx context.Context, guildID discord.GuildID, params RoleParams, reason string) (*discord.Role, error) {
	req, err := newJSONRequest(routeCreateRole(guildID), params)
	if err != nil {
		return nil, err
	}
	var role discord.Role
	if err := c.fire(ctx, req.withReason(reason), &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// EditRole modifies a role.
func (c *Client) EditRole(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID, params RoleParams, reason string) (*discord.Role, error) {
	req, err := newJSONRequest(routeEditRole(guildID, roleID), params)
	if err != nil {
		return nil, err
	}
	var role discord.Role
	if err := c.fire(ctx, req.withReason(reason), &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole deletes a role.
func (c *Client) DeleteRole(ctx context.Context, guildID discord.GuildID, roleID discord.RoleID, reason string) error {
	return c.wind(ctx, newRequest(routeDeleteRole(guildID, roleID)).withReason(reason))
}

// GuildPruneCount reports how many members a prune with the given
// inactivity window would remove.
func (c *Client) GuildPruneCount(ctx context.Context, guildID discord.GuildID, days int) (int, error) {
	v := url.Values{}
	if days > 0 {
		v.Set("days", strconv.Itoa(days))
	}
	var result discord.PruneResult
	req := newRequest(routeGuildPruneCount(guildID)).withParams(v)
	if err := c.fire(ctx, req, &result); err != nil {
		return 0, err
	}
	return result.Pruned, nil
}

// BeginGuildPrune kicks members inactive for the given number of days.
func (c *Client) BeginGuildPrune(ctx context.Context, guildID discord.GuildID, days int, reason string) (int, error) {
	payload := struct {
		Days int `json:"days,omitempty"`
	}{Days: days}
	req, err := newJSONRequest(routeBeginGuildPrune(guildID), payload)
	if err != nil {
		return 0, err
	}
	var result discord.PruneResult
	if err := c.fire(ctx, req.withReason(reason), &result); err != nil {
		return 0, err
	}
	return result.Pruned, nil
}

// GuildInvites lists a guild's invites.
func (c *Client) GuildInvites(ctx context.Context, guildID discord.GuildID) ([]discord.Invite, error) {
	var invites []discord.Invite
	if err := c.fire(ctx, newRequest(routeGuildInvites(guildID)), &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// GuildEmojis lists a guild's custom emojis.
func (c *Client) GuildEmojis(ctx context.Context, guildID discord.GuildID) ([]discord.Emoji, error) {
	var emojis []discord.Emoji
	if err := c.fire(ctx, newRequest(routeGuildEmojis(guildID)), &emojis); err != nil {
		return nil, err
	}
	return emojis, nil
}

// GuildEmoji fetches one custom emoji.
func (c *Client) GuildEmoji(ctx context.Context, guildID discord.GuildID, emojiID discord.EmojiID) (*discord.Emoji, error) {
	var emoji discord.Emoji
	if err := c.fire(ctx, newRequest(routeGuildEmoji(guildID, emojiID)), &emoji); err != nil {
		return nil, err
	}
	return &emoji, nil
}

// CreateEmojiParams is the body for uploading a custom emoji. Image is
// a data URI.
type CreateEmojiParams struct {
	Name  string           `json:"name"`
	Image string           `json:"image"`
	Roles []discord.RoleID `json:"roles,omitempty"`
}

// CreateEmoji uploads a custom emoji to a guild.
func (c *Client) CreateEmoji(ctx context.Context, guildID discord.GuildID, params CreateEmojiParams, reason string) (*discord.Emoji, error) {
	req, err := newJSONRequest(routeCreateEmoji(guildID), params)
	if err != nil {
		return nil, err
	}
	var emoji discord.Emoji
	if err := c.fire(ctx, req.withReason(reason), &emoji); err != nil {
		return nil, err
	}
	return &emoji, nil
}

// EditEmojiParams is the body for renaming an emoji or changing its
// role allowlist.
type EditEmojiParams struct {
	Name  *string           `json:"name,omitempty"`
	Roles *[]discord.RoleID `json:"roles,omitempty"`
}

// EditEmoji modifies a custom emoji.
func (c *Client) EditEmoji(ctx context.Context, guildID discord.GuildID, emojiID discord.EmojiID, params EditEmojiParams, reason string) (*discord.Emoji, error) {
	req, err := newJSONRequest(routeEditEmoji(guildID, emojiID), params)
	if err != nil {
		return nil, err
	}
	var emoji discord.Emoji
	if err := c.fire(ctx, req.withReason(reason), &emoji); err != nil {
		return nil, err
	}
	return &emoji, nil
}

// DeleteEmoji removes a custom emoji.
func (c *Client) DeleteEmoji(ctx context.Context, guildID discord.GuildID, emojiID discord.EmojiID, reason string) error {
	return c.wind(ctx, newRequest(routeDeleteEmoji(guildID, emojiID)).withReason(reason))
}

// AuditLogQuery filters an audit log fetch.
type AuditLogQuery struct {
	UserID     discord.UserID
	ActionType int
	Before     discord.Snowflake
	Limit      int
}

func (q AuditLogQuery) values() url.Values {
	v := url.Values{}
	if !q.UserID.IsZero() {
		v.Set("user_id", q.UserID.String())
	}
	if q.ActionType > 0 {
		v.Set("action_type", strconv.Itoa(q.ActionType))
	}
	if !q.Before.IsZero() {
		v.Set("before", q.Before.String())
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// AuditLog fetches a guild's audit log.
func (c *Client) AuditLog(ctx context.Context, guildID discord.GuildID, query AuditLogQuery) (*discord.AuditLog, error) {
	var log discord.AuditLog
	req := newRequest(routeGuildAuditLog(guildID)).withParams(query.values())
	if err := c.fire(ctx, req, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// GuildWebhooks lists every webhook in a guild.
func (c *Client) GuildWebhooks(ctx context.Context, guildID discord.GuildID) ([]discord.Webhook, error) {
	var hooks []discord.Webhook
	if err := c.fire(ctx, newRequest(routeGuildWebhooks(guildID)), &hooks); err != nil {
		return nil, err
	}
	return hooks, nil
}
