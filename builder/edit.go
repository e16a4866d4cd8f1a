package builder

import (
	"context"
	"time"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/rest"
)

// MessageEdit accumulates a partial message update. Fields never set
// are omitted from the patch and keep their current value.
type MessageEdit struct {
	params rest.EditMessageParams
}

// NewMessageEdit starts an empty message edit.
func NewMessageEdit() *MessageEdit {
	return &MessageEdit{}
}

// Content replaces the message content.
func (e *MessageEdit) Content(content string) *MessageEdit {
	e.params.Content = &content
	return e
}

// Embeds replaces the embed list. Calling it with no arguments clears
// all embeds.
func (e *MessageEdit) Embeds(embeds ...discord.Embed) *MessageEdit {
	es := append([]discord.Embed{}, embeds...)
	e.params.Embeds = &es
	return e
}

// Mentions sets the mention policy for the edited content.
func (e *MessageEdit) Mentions(allowed discord.AllowedMentions) *MessageEdit {
	e.params.AllowedMentions = &allowed
	return e
}

// SuppressEmbeds stops link previews from rendering.
func (e *MessageEdit) SuppressEmbeds() *MessageEdit {
	flags := discord.MessageFlagSuppressEmbeds
	if e.params.Flags != nil {
		flags |= *e.params.Flags
	}
	e.params.Flags = &flags
	return e
}

// Build returns the accumulated params.
func (e *MessageEdit) Build() rest.EditMessageParams {
	return e.params
}

// Edit applies the patch to the message.
func (e *MessageEdit) Edit(ctx context.Context, c *rest.Client, channelID discord.ChannelID, messageID discord.MessageID) (*discord.Message, error) {
	return c.EditMessage(ctx, channelID, messageID, e.params)
}

// ChannelEdit accumulates a partial channel update.
type ChannelEdit struct {
	params rest.EditChannelParams
}

// NewChannelEdit starts an empty channel edit.
func NewChannelEdit() *ChannelEdit {
	return &ChannelEdit{}
}

// Name renames the channel.
func (e *ChannelEdit) Name(name string) *ChannelEdit {
	e.params.Name = &name
	return e
}

// Topic sets the channel topic.
func (e *ChannelEdit) Topic(topic string) *ChannelEdit {
	e.params.Topic = &topic
	return e
}

// Position moves the channel in the listing.
func (e *ChannelEdit) Position(pos int) *ChannelEdit {
	e.params.Position = &pos
	return e
}

// NSFW flags the channel as age restricted.
func (e *ChannelEdit) NSFW(nsfw bool) *ChannelEdit {
	e.params.NSFW = &nsfw
	return e
}

// Slowmode sets the per-user send cooldown in seconds. Zero disables
// it.
func (e *ChannelEdit) Slowmode(seconds int) *ChannelEdit {
	e.params.RateLimitPerUser = &seconds
	return e
}

// Bitrate sets the voice bitrate in bits per second.
func (e *ChannelEdit) Bitrate(bps int) *ChannelEdit {
	e.params.Bitrate = &bps
	return e
}

// UserLimit caps how many members can join the voice channel. Zero
// removes the cap.
func (e *ChannelEdit) UserLimit(limit int) *ChannelEdit {
	e.params.UserLimit = &limit
	return e
}

// Parent moves the channel under a category.
func (e *ChannelEdit) Parent(id discord.ChannelID) *ChannelEdit {
	e.params.ParentID = &id
	return e
}

// Overwrites replaces the channel's permission overwrites.
func (e *ChannelEdit) Overwrites(overwrites ...discord.PermissionOverwrite) *ChannelEdit {
	os := append([]discord.PermissionOverwrite{}, overwrites...)
	e.params.Overwrites = &os
	return e
}

// Archived sets the archive state of a thread.
func (e *ChannelEdit) Archived(archived bool) *ChannelEdit {
	e.params.Archived = &archived
	return e
}

// Locked sets the lock state of a thread.
func (e *ChannelEdit) Locked(locked bool) *ChannelEdit {
	e.params.Locked = &locked
	return e
}

// Build returns the accumulated params.
func (e *ChannelEdit) Build() rest.EditChannelParams {
	return e.params
}

// Edit applies the patch to the channel.
func (e *ChannelEdit) Edit(ctx context.Context, c *rest.Client, channelID discord.ChannelID, reason string) (*discord.Channel, error) {
	return c.EditChannel(ctx, channelID, e.params, reason)
}

// MemberEdit accumulates a partial guild member update.
type MemberEdit struct {
	params rest.EditMemberParams
}

// NewMemberEdit starts an empty member edit.
func NewMemberEdit() *MemberEdit {
	return &MemberEdit{}
}

// Nick sets the member's guild nickname. An empty string removes it.
func (e *MemberEdit) Nick(nick string) *MemberEdit {
	e.params.Nick = &nick
	return e
}

// Roles replaces the member's role list.
func (e *MemberEdit) Roles(ids ...discord.RoleID) *MemberEdit {
	rs := append([]discord.RoleID{}, ids...)
	e.params.Roles = &rs
	return e
}

// Mute sets the member's server mute state.
func (e *MemberEdit) Mute(mute bool) *MemberEdit {
	e.params.Mute = &mute
	return e
}

// Deaf sets the member's server deafen state.
func (e *MemberEdit) Deaf(deaf bool) *MemberEdit {
	e.params.Deaf = &deaf
	return e
}

// VoiceChannel moves the member to another voice channel. The member
// must already be connected to voice.
func (e *MemberEdit) VoiceChannel(id discord.ChannelID) *MemberEdit {
	e.params.ChannelID = &id
	return e
}

// Timeout prevents the member from interacting until the given time.
func (e *MemberEdit) Timeout(until time.Time) *MemberEdit {
	ts := until.UTC().Format(time.RFC3339)
	e.params.CommunicationDisabledUntil = &ts
	return e
}

// Build returns the accumulated params.
func (e *MemberEdit) Build() rest.EditMemberParams {
	return e.params
}

// Edit applies the patch to the member.
func (e *MemberEdit) Edit(ctx context.Context, c *rest.Client, guildID discord.GuildID, userID discord.UserID, reason string) (*discord.Member, error) {
	return c.EditMember(ctx, guildID, userID, e.params, reason)
}
