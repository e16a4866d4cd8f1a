package rest

import (
	"context"

	"github.com/cordialhq/cordial/discord"
)

// Paged endpoints cap their page size at 100 (200 for the current
// user's guilds); the helpers below walk full collections page by
// page, each page a separate rate-limited call.
const maxPageSize = 100

// EachMessagePage walks a channel's history backwards from before,
// newest first, invoking fn per page until fn returns false or history
// is exhausted. A zero before starts at the newest message.
func (c *Client) EachMessagePage(ctx context.Context, channelID discord.ChannelID, before discord.MessageID, fn func([]discord.Message) bool) error {
	for {
		page, err := c.Messages(ctx, channelID, MessagesQuery{Before: before, Limit: maxPageSize})
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		if !fn(page) {
			return nil
		}
		before = page[len(page)-1].ID
		if len(page) < maxPageSize {
			return nil
		}
	}
}

// AllGuildMembers collects every member of a guild. Large guilds mean
// many calls; prefer the gateway for bulk member sync when a session
// is available.
func (c *Client) AllGuildMembers(ctx context.Context, guildID discord.GuildID) ([]discord.Member, error) {
	var all []discord.Member
	var after discord.UserID
	for {
		page, err := c.GuildMembers(ctx, guildID, after, maxPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < maxPageSize {
			return all, nil
		}
		last := page[len(page)-1]
		if last.User == nil {
			return all, nil
		}
		after = last.User.ID
	}
}

// AllCurrentUserGuilds collects every guild the authenticated user is
// in.
func (c *Client) AllCurrentUserGuilds(ctx context.Context) ([]discord.PartialGuild, error) {
	const pageSize = 200
	var all []discord.PartialGuild
	var after discord.GuildID
	for {
		page, err := c.CurrentUserGuilds(ctx, after, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		after = page[len(page)-1].ID
	}
}
