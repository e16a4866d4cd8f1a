package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cordialhq/cordial/discord"
)

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*discord.User, error) {
	var u discord.User
	if err := c.fire(ctx, newRequest(routeCurrentUser()), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EditCurrentUser modifies the authenticated user's profile.
func (c *Client) EditCurrentUser(ctx context.Context, patch discord.CurrentUserPatch) (*discord.User, error) {
	req, err := newJSONRequest(routeEditCurrentUser(), patch)
	if err != nil {
		return nil, err
	}
	var u discord.User
	if err := c.fire(ctx, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// User fetches any user by id.
func (c *Client) User(ctx context.Context, userID discord.UserID) (*discord.User, error) {
	var u discord.User
	if err := c.fire(ctx, newRequest(routeUser(userID)), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentUserGuilds pages through the guilds the authenticated user is
// in, 200 per page at most.
func (c *Client) CurrentUserGuilds(ctx context.Context, after discord.GuildID, limit int) ([]discord.PartialGuild, error) {
	v := url.Values{}
	if !after.IsZero() {
		v.Set("after", after.String())
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var guilds []discord.PartialGuild
	req := newRequest(routeCurrentUserGuilds()).withParams(v)
	if err := c.fire(ctx, req, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// LeaveGuild removes the authenticated user from a guild.
func (c *Client) LeaveGuild(ctx context.Context, guildID discord.GuildID) error {
	return c.wind(ctx, newRequest(routeLeaveGuild(guildID)))
}

// CreateDM opens, or reuses, a direct message channel with a user.
func (c *Client) CreateDM(ctx context.Context, recipientID discord.UserID) (*discord.Channel, error) {
	payload := struct {
		RecipientID discord.UserID `json:"recipient_id"`
	}{RecipientID: recipientID}
	req, err := newJSONRequest(routeCreateDM(), payload)
	if err != nil {
		return nil, err
	}
	var ch discord.Channel
	if err := c.fire(ctx, req, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// CurrentUserConnections lists the authenticated user's linked
// accounts. Requires the connections OAuth scope.
func (c *Client) CurrentUserConnections(ctx context.Context) ([]discord.Connection, error) {
	var conns []discord.Connection
	if err := c.fire(ctx, newRequest(routeCurrentUserConnections()), &conns); err != nil {
		return nil, err
	}
	return conns, nil
}
