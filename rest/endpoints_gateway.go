package rest

import (
	"context"

	"github.com/cordialhq/cordial/discord"
)

// Gateway fetches the websocket connect URL. No authentication needed.
func (c *Client) Gateway(ctx context.Context) (*discord.Gateway, error) {
	var g discord.Gateway
	if err := c.fire(ctx, newRequest(routeGateway()), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GatewayBot fetches the connect URL along with shard count and
// session start quota for the authenticated bot.
func (c *Client) GatewayBot(ctx context.Context) (*discord.GatewayBot, error) {
	var g discord.GatewayBot
	if err := c.fire(ctx, newRequest(routeGatewayBot()), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// VoiceRegions lists the available voice server regions.
func (c *Client) VoiceRegions(ctx context.Context) ([]discord.VoiceRegion, error) {
	var regions []discord.VoiceRegion
	if err := c.fire(ctx, newRequest(routeVoiceRegions()), &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// CurrentApplication fetches the application the token belongs to and
// remembers its id for application command endpoints.
func (c *Client) CurrentApplication(ctx context.Context) (*discord.Application, error) {
	var app discord.Application
	if err := c.fire(ctx, newRequest(routeCurrentApplication()), &app); err != nil {
		return nil, err
	}
	if !app.ID.IsZero() {
		c.SetApplicationID(app.ID)
	}
	return &app, nil
}
