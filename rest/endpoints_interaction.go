package rest

import (
	"context"

	"github.com/cordialhq/cordial/discord"
)

// GlobalCommands lists the application's global commands. Fails with
// ErrNoApplicationID until the application id is known.
func (c *Client) GlobalCommands(ctx context.Context) ([]discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	var cmds []discord.Command
	if err := c.fire(ctx, newRequest(routeGlobalCommands(appID)), &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

// CreateGlobalCommand registers or updates one global command by name.
func (c *Client) CreateGlobalCommand(ctx context.Context, cmd discord.Command) (*discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeCreateGlobalCommand(appID), cmd)
	if err != nil {
		return nil, err
	}
	var created discord.Command
	if err := c.fire(ctx, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// BulkSetGlobalCommands replaces the full global command set.
func (c *Client) BulkSetGlobalCommands(ctx context.Context, cmds []discord.Command) ([]discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeBulkSetGlobalCommands(appID), cmds)
	if err != nil {
		return nil, err
	}
	var set []discord.Command
	if err := c.fire(ctx, req, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// GlobalCommand fetches one global command.
func (c *Client) GlobalCommand(ctx context.Context, commandID discord.CommandID) (*discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	var cmd discord.Command
	if err := c.fire(ctx, newRequest(routeGlobalCommand(appID, commandID)), &cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// EditGlobalCommand updates one global command.
func (c *Client) EditGlobalCommand(ctx context.Context, commandID discord.CommandID, cmd discord.Command) (*discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeEditGlobalCommand(appID, commandID), cmd)
	if err != nil {
		return nil, err
	}
	var updated discord.Command
	if err := c.fire(ctx, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGlobalCommand unregisters one global command.
func (c *Client) DeleteGlobalCommand(ctx context.Context, commandID discord.CommandID) error {
	appID, err := c.applicationID()
	if err != nil {
		return err
	}
	return c.wind(ctx, newRequest(routeDeleteGlobalCommand(appID, commandID)))
}

// GuildCommands lists the application's commands in one guild.
func (c *Client) GuildCommands(ctx context.Context, guildID discord.GuildID) ([]discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	var cmds []discord.Command
	if err := c.fire(ctx, newRequest(routeGuildCommands(appID, guildID)), &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

// CreateGuildCommand registers or updates one guild command. Guild
// commands propagate instantly, which makes them the right tool while
// iterating.
func (c *Client) CreateGuildCommand(ctx context.Context, guildID discord.GuildID, cmd discord.Command) (*discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeCreateGuildCommand(appID, guildID), cmd)
	if err != nil {
		return nil, err
	}
	var created discord.Command
	if err := c.fire(ctx, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// BulkSetGuildCommands replaces the full command set in one guild.
func (c *Client) BulkSetGuildCommands(ctx context.Context, guildID discord.GuildID, cmds []discord.Command) ([]discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeBulkSetGuildCommands(appID, guildID), cmds)
	if err != nil {
		return nil, err
	}
	var set []discord.Command
	if err := c.fire(ctx, req, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// GuildCommand fetches one guild command.
func (c *Client) GuildCommand(ctx context.Context, guildID discord.GuildID, commandID discord.CommandID) (*discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	var cmd discord.Command
	if err := c.fire(ctx, newRequest(routeGuildCommand(appID, guildID, commandID)), &cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// EditGuildCommand updates one guild command.
func (c *Client) EditGuildCommand(ctx context.Context, guildID discord.GuildID, commandID discord.CommandID, cmd discord.Command) (*discord.Command, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeEditGuildCommand(appID, guildID, commandID), cmd)
	if err != nil {
		return nil, err
	}
	var updated discord.Command
	if err := c.fire(ctx, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteGuildCommand unregisters one guild command.
func (c *Client) DeleteGuildCommand(ctx context.Context, guildID discord.GuildID, commandID discord.CommandID) error {
	appID, err := c.applicationID()
	if err != nil {
		return err
	}
	return c.wind(ctx, newRequest(routeDeleteGuildCommand(appID, guildID, commandID)))
}

// RespondInteraction sends the initial response to an interaction
// within its three second window. The route is keyed by the
// interaction's own token, not the bot token.
func (c *Client) RespondInteraction(ctx context.Context, interactionID discord.InteractionID, token string, resp discord.InteractionResponse) error {
	req, err := newJSONRequest(routeInteractionCallback(interactionID, token), resp)
	if err != nil {
		return err
	}
	return c.wind(ctx, req)
}

// OriginalInteractionResponse fetches the message created by the
// initial response.
func (c *Client) OriginalInteractionResponse(ctx context.Context, token string) (*discord.Message, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	var msg discord.Message
	if err := c.fire(ctx, newRequest(routeOriginalInteractionResponse(appID, token)), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditOriginalInteractionResponse edits the initial response message.
func (c *Client) EditOriginalInteractionResponse(ctx context.Context, token string, params EditMessageParams) (*discord.Message, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	req, err := newJSONRequest(routeEditOriginalInteractionResponse(appID, token), params)
	if err != nil {
		return nil, err
	}
	var msg discord.Message
	if err := c.fire(ctx, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteOriginalInteractionResponse deletes the initial response
// message.
func (c *Client) DeleteOriginalInteractionResponse(ctx context.Context, token string) error {
	appID, err := c.applicationID()
	if err != nil {
		return err
	}
	return c.wind(ctx, newRequest(routeDeleteOriginalInteractionResponse(appID, token)))
}

// CreateFollowupMessage sends an additional message after the initial
// response.
func (c *Client) CreateFollowupMessage(ctx context.Context, token string, params ExecuteWebhookParams) (*discord.Message, error) {
	appID, err := c.applicationID()
	if err != nil {
		return nil, err
	}
	if params.AllowedMentions == nil {
		params.AllowedMentions = c.defaultAllowedMentions
	}
	req, err := jsonOrMultipart(routeCreateFollowupMessage(appID, token), params, params.Files)
	if err != nil {
		return nil, err
	}
	var msg discord.Message
	if err := c.fire(ctx, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
