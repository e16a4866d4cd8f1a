package rest

import (
	"net/http"

	"github.com/cordialhq/cordial/discord"
)

// routeKind names one route template. Together with the major
// parameter it determines which rate limit bucket a request consumes
// from, so kinds are deliberately a closed set: every endpoint method
// in this package goes through one of the constructors below.
type routeKind uint8

const (
	kindChannel routeKind = iota + 1
	kindChannelMessages
	kindChannelMessage
	kindChannelMessageDelete
	kindChannelMessagesBulkDelete
	kindChannelMessageCrosspost
	kindChannelReactions
	kindChannelPermissions
	kindChannelInvites
	kindChannelPins
	kindChannelTyping
	kindChannelWebhooks
	kindChannelThreads
	kindChannelThreadMembers

	kindGuilds
	kindGuild
	kindGuildPreview
	kindGuildChannels
	kindGuildMembers
	kindGuildMembersSearch
	kindGuildMember
	kindGuildMemberRole
	kindGuildBans
	kindGuildBan
	kindGuildRoles
	kindGuildRole
	kindGuildPrune
	kindGuildInvites
	kindGuildWebhooks
	kindGuildEmojis
	kindGuildEmoji
	kindGuildAuditLog

	kindUsersMe
	kindUser
	kindUsersMeGuilds
	kindUsersMeChannels
	kindUsersMeConnections

	kindWebhook
	kindWebhookToken
	kindWebhookMessage

	kindInvite

	kindGateway
	kindGatewayBot
	kindVoiceRegions
	kindCurrentApplication

	kindApplicationCommands
	kindApplicationCommand
	kindApplicationGuildCommands
	kindApplicationGuildCommand
	kindInteractionCallback
	kindInteractionOriginal
	kindInteractionFollowup
)

// bucketKey identifies one rate limit domain: a route template plus
// the major parameter that subdivides it. Only the documented major
// parameter (guild, channel, webhook or interaction id) participates;
// minor path parameters such as message or emoji ids deliberately do
// not, so requests that share a server-side bucket share a key.
type bucketKey struct {
	kind  routeKind
	major uint64
}

// Route identifies one API endpoint: the HTTP method, the concrete
// request path and the bucket the endpoint consumes from. Routes are
// built only by the constructors in this file, keeping the template
// set closed.
type Route struct {
	method string
	path   string
	key    bucketKey
}

// Method returns the HTTP method of the route.
func (r Route) Method() string { return r.method }

// Path returns the request path below the API base.
func (r Route) Path() string { return r.path }

// String renders the route for logs.
func (r Route) String() string { return r.method + " " + r.path }

// Channel routes. Major parameter: channel id.

func routeChannel(cid discord.ChannelID) Route {
	return Route{http.MethodGet, "/channels/" + cid.String(), bucketKey{kindChannel, uint64(cid)}}
}

func routeEditChannel(cid discord.ChannelID) Route {
	return Route{http.MethodPatch, "/channels/" + cid.String(), bucketKey{kindChannel, uint64(cid)}}
}

func routeDeleteChannel(cid discord.ChannelID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String(), bucketKey{kindChannel, uint64(cid)}}
}

func routeMessages(cid discord.ChannelID) Route {
	return Route{http.MethodGet, "/channels/" + cid.String() + "/messages", bucketKey{kindChannelMessages, uint64(cid)}}
}

func routeCreateMessage(cid discord.ChannelID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/messages", bucketKey{kindChannelMessages, uint64(cid)}}
}

func routeMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodGet, "/channels/" + cid.String() + "/messages/" + mid.String(), bucketKey{kindChannelMessage, uint64(cid)}}
}

func routeEditMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodPatch, "/channels/" + cid.String() + "/messages/" + mid.String(), bucketKey{kindChannelMessage, uint64(cid)}}
}

// Message deletion has a separate, stricter server-side bucket than
// the other message endpoints on the same path, so it gets its own
// kind.
func routeDeleteMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/messages/" + mid.String(), bucketKey{kindChannelMessageDelete, uint64(cid)}}
}

func routeBulkDeleteMessages(cid discord.ChannelID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/messages/bulk-delete", bucketKey{kindChannelMessagesBulkDelete, uint64(cid)}}
}

func routeCrosspostMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/messages/" + mid.String() + "/crosspost", bucketKey{kindChannelMessageCrosspost, uint64(cid)}}
}

func routeCreateReaction(cid discord.ChannelID, mid discord.MessageID, emoji discord.Emoji) Route {
	return Route{http.MethodPut, "/channels/" + cid.String() + "/messages/" + mid.String() + "/reactions/" + emoji.APIName() + "/@me", bucketKey{kindChannelReactions, uint64(cid)}}
}

func routeDeleteOwnReaction(cid discord.ChannelID, mid discord.MessageID, emoji discord.Emoji) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/messages/" + mid.String() + "/reactions/" + emoji.APIName() + "/@me", bucketKey{kindChannelReactions, uint64(cid)}}
}

func routeDeleteUserReaction(cid discord.ChannelID, mid discord.MessageID, emoji discord.Emoji, uid discord.UserID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/messages/" + mid.String() + "/reactions/" + emoji.APIName() + "/" + uid.String(), bucketKey{kindChannelReactions, uint64(cid)}}
}

func routeReactions(cid discord.ChannelID, mid discord.MessageID, emoji discord.Emoji) Route {
	return Route{http.MethodGet, "/channels/" + cid.String() + "/messages/" + mid.String() + "/reactions/" + emoji.APIName(), bucketKey{kindChannelReactions, uint64(cid)}}
}

func routeDeleteAllReactions(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/messages/" + mid.String() + "/reactions", bucketKey{kindChannelReactions, uint64(cid)}}
}

func routeEditChannelPermission(cid discord.ChannelID, overwriteID discord.Snowflake) Route {
	return Route{http.MethodPut, "/channels/" + cid.String() + "/permissions/" + overwriteID.String(), bucketKey{kindChannelPermissions, uint64(cid)}}
}

func routeDeleteChannelPermission(cid discord.ChannelID, overwriteID discord.Snowflake) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/permissions/" + overwriteID.String(), bucketKey{kindChannelPermissions, uint64(cid)}}
}

func routeChannelInvites(cid discord.ChannelID) Route {
	return Route{http.MethodGet, "/channels/" + cid.String() + "/invites", bucketKey{kindChannelInvites, uint64(cid)}}
}

func routeCreateChannelInvite(cid discord.ChannelID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/invites", bucketKey{kindChannelInvites, uint64(cid)}}
}

func routeTriggerTyping(cid discord.ChannelID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/typing", bucketKey{kindChannelTyping, uint64(cid)}}
}

func routePinnedMessages(cid discord.ChannelID) Route {
	return Route{http.MethodGet, "/channels/" + cid.String() + "/pins", bucketKey{kindChannelPins, uint64(cid)}}
}

func routePinMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodPut, "/channels/" + cid.String() + "/pins/" + mid.String(), bucketKey{kindChannelPins, uint64(cid)}}
}

func routeUnpinMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/pins/" + mid.String(), bucketKey{kindChannelPins, uint64(cid)}}
}

func routeStartThread(cid discord.ChannelID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/threads", bucketKey{kindChannelThreads, uint64(cid)}}
}

func routeStartThreadWithMessage(cid discord.ChannelID, mid discord.MessageID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/messages/" + mid.String() + "/threads", bucketKey{kindChannelThreads, uint64(cid)}}
}

func routeJoinThread(cid discord.ChannelID) Route {
	return Route{http.MethodPut, "/channels/" + cid.String() + "/thread-members/@me", bucketKey{kindChannelThreadMembers, uint64(cid)}}
}

func routeLeaveThread(cid discord.ChannelID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/thread-members/@me", bucketKey{kindChannelThreadMembers, uint64(cid)}}
}

func routeAddThreadMember(cid discord.ChannelID, uid discord.UserID) Route {
	return Route{http.MethodPut, "/channels/" + cid.String() + "/thread-members/" + uid.String(), bucketKey{kindChannelThreadMembers, uint64(cid)}}
}

func routeRemoveThreadMember(cid discord.ChannelID, uid discord.UserID) Route {
	return Route{http.MethodDelete, "/channels/" + cid.String() + "/thread-members/" + uid.String(), bucketKey{kindChannelThreadMembers, uint64(cid)}}
}

// Guild routes. Major parameter: guild id.

func routeCreateGuild() Route {
	return Route{http.MethodPost, "/guilds", bucketKey{kind: kindGuilds}}
}

func routeGuild(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String(), bucketKey{kindGuild, uint64(gid)}}
}

func routeEditGuild(gid discord.GuildID) Route {
	return Route{http.MethodPatch, "/guilds/" + gid.String(), bucketKey{kindGuild, uint64(gid)}}
}

func routeGuildPreview(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/preview", bucketKey{kindGuildPreview, uint64(gid)}}
}

func routeGuildChannels(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/channels", bucketKey{kindGuildChannels, uint64(gid)}}
}

func routeCreateGuildChannel(gid discord.GuildID) Route {
	return Route{http.MethodPost, "/guilds/" + gid.String() + "/channels", bucketKey{kindGuildChannels, uint64(gid)}}
}

func routeGuildMembers(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/members", bucketKey{kindGuildMembers, uint64(gid)}}
}

func routeSearchGuildMembers(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/members/search", bucketKey{kindGuildMembersSearch, uint64(gid)}}
}

func routeGuildMember(gid discord.GuildID, uid discord.UserID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/members/" + uid.String(), bucketKey{kindGuildMember, uint64(gid)}}
}

func routeEditMember(gid discord.GuildID, uid discord.UserID) Route {
	return Route{http.MethodPatch, "/guilds/" + gid.String() + "/members/" + uid.String(), bucketKey{kindGuildMember, uint64(gid)}}
}

func routeKickMember(gid discord.GuildID, uid discord.UserID) Route {
	return Route{http.MethodDelete, "/guilds/" + gid.String() + "/members/" + uid.String(), bucketKey{kindGuildMember, uint64(gid)}}
}

func routeAddMemberRole(gid discord.GuildID, uid discord.UserID, rid discord.RoleID) Route {
	return Route{http.MethodPut, "/guilds/" + gid.String() + "/members/" + uid.String() + "/roles/" + rid.String(), bucketKey{kindGuildMemberRole, uint64(gid)}}
}

func routeRemoveMemberRole(gid discord.GuildID, uid discord.UserID, rid discord.RoleID) Route {
	return Route{http.MethodDelete, "/guilds/" + gid.String() + "/members/" + uid.String() + "/roles/" + rid.String(), bucketKey{kindGuildMemberRole, uint64(gid)}}
}

func routeGuildBans(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/bans", bucketKey{kindGuildBans, uint64(gid)}}
}

func routeGuildBan(gid discord.GuildID, uid discord.UserID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/bans/" + uid.String(), bucketKey{kindGuildBan, uint64(gid)}}
}

func routeBanMember(gid discord.GuildID, uid discord.UserID) Route {
	return Route{http.MethodPut, "/guilds/" + gid.String() + "/bans/" + uid.String(), bucketKey{kindGuildBan, uint64(gid)}}
}

func routeUnbanMember(gid discord.GuildID, uid discord.UserID) Route {
	return Route{http.MethodDelete, "/guilds/" + gid.String() + "/bans/" + uid.String(), bucketKey{kindGuildBan, uint64(gid)}}
}

func routeGuildRoles(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/roles", bucketKey{kindGuildRoles, uint64(gid)}}
}

func routeCreateRole(gid discord.GuildID) Route {
	return Route{http.MethodPost, "/guilds/" + gid.String() + "/roles", bucketKey{kindGuildRoles, uint64(gid)}}
}

func routeEditRole(gid discord.GuildID, rid discord.RoleID) Route {
	return Route{http.MethodPatch, "/guilds/" + gid.String() + "/roles/" + rid.String(), bucketKey{kindGuildRole, uint64(gid)}}
}

func routeDeleteRole(gid discord.GuildID, rid discord.RoleID) Route {
	return Route{http.MethodDelete, "/guilds/" + gid.String() + "/roles/" + rid.String(), bucketKey{kindGuildRole, uint64(gid)}}
}

func routeGuildPruneCount(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/prune", bucketKey{kindGuildPrune, uint64(gid)}}
}

func routeBeginGuildPrune(gid discord.GuildID) Route {
	return Route{http.MethodPost, "/guilds/" + gid.String() + "/prune", bucketKey{kindGuildPrune, uint64(gid)}}
}

func routeGuildInvites(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/invites", bucketKey{kindGuildInvites, uint64(gid)}}
}

func routeGuildWebhooks(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/webhooks", bucketKey{kindGuildWebhooks, uint64(gid)}}
}

func routeGuildEmojis(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/emojis", bucketKey{kindGuildEmojis, uint64(gid)}}
}

func routeCreateEmoji(gid discord.GuildID) Route {
	return Route{http.MethodPost, "/guilds/" + gid.String() + "/emojis", bucketKey{kindGuildEmojis, uint64(gid)}}
}

func routeGuildEmoji(gid discord.GuildID, eid discord.EmojiID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/emojis/" + eid.String(), bucketKey{kindGuildEmoji, uint64(gid)}}
}

func routeEditEmoji(gid discord.GuildID, eid discord.EmojiID) Route {
	return Route{http.MethodPatch, "/guilds/" + gid.String() + "/emojis/" + eid.String(), bucketKey{kindGuildEmoji, uint64(gid)}}
}

func routeDeleteEmoji(gid discord.GuildID, eid discord.EmojiID) Route {
	return Route{http.MethodDelete, "/guilds/" + gid.String() + "/emojis/" + eid.String(), bucketKey{kindGuildEmoji, uint64(gid)}}
}

func routeGuildAuditLog(gid discord.GuildID) Route {
	return Route{http.MethodGet, "/guilds/" + gid.String() + "/audit-logs", bucketKey{kindGuildAuditLog, uint64(gid)}}
}

// User routes. No major parameter.

func routeCurrentUser() Route {
	return Route{http.MethodGet, "/users/@me", bucketKey{kind: kindUsersMe}}
}

func routeEditCurrentUser() Route {
	return Route{http.MethodPatch, "/users/@me", bucketKey{kind: kindUsersMe}}
}

func routeUser(uid discord.UserID) Route {
	return Route{http.MethodGet, "/users/" + uid.String(), bucketKey{kind: kindUser}}
}

func routeCurrentUserGuilds() Route {
	return Route{http.MethodGet, "/users/@me/guilds", bucketKey{kind: kindUsersMeGuilds}}
}

func routeLeaveGuild(gid discord.GuildID) Route {
	return Route{http.MethodDelete, "/users/@me/guilds/" + gid.String(), bucketKey{kind: kindUsersMeGuilds}}
}

func routeCreateDM() Route {
	return Route{http.MethodPost, "/users/@me/channels", bucketKey{kind: kindUsersMeChannels}}
}

func routeCurrentUserConnections() Route {
	return Route{http.MethodGet, "/users/@me/connections", bucketKey{kind: kindUsersMeConnections}}
}

// Webhook routes. Major parameter: webhook id. The token is part of
// the path but never part of the key.

func routeCreateWebhook(cid discord.ChannelID) Route {
	return Route{http.MethodPost, "/channels/" + cid.String() + "/webhooks", bucketKey{kindChannelWebhooks, uint64(cid)}}
}

func routeChannelWebhooks(cid discord.ChannelID) Route {
	return Route{http.MethodGet, "/channels/" + cid.String() + "/webhooks", bucketKey{kindChannelWebhooks, uint64(cid)}}
}

func routeWebhook(wid discord.WebhookID) Route {
	return Route{http.MethodGet, "/webhooks/" + wid.String(), bucketKey{kindWebhook, uint64(wid)}}
}

func routeEditWebhook(wid discord.WebhookID) Route {
	return Route{http.MethodPatch, "/webhooks/" + wid.String(), bucketKey{kindWebhook, uint64(wid)}}
}

func routeDeleteWebhook(wid discord.WebhookID) Route {
	return Route{http.MethodDelete, "/webhooks/" + wid.String(), bucketKey{kindWebhook, uint64(wid)}}
}

func routeWebhookWithToken(wid discord.WebhookID, token string) Route {
	return Route{http.MethodGet, "/webhooks/" + wid.String() + "/" + token, bucketKey{kindWebhookToken, uint64(wid)}}
}

func routeEditWebhookWithToken(wid discord.WebhookID, token string) Route {
	return Route{http.MethodPatch, "/webhooks/" + wid.String() + "/" + token, bucketKey{kindWebhookToken, uint64(wid)}}
}

func routeDeleteWebhookWithToken(wid discord.WebhookID, token string) Route {
	return Route{http.MethodDelete, "/webhooks/" + wid.String() + "/" + token, bucketKey{kindWebhookToken, uint64(wid)}}
}

func routeExecuteWebhook(wid discord.WebhookID, token string) Route {
	return Route{http.MethodPost, "/webhooks/" + wid.String() + "/" + token, bucketKey{kindWebhookToken, uint64(wid)}}
}

func routeWebhookMessage(wid discord.WebhookID, token string, mid discord.MessageID) Route {
	return Route{http.MethodGet, "/webhooks/" + wid.String() + "/" + token + "/messages/" + mid.String(), bucketKey{kindWebhookMessage, uint64(wid)}}
}

func routeEditWebhookMessage(wid discord.WebhookID, token string, mid discord.MessageID) Route {
	return Route{http.MethodPatch, "/webhooks/" + wid.String() + "/" + token + "/messages/" + mid.String(), bucketKey{kindWebhookMessage, uint64(wid)}}
}

func routeDeleteWebhookMessage(wid discord.WebhookID, token string, mid discord.MessageID) Route {
	return Route{http.MethodDelete, "/webhooks/" + wid.String() + "/" + token + "/messages/" + mid.String(), bucketKey{kindWebhookMessage, uint64(wid)}}
}

// Invite routes. No major parameter.

func routeInvite(code string) Route {
	return Route{http.MethodGet, "/invites/" + code, bucketKey{kind: kindInvite}}
}

func routeDeleteInvite(code string) Route {
	return Route{http.MethodDelete, "/invites/" + code, bucketKey{kind: kindInvite}}
}

// Gateway and application routes.

func routeGateway() Route {
	return Route{http.MethodGet, "/gateway", bucketKey{kind: kindGateway}}
}

func routeGatewayBot() Route {
	return Route{http.MethodGet, "/gateway/bot", bucketKey{kind: kindGatewayBot}}
}

func routeVoiceRegions() Route {
	return Route{http.MethodGet, "/voice/regions", bucketKey{kind: kindVoiceRegions}}
}

func routeCurrentApplication() Route {
	return Route{http.MethodGet, "/oauth2/applications/@me", bucketKey{kind: kindCurrentApplication}}
}

// Application command routes. Global commands have no major parameter;
// guild commands use the guild id.

func routeGlobalCommands(aid discord.ApplicationID) Route {
	return Route{http.MethodGet, "/applications/" + aid.String() + "/commands", bucketKey{kind: kindApplicationCommands}}
}

func routeCreateGlobalCommand(aid discord.ApplicationID) Route {
	return Route{http.MethodPost, "/applications/" + aid.String() + "/commands", bucketKey{kind: kindApplicationCommands}}
}

func routeBulkSetGlobalCommands(aid discord.ApplicationID) Route {
	return Route{http.MethodPut, "/applications/" + aid.String() + "/commands", bucketKey{kind: kindApplicationCommands}}
}

func routeGlobalCommand(aid discord.ApplicationID, cmd discord.CommandID) Route {
	return Route{http.MethodGet, "/applications/" + aid.String() + "/commands/" + cmd.String(), bucketKey{kind: kindApplicationCommand}}
}

func routeEditGlobalCommand(aid discord.ApplicationID, cmd discord.CommandID) Route {
	return Route{http.MethodPatch, "/applications/" + aid.String() + "/commands/" + cmd.String(), bucketKey{kind: kindApplicationCommand}}
}

func routeDeleteGlobalCommand(aid discord.ApplicationID, cmd discord.CommandID) Route {
	return Route{http.MethodDelete, "/applications/" + aid.String() + "/commands/" + cmd.String(), bucketKey{kind: kindApplicationCommand}}
}

func routeGuildCommands(aid discord.ApplicationID, gid discord.GuildID) Route {
	return Route{http.MethodGet, "/applications/" + aid.String() + "/guilds/" + gid.String() + "/commands", bucketKey{kindApplicationGuildCommands, uint64(gid)}}
}

func routeCreateGuildCommand(aid discord.ApplicationID, gid discord.GuildID) Route {
	return Route{http.MethodPost, "/applications/" + aid.String() + "/guilds/" + gid.String() + "/commands", bucketKey{kindApplicationGuildCommands, uint64(gid)}}
}

func routeBulkSetGuildCommands(aid discord.ApplicationID, gid discord.GuildID) Route {
	return Route{http.MethodPut, "/applications/" + aid.String() + "/guilds/" + gid.String() + "/commands", bucketKey{kindApplicationGuildCommands, uint64(gid)}}
}

func routeGuildCommand(aid discord.ApplicationID, gid discord.GuildID, cmd discord.CommandID) Route {
	return Route{http.MethodGet, "/applications/" + aid.String() + "/guilds/" + gid.String() + "/commands/" + cmd.String(), bucketKey{kindApplicationGuildCommand, uint64(gid)}}
}

func routeEditGuildCommand(aid discord.ApplicationID, gid discord.GuildID, cmd discord.CommandID) Route {
	return Route{http.MethodPatch, "/applications/" + aid.String() + "/guilds/" + gid.String() + "/commands/" + cmd.String(), bucketKey{kindApplicationGuildCommand, uint64(gid)}}
}

func routeDeleteGuildCommand(aid discord.ApplicationID, gid discord.GuildID, cmd discord.CommandID) Route {
	return Route{http.MethodDelete, "/applications/" + aid.String() + "/guilds/" + gid.String() + "/commands/" + cmd.String(), bucketKey{kindApplicationGuildCommand, uint64(gid)}}
}

// Interaction routes. The callback is keyed by interaction id; the
// response and followup routes share the webhook path shape but are
// keyed separately because their id is the application id, not a
// webhook id.

func routeInteractionCallback(iid discord.InteractionID, token string) Route {
	return Route{http.MethodPost, "/interactions/" + iid.String() + "/" + token + "/callback", bucketKey{kindInteractionCallback, uint64(iid)}}
}

func routeOriginalInteractionResponse(aid discord.ApplicationID, token string) Route {
	return Route{http.MethodGet, "/webhooks/" + aid.String() + "/" + token + "/messages/@original", bucketKey{kindInteractionOriginal, uint64(aid)}}
}

func routeEditOriginalInteractionResponse(aid discord.ApplicationID, token string) Route {
	return Route{http.MethodPatch, "/webhooks/" + aid.String() + "/" + token + "/messages/@original", bucketKey{kindInteractionOriginal, uint64(aid)}}
}

func routeDeleteOriginalInteractionResponse(aid discord.ApplicationID, token string) Route {
	return Route{http.MethodDelete, "/webhooks/" + aid.String() + "/" + token + "/messages/@original", bucketKey{kindInteractionOriginal, uint64(aid)}}
}

func routeCreateFollowupMessage(aid discord.ApplicationID, token string) Route {
	return Route{http.MethodPost, "/webhooks/" + aid.String() + "/" + token, bucketKey{kindInteractionFollowup, uint64(aid)}}
}
