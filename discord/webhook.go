package discord

// WebhookType discriminates incoming webhooks from channel followers.
type WebhookType int

const (
	WebhookTypeIncoming        WebhookType = 1
	WebhookTypeChannelFollower WebhookType = 2
	WebhookTypeApplication     WebhookType = 3
)

// Webhook posts messages into a channel without a bot session. The
// Token field is present only when the caller may execute the hook.
type Webhook struct {
	ID            WebhookID     `json:"id"`
	Type          WebhookType   `json:"type"`
	GuildID       GuildID       `json:"guild_id,omitempty"`
	ChannelID     ChannelID     `json:"channel_id,omitempty"`
	User          *User         `json:"user,omitempty"`
	Name          string        `json:"name,omitempty"`
	Avatar        string        `json:"avatar,omitempty"`
	Token         string        `json:"token,omitempty"`
	ApplicationID ApplicationID `json:"application_id,omitempty"`
	URL           string        `json:"url,omitempty"`
}

// Invite is a code granting entry to a guild or group DM.
type Invite struct {
	Code                     string        `json:"code"`
	Guild                    *PartialGuild `json:"guild,omitempty"`
	Channel                  *Channel      `json:"channel,omitempty"`
	Inviter                  *User         `json:"inviter,omitempty"`
	TargetType               int           `json:"target_type,omitempty"`
	TargetUser               *User         `json:"target_user,omitempty"`
	ApproximatePresenceCount int           `json:"approximate_presence_count,omitempty"`
	ApproximateMemberCount   int           `json:"approximate_member_count,omitempty"`
	Uses                     int           `json:"uses,omitempty"`
	MaxUses                  int           `json:"max_uses,omitempty"`
	MaxAge                   int           `json:"max_age,omitempty"`
	Temporary                bool          `json:"temporary,omitempty"`
}
