package discord

import "time"

// Guild is a community space holding channels, roles and members.
type Guild struct {
	ID                          GuildID       `json:"id"`
	Name                        string        `json:"name"`
	Icon                        string        `json:"icon,omitempty"`
	Splash                      string        `json:"splash,omitempty"`
	DiscoverySplash             string        `json:"discovery_splash,omitempty"`
	Owner                       bool          `json:"owner,omitempty"`
	OwnerID                     UserID        `json:"owner_id,omitempty"`
	Permissions                 Permissions   `json:"permissions,omitempty"`
	AFKChannelID                ChannelID     `json:"afk_channel_id,omitempty"`
	AFKTimeout                  int           `json:"afk_timeout,omitempty"`
	WidgetEnabled               bool          `json:"widget_enabled,omitempty"`
	WidgetChannelID             ChannelID     `json:"widget_channel_id,omitempty"`
	VerificationLevel           int           `json:"verification_level"`
	DefaultMessageNotifications int           `json:"default_message_notifications"`
	ExplicitContentFilter       int           `json:"explicit_content_filter"`
	Roles                       []Role        `json:"roles,omitempty"`
	Emojis                      []Emoji       `json:"emojis,omitempty"`
	Features                    []string      `json:"features,omitempty"`
	MFALevel                    int           `json:"mfa_level"`
	ApplicationID               ApplicationID `json:"application_id,omitempty"`
	SystemChannelID             ChannelID     `json:"system_channel_id,omitempty"`
	SystemChannelFlags          int           `json:"system_channel_flags,omitempty"`
	RulesChannelID              ChannelID     `json:"rules_channel_id,omitempty"`
	MaxMembers                  int           `json:"max_members,omitempty"`
	VanityURLCode               string        `json:"vanity_url_code,omitempty"`
	Description                 string        `json:"description,omitempty"`
	Banner                      string        `json:"banner,omitempty"`
	PremiumTier                 int           `json:"premium_tier"`
	PremiumSubscriptionCount    int           `json:"premium_subscription_count,omitempty"`
	PreferredLocale             string        `json:"preferred_locale,omitempty"`
	PublicUpdatesChannelID      ChannelID     `json:"public_updates_channel_id,omitempty"`
	ApproximateMemberCount      int           `json:"approximate_member_count,omitempty"`
	ApproximatePresenceCount    int           `json:"approximate_presence_count,omitempty"`
	NSFWLevel                   int           `json:"nsfw_level"`
}

// UnavailableGuild is the stub the gateway sends before a guild's full
// payload arrives, or when a guild goes offline.
type UnavailableGuild struct {
	ID          GuildID `json:"id"`
	Unavailable bool    `json:"unavailable"`
}

// PartialGuild is the trimmed guild shape returned by list endpoints.
type PartialGuild struct {
	ID          GuildID     `json:"id"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon,omitempty"`
	Owner       bool        `json:"owner,omitempty"`
	Permissions Permissions `json:"permissions,omitempty"`
	Features    []string    `json:"features,omitempty"`
}

// GuildPreview is the public preview of a discoverable guild.
type GuildPreview struct {
	ID                       GuildID  `json:"id"`
	Name                     string   `json:"name"`
	Icon                     string   `json:"icon,omitempty"`
	Splash                   string   `json:"splash,omitempty"`
	DiscoverySplash          string   `json:"discovery_splash,omitempty"`
	Emojis                   []Emoji  `json:"emojis,omitempty"`
	Features                 []string `json:"features,omitempty"`
	ApproximateMemberCount   int      `json:"approximate_member_count"`
	ApproximatePresenceCount int      `json:"approximate_presence_count"`
	Description              string   `json:"description,omitempty"`
}

// Member is a user's membership in one guild.
type Member struct {
	User                       *User       `json:"user,omitempty"`
	Nick                       string      `json:"nick,omitempty"`
	Avatar                     string      `json:"avatar,omitempty"`
	Roles                      []RoleID    `json:"roles"`
	JoinedAt                   time.Time   `json:"joined_at"`
	PremiumSince               *time.Time  `json:"premium_since,omitempty"`
	Deaf                       bool        `json:"deaf"`
	Mute                       bool        `json:"mute"`
	Flags                      int         `json:"flags,omitempty"`
	Pending                    bool        `json:"pending,omitempty"`
	Permissions                Permissions `json:"permissions,omitempty"`
	CommunicationDisabledUntil *time.Time  `json:"communication_disabled_until,omitempty"`
}

// DisplayName returns the nickname when set, then the user's display
// name.
func (m *Member) DisplayName() string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return m.User.DisplayName()
	}
	return ""
}

// Role grants a named permission set to members holding it.
type Role struct {
	ID           RoleID      `json:"id"`
	Name         string      `json:"name"`
	Color        int         `json:"color"`
	Hoist        bool        `json:"hoist"`
	Icon         string      `json:"icon,omitempty"`
	UnicodeEmoji string      `json:"unicode_emoji,omitempty"`
	Position     int         `json:"position"`
	Permissions  Permissions `json:"permissions"`
	Managed      bool        `json:"managed"`
	Mentionable  bool        `json:"mentionable"`
}

// Ban records a banned user and the stated reason.
type Ban struct {
	Reason string `json:"reason,omitempty"`
	User   User   `json:"user"`
}

// VoiceRegion describes a voice server region option.
type VoiceRegion struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Optimal    bool   `json:"optimal"`
	Deprecated bool   `json:"deprecated"`
	Custom     bool   `json:"custom"`
}

// PruneResult reports how many members a prune removed, or would.
type PruneResult struct {
	Pruned int `json:"pruned"`
}
