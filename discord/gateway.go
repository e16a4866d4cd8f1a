package discord

// Gateway is the unauthenticated gateway endpoint response.
type Gateway struct {
	URL string `json:"url"`
}

// GatewayBot extends Gateway with shard and session quota advice for
// the authenticated bot.
type GatewayBot struct {
	URL               string            `json:"url"`
	Shards            int               `json:"shards"`
	SessionStartLimit SessionStartLimit `json:"session_start_limit"`
}

// SessionStartLimit reports how many gateway identifies remain in the
// current window.
type SessionStartLimit struct {
	Total          int `json:"total"`
	Remaining      int `json:"remaining"`
	ResetAfter     int `json:"reset_after"`
	MaxConcurrency int `json:"max_concurrency"`
}

// OnlineStatus is the presence state shown next to a user.
type OnlineStatus string

const (
	StatusOnline       OnlineStatus = "online"
	StatusDoNotDisturb OnlineStatus = "dnd"
	StatusIdle         OnlineStatus = "idle"
	StatusInvisible    OnlineStatus = "invisible"
	StatusOffline      OnlineStatus = "offline"
)

// ActivityType selects how an activity renders ("Playing x",
// "Listening to x" and so on).
type ActivityType int

const (
	ActivityTypePlaying   ActivityType = 0
	ActivityTypeStreaming ActivityType = 1
	ActivityTypeListening ActivityType = 2
	ActivityTypeWatching  ActivityType = 3
	ActivityTypeCustom    ActivityType = 4
	ActivityTypeCompeting ActivityType = 5
)

// Activity is one entry of a presence's activity list.
type Activity struct {
	Name  string       `json:"name"`
	Type  ActivityType `json:"type"`
	URL   string       `json:"url,omitempty"`
	State string       `json:"state,omitempty"`
}

// Gateway intent bits; passed in the identify payload to select which
// event families the session receives.
const (
	IntentGuilds                 = 1 << 0
	IntentGuildMembers           = 1 << 1
	IntentGuildModeration        = 1 << 2
	IntentGuildEmojisAndStickers = 1 << 3
	IntentGuildWebhooks          = 1 << 5
	IntentGuildInvites           = 1 << 6
	IntentGuildPresences         = 1 << 8
	IntentGuildMessages          = 1 << 9
	IntentGuildMessageReactions  = 1 << 10
	IntentGuildMessageTyping     = 1 << 11
	IntentDirectMessages         = 1 << 12
	IntentMessageContent         = 1 << 15

	// IntentsDefault covers the non-privileged event families a chat
	// bot typically needs.
	IntentsDefault = IntentGuilds | IntentGuildMessages | IntentDirectMessages
)
