package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cordialhq/cordial/discord"
)

// Config represents the complete application configuration, merged from
// the user config file, environment variables (CORDIAL_ prefix), and
// built-in defaults.
type Config struct {
	// Token is the bot token. The Bot prefix is optional; both the REST
	// client and the gateway normalize it.
	Token string `mapstructure:"token"`

	// ApplicationID is required for application command management. When
	// empty it is resolved from /oauth2/applications/@me on demand.
	ApplicationID string `mapstructure:"application_id"`

	// PublicKey is the hex-encoded ed25519 key used to verify incoming
	// interaction webhooks. Only the serve command needs it.
	PublicKey string `mapstructure:"public_key"`

	Gateway GatewayConfig `mapstructure:"gateway"`
	Rest    RestConfig    `mapstructure:"rest"`
	Serve   ServeConfig   `mapstructure:"serve"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GatewayConfig contains realtime connection configuration.
type GatewayConfig struct {
	// URL overrides the websocket endpoint. Empty uses the endpoint
	// advertised by the API.
	URL string `mapstructure:"url"`

	// Intents lists the event families to subscribe to by name, or
	// "default" for the usual non-privileged set.
	Intents []string `mapstructure:"intents"`

	// EventBufferSize bounds the in-flight dispatch queue.
	EventBufferSize int `mapstructure:"event_buffer_size"`
}

// RestConfig contains HTTP client configuration.
type RestConfig struct {
	// BaseURL overrides the API base, for routing through a proxy.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `mapstructure:"timeout"`

	// RetryCap bounds consecutive rate limit retries per call.
	RetryCap int `mapstructure:"retry_cap"`
}

// ServeConfig contains the interaction webhook server configuration.
type ServeConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Path            string        `mapstructure:"path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format selects the output encoding
	// Valid values: console, json
	Format string `mapstructure:"format"`
}

// intentNames maps config-file intent names to gateway intent bits.
var intentNames = map[string]int{
	"guilds":                    discord.IntentGuilds,
	"guild_members":             discord.IntentGuildMembers,
	"guild_moderation":          discord.IntentGuildModeration,
	"guild_emojis_and_stickers": discord.IntentGuildEmojisAndStickers,
	"guild_webhooks":            discord.IntentGuildWebhooks,
	"guild_invites":             discord.IntentGuildInvites,
	"guild_presences":           discord.IntentGuildPresences,
	"guild_messages":            discord.IntentGuildMessages,
	"guild_message_reactions":   discord.IntentGuildMessageReactions,
	"guild_message_typing":      discord.IntentGuildMessageTyping,
	"direct_messages":           discord.IntentDirectMessages,
	"message_content":           discord.IntentMessageContent,
	"default":                   discord.IntentsDefault,
}

// IntentBits resolves the configured intent names into the bitmask sent
// in the gateway identify payload. An empty list means the default set.
func (g GatewayConfig) IntentBits() (int, error) {
	if len(g.Intents) == 0 {
		return discord.IntentsDefault, nil
	}

	bits := 0
	for _, name := range g.Intents {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		bit, ok := intentNames[key]
		if !ok {
			return 0, fmt.Errorf("unknown gateway intent: %s", name)
		}
		bits |= bit
	}
	if bits == 0 {
		return discord.IntentsDefault, nil
	}
	return bits, nil
}
