package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/cordialhq/cordial/discord"
)

// Event is a dispatched gateway event. Concrete types cover the event
// families the session decodes; anything else surfaces as a RawEvent.
type Event interface {
	// EventType returns the dispatch name, e.g. "MESSAGE_CREATE".
	EventType() string
}

// ReadyEvent opens every fresh session. It carries the identity the
// token resolved to and the handle needed to resume later.
type ReadyEvent struct {
	Version          int                        `json:"v"`
	User             discord.User               `json:"user"`
	Guilds           []discord.UnavailableGuild `json:"guilds"`
	SessionID        string                     `json:"session_id"`
	ResumeGatewayURL string                     `json:"resume_gateway_url"`
	Shard            *[2]int                    `json:"shard,omitempty"`
	Application      struct {
		ID    discord.ApplicationID `json:"id"`
		Flags int                   `json:"flags"`
	} `json:"application"`
}

func (*ReadyEvent) EventType() string { return "READY" }

// ResumedEvent confirms a resume; missed dispatches replay before it.
type ResumedEvent struct{}

func (*ResumedEvent) EventType() string { return "RESUMED" }

// MessageCreateEvent is a newly posted message.
type MessageCreateEvent struct {
	discord.Message
}

func (*MessageCreateEvent) EventType() string { return "MESSAGE_CREATE" }

// MessageUpdateEvent is an edited message. Only changed fields are
// guaranteed to be populated.
type MessageUpdateEvent struct {
	discord.Message
}

func (*MessageUpdateEvent) EventType() string { return "MESSAGE_UPDATE" }

// MessageDeleteEvent identifies a removed message; the content is gone.
type MessageDeleteEvent struct {
	ID        discord.MessageID `json:"id"`
	ChannelID discord.ChannelID `json:"channel_id"`
	GuildID   discord.GuildID   `json:"guild_id,omitempty"`
}

func (*MessageDeleteEvent) EventType() string { return "MESSAGE_DELETE" }

// GuildCreateEvent arrives for each guild during startup and whenever
// the bot joins or a guild comes back online.
type GuildCreateEvent struct {
	discord.Guild
	Unavailable bool              `json:"unavailable"`
	MemberCount int               `json:"member_count,omitempty"`
	Channels    []discord.Channel `json:"channels,omitempty"`
}

func (*GuildCreateEvent) EventType() string { return "GUILD_CREATE" }

// GuildDeleteEvent marks a guild as gone. Unavailable set means an
// outage rather than a removal.
type GuildDeleteEvent struct {
	discord.UnavailableGuild
}

func (*GuildDeleteEvent) EventType() string { return "GUILD_DELETE" }

// InteractionCreateEvent is a slash command, component or modal
// submission awaiting a response.
type InteractionCreateEvent struct {
	discord.Interaction
}

func (*InteractionCreateEvent) EventType() string { return "INTERACTION_CREATE" }

// RawEvent carries any dispatch the session has no concrete type for.
type RawEvent struct {
	Type string
	Data json.RawMessage
}

func (e *RawEvent) EventType() string { return e.Type }

// parseEvent decodes a dispatch payload into its concrete event type.
func parseEvent(name string, data json.RawMessage) (Event, error) {
	var ev Event
	switch name {
	case "READY":
		ev = &ReadyEvent{}
	case "RESUMED":
		return &ResumedEvent{}, nil
	case "MESSAGE_CREATE":
		ev = &MessageCreateEvent{}
	case "MESSAGE_UPDATE":
		ev = &MessageUpdateEvent{}
	case "MESSAGE_DELETE":
		ev = &MessageDeleteEvent{}
	case "GUILD_CREATE":
		ev = &GuildCreateEvent{}
	case "GUILD_DELETE":
		ev = &GuildDeleteEvent{}
	case "INTERACTION_CREATE":
		ev = &InteractionCreateEvent{}
	default:
		return &RawEvent{Type: name, Data: data}, nil
	}
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return ev, nil
}
