// Package discord defines the data types exchanged with the Discord API.
//
// Types mirror the wire representation of the v10 HTTP and gateway APIs:
// snowflake ids travel as decimal strings, timestamps as ISO 8601, and
// optional fields carry omitempty so partial updates stay partial.
package discord

import (
	"strconv"
	"time"
)

// Epoch is the platform epoch: the first second of 2015, in Unix
// milliseconds. Snowflake timestamps count from here.
const Epoch = 1420070400000

// Snowflake is a unique platform id. The API serializes snowflakes as
// decimal strings to survive JSON number precision limits.
type Snowflake uint64

// String returns the canonical decimal form.
func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// IsZero reports whether the id is unset.
func (s Snowflake) IsZero() bool {
	return s == 0
}

// Time returns the creation time embedded in the snowflake.
func (s Snowflake) Time() time.Time {
	ms := int64(s>>22) + Epoch
	return time.UnixMilli(ms).UTC()
}

// MarshalJSON encodes the id as a quoted decimal string.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal forms; the API
// documents strings but some gateway payloads send raw numbers.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		*s = 0
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" {
		*s = 0
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return err
	}
	*s = Snowflake(parsed)
	return nil
}

// ParseSnowflake parses a decimal id string.
func ParseSnowflake(raw string) (Snowflake, error) {
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return Snowflake(parsed), nil
}

// Typed id aliases. Routes and models use these so a guild id cannot be
// passed where a channel id belongs.
type (
	ApplicationID Snowflake
	AttachmentID  Snowflake
	ChannelID     Snowflake
	CommandID     Snowflake
	EmojiID       Snowflake
	GuildID       Snowflake
	InteractionID Snowflake
	MessageID     Snowflake
	RoleID        Snowflake
	UserID        Snowflake
	WebhookID     Snowflake
)

func (id ApplicationID) String() string { return Snowflake(id).String() }
func (id AttachmentID) String() string  { return Snowflake(id).String() }
func (id ChannelID) String() string     { return Snowflake(id).String() }
func (id CommandID) String() string     { return Snowflake(id).String() }
func (id EmojiID) String() string       { return Snowflake(id).String() }
func (id GuildID) String() string       { return Snowflake(id).String() }
func (id InteractionID) String() string { return Snowflake(id).String() }
func (id MessageID) String() string     { return Snowflake(id).String() }
func (id RoleID) String() string        { return Snowflake(id).String() }
func (id UserID) String() string        { return Snowflake(id).String() }
func (id WebhookID) String() string     { return Snowflake(id).String() }

func (id ApplicationID) IsZero() bool { return id == 0 }
func (id ChannelID) IsZero() bool     { return id == 0 }
func (id GuildID) IsZero() bool       { return id == 0 }
func (id MessageID) IsZero() bool     { return id == 0 }
func (id UserID) IsZero() bool        { return id == 0 }
func (id WebhookID) IsZero() bool     { return id == 0 }

func (id ApplicationID) MarshalJSON() ([]byte, error) { return Snowflake(id).MarshalJSON() }
func (id AttachmentID) MarshalJSON() ([]byte, error)  { return Snowflake(id).MarshalJSON() }
func (id ChannelID) MarshalJSON() ([]byte, error)     { return Snowflake(id).MarshalJSON() }
func (id CommandID) MarshalJSON() ([]byte, error)     { return Snowflake(id).MarshalJSON() }
func (id EmojiID) MarshalJSON() ([]byte, error)       { return Snowflake(id).MarshalJSON() }
func (id GuildID) MarshalJSON() ([]byte, error)       { return Snowflake(id).MarshalJSON() }
func (id InteractionID) MarshalJSON() ([]byte, error) { return Snowflake(id).MarshalJSON() }
func (id MessageID) MarshalJSON() ([]byte, error)     { return Snowflake(id).MarshalJSON() }
func (id RoleID) MarshalJSON() ([]byte, error)        { return Snowflake(id).MarshalJSON() }
func (id UserID) MarshalJSON() ([]byte, error)        { return Snowflake(id).MarshalJSON() }
func (id WebhookID) MarshalJSON() ([]byte, error)     { return Snowflake(id).MarshalJSON() }

func (id *ApplicationID) UnmarshalJSON(data []byte) error { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *AttachmentID) UnmarshalJSON(data []byte) error  { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *ChannelID) UnmarshalJSON(data []byte) error     { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *CommandID) UnmarshalJSON(data []byte) error     { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *EmojiID) UnmarshalJSON(data []byte) error       { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *GuildID) UnmarshalJSON(data []byte) error       { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *InteractionID) UnmarshalJSON(data []byte) error { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *MessageID) UnmarshalJSON(data []byte) error     { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *RoleID) UnmarshalJSON(data []byte) error        { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *UserID) UnmarshalJSON(data []byte) error        { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *WebhookID) UnmarshalJSON(data []byte) error     { return (*Snowflake)(id).UnmarshalJSON(data) }
