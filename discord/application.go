package discord

import "encoding/json"

// Application describes the bot's parent application.
type Application struct {
	ID          ApplicationID `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon,omitempty"`
	Description string        `json:"description,omitempty"`
	BotPublic   bool          `json:"bot_public"`
	Owner       *User         `json:"owner,omitempty"`
	Flags       int           `json:"flags,omitempty"`
}

// CommandType discriminates slash commands from context-menu commands.
type CommandType int

const (
	CommandTypeChatInput CommandType = 1
	CommandTypeUser      CommandType = 2
	CommandTypeMessage   CommandType = 3
)

// CommandOptionType enumerates slash-command option kinds.
type CommandOptionType int

const (
	CommandOptionSubCommand      CommandOptionType = 1
	CommandOptionSubCommandGroup CommandOptionType = 2
	CommandOptionString          CommandOptionType = 3
	CommandOptionInteger         CommandOptionType = 4
	CommandOptionBoolean         CommandOptionType = 5
	CommandOptionUser            CommandOptionType = 6
	CommandOptionChannel         CommandOptionType = 7
	CommandOptionRole            CommandOptionType = 8
	CommandOptionMentionable     CommandOptionType = 9
	CommandOptionNumber          CommandOptionType = 10
	CommandOptionAttachment      CommandOptionType = 11
)

// Command is a registered application command.
type Command struct {
	ID                       CommandID       `json:"id,omitempty"`
	Type                     CommandType     `json:"type,omitempty"`
	ApplicationID            ApplicationID   `json:"application_id,omitempty"`
	GuildID                  GuildID         `json:"guild_id,omitempty"`
	Name                     string          `json:"name"`
	Description              string          `json:"description,omitempty"`
	Options                  []CommandOption `json:"options,omitempty"`
	DefaultMemberPermissions *Permissions    `json:"default_member_permissions,omitempty"`
	DMPermission             *bool           `json:"dm_permission,omitempty"`
	Version                  Snowflake       `json:"version,omitempty"`
}

// CommandOption is one parameter of a slash command.
type CommandOption struct {
	Type        CommandOptionType `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Required    bool              `json:"required,omitempty"`
	Choices     []CommandChoice   `json:"choices,omitempty"`
	Options     []CommandOption   `json:"options,omitempty"`
	MinValue    *float64          `json:"min_value,omitempty"`
	MaxValue    *float64          `json:"max_value,omitempty"`
}

// CommandChoice is one fixed value a command option may take.
type CommandChoice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// InteractionType discriminates the interaction union.
type InteractionType int

const (
	InteractionTypePing               InteractionType = 1
	InteractionTypeApplicationCommand InteractionType = 2
	InteractionTypeMessageComponent   InteractionType = 3
	InteractionTypeAutocomplete       InteractionType = 4
	InteractionTypeModalSubmit        InteractionType = 5
)

// Interaction is an incoming command invocation or component event.
type Interaction struct {
	ID            InteractionID    `json:"id"`
	ApplicationID ApplicationID    `json:"application_id"`
	Type          InteractionType  `json:"type"`
	Data          *InteractionData `json:"data,omitempty"`
	GuildID       GuildID          `json:"guild_id,omitempty"`
	ChannelID     ChannelID        `json:"channel_id,omitempty"`
	Member        *Member          `json:"member,omitempty"`
	User          *User            `json:"user,omitempty"`
	Token         string           `json:"token"`
	Version       int              `json:"version"`
	Message       *Message         `json:"message,omitempty"`
	Locale        string           `json:"locale,omitempty"`
}

// Sender returns the invoking user for both guild and DM interactions.
func (i *Interaction) Sender() *User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionData carries the type-specific payload of an interaction.
type InteractionData struct {
	ID            CommandID           `json:"id,omitempty"`
	Name          string              `json:"name,omitempty"`
	Type          CommandType         `json:"type,omitempty"`
	Options       []InteractionOption `json:"options,omitempty"`
	CustomID      string              `json:"custom_id,omitempty"`
	ComponentType int                 `json:"component_type,omitempty"`
	Values        []string            `json:"values,omitempty"`
	TargetID      Snowflake           `json:"target_id,omitempty"`
}

// InteractionOption is one supplied argument of a command invocation.
type InteractionOption struct {
	Name    string              `json:"name"`
	Type    CommandOptionType   `json:"type"`
	Value   json.RawMessage     `json:"value,omitempty"`
	Options []InteractionOption `json:"options,omitempty"`
	Focused bool                `json:"focused,omitempty"`
}

// StringValue decodes the option value as a string, empty on mismatch.
func (o *InteractionOption) StringValue() string {
	var s string
	if err := json.Unmarshal(o.Value, &s); err != nil {
		return ""
	}
	return s
}

// IntValue decodes the option value as an integer, zero on mismatch.
func (o *InteractionOption) IntValue() int64 {
	var n int64
	if err := json.Unmarshal(o.Value, &n); err != nil {
		return 0
	}
	return n
}

// InteractionResponseType enumerates the ways to answer an interaction.
type InteractionResponseType int

const (
	InteractionResponsePong                     InteractionResponseType = 1
	InteractionResponseChannelMessage           InteractionResponseType = 4
	InteractionResponseDeferredChannelMessage   InteractionResponseType = 5
	InteractionResponseDeferredUpdateMessage    InteractionResponseType = 6
	InteractionResponseUpdateMessage            InteractionResponseType = 7
	InteractionResponseAutocompleteResult       InteractionResponseType = 8
	InteractionResponseModal                    InteractionResponseType = 9
)

// InteractionResponse is the immediate answer to an interaction.
type InteractionResponse struct {
	Type InteractionResponseType  `json:"type"`
	Data *InteractionResponseData `json:"data,omitempty"`
}

// InteractionResponseData is the message payload of a response.
type InteractionResponseData struct {
	TTS             bool             `json:"tts,omitempty"`
	Content         string           `json:"content,omitempty"`
	Embeds          []Embed          `json:"embeds,omitempty"`
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	Flags           int              `json:"flags,omitempty"`
	Choices         []CommandChoice  `json:"choices,omitempty"`
}
