package discord

import "time"

// MessageType discriminates system messages from user content.
type MessageType int

const (
	MessageTypeDefault              MessageType = 0
	MessageTypeRecipientAdd         MessageType = 1
	MessageTypeRecipientRemove      MessageType = 2
	MessageTypeChannelPinnedMessage MessageType = 6
	MessageTypeUserJoin             MessageType = 7
	MessageTypeReply                MessageType = 19
	MessageTypeChatInputCommand     MessageType = 20
	MessageTypeThreadStarterMessage MessageType = 21
	MessageTypeContextMenuCommand   MessageType = 23
)

// Message flag bits.
const (
	MessageFlagCrossposted           = 1 << 0
	MessageFlagSuppressEmbeds        = 1 << 2
	MessageFlagEphemeral             = 1 << 6
	MessageFlagLoading               = 1 << 7
	MessageFlagSuppressNotifications = 1 << 12
)

// Message is a chat message in any channel.
type Message struct {
	ID                MessageID         `json:"id"`
	ChannelID         ChannelID         `json:"channel_id"`
	GuildID           GuildID           `json:"guild_id,omitempty"`
	Author            User              `json:"author"`
	Member            *Member           `json:"member,omitempty"`
	Content           string            `json:"content"`
	Timestamp         time.Time         `json:"timestamp"`
	EditedTimestamp   *time.Time        `json:"edited_timestamp,omitempty"`
	TTS               bool              `json:"tts"`
	MentionEveryone   bool              `json:"mention_everyone"`
	Mentions          []User            `json:"mentions,omitempty"`
	MentionRoles      []RoleID          `json:"mention_roles,omitempty"`
	Attachments       []Attachment      `json:"attachments,omitempty"`
	Embeds            []Embed           `json:"embeds,omitempty"`
	Reactions         []Reaction        `json:"reactions,omitempty"`
	Nonce             string            `json:"nonce,omitempty"`
	Pinned            bool              `json:"pinned"`
	WebhookID         WebhookID         `json:"webhook_id,omitempty"`
	Type              MessageType       `json:"type"`
	ApplicationID     ApplicationID     `json:"application_id,omitempty"`
	MessageReference  *MessageReference `json:"message_reference,omitempty"`
	Flags             int               `json:"flags,omitempty"`
	ReferencedMessage *Message          `json:"referenced_message,omitempty"`
	Thread            *Channel          `json:"thread,omitempty"`
}

// Link returns the canonical jump URL for the message.
func (m *Message) Link() string {
	guild := "@me"
	if !m.GuildID.IsZero() {
		guild = m.GuildID.String()
	}
	return "https://discord.com/channels/" + guild + "/" + m.ChannelID.String() + "/" + m.ID.String()
}

// MessageReference points a reply or crosspost at its source message.
type MessageReference struct {
	MessageID       MessageID `json:"message_id,omitempty"`
	ChannelID       ChannelID `json:"channel_id,omitempty"`
	GuildID         GuildID   `json:"guild_id,omitempty"`
	FailIfNotExists *bool     `json:"fail_if_not_exists,omitempty"`
}

// Attachment is an uploaded file on a message.
type Attachment struct {
	ID          AttachmentID `json:"id"`
	Filename    string       `json:"filename"`
	Description string       `json:"description,omitempty"`
	ContentType string       `json:"content_type,omitempty"`
	Size        int          `json:"size"`
	URL         string       `json:"url"`
	ProxyURL    string       `json:"proxy_url"`
	Height      int          `json:"height,omitempty"`
	Width       int          `json:"width,omitempty"`
	Ephemeral   bool         `json:"ephemeral,omitempty"`
	DurationSec float64      `json:"duration_secs,omitempty"`
}

// Reaction aggregates one emoji's reactions on a message.
type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"`
	Emoji Emoji `json:"emoji"`
}

// AllowedMentions restricts which mentions in message content actually
// ping. An empty Parse list with no ids suppresses all pings.
type AllowedMentions struct {
	Parse       []MentionType `json:"parse"`
	Roles       []RoleID      `json:"roles,omitempty"`
	Users       []UserID      `json:"users,omitempty"`
	RepliedUser bool          `json:"replied_user,omitempty"`
}

// MentionType names a mention class for AllowedMentions.Parse.
type MentionType string

const (
	MentionTypeRoles    MentionType = "roles"
	MentionTypeUsers    MentionType = "users"
	MentionTypeEveryone MentionType = "everyone"
)
