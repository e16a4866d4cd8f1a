package discord

import "time"

// ChannelType discriminates the channel union.
type ChannelType int

const (
	ChannelTypeGuildText          ChannelType = 0
	ChannelTypeDM                 ChannelType = 1
	ChannelTypeGuildVoice         ChannelType = 2
	ChannelTypeGroupDM            ChannelType = 3
	ChannelTypeGuildCategory      ChannelType = 4
	ChannelTypeGuildAnnouncement  ChannelType = 5
	ChannelTypeAnnouncementThread ChannelType = 10
	ChannelTypePublicThread       ChannelType = 11
	ChannelTypePrivateThread      ChannelType = 12
	ChannelTypeGuildStageVoice    ChannelType = 13
	ChannelTypeGuildForum         ChannelType = 15
)

// Channel is any channel shape the API returns; fields irrelevant to a
// given type stay zero.
type Channel struct {
	ID                   ChannelID             `json:"id"`
	Type                 ChannelType           `json:"type"`
	GuildID              GuildID               `json:"guild_id,omitempty"`
	Position             int                   `json:"position,omitempty"`
	PermissionOverwrites []PermissionOverwrite `json:"permission_overwrites,omitempty"`
	Name                 string                `json:"name,omitempty"`
	Topic                string                `json:"topic,omitempty"`
	NSFW                 bool                  `json:"nsfw,omitempty"`
	LastMessageID        MessageID             `json:"last_message_id,omitempty"`
	Bitrate              int                   `json:"bitrate,omitempty"`
	UserLimit            int                   `json:"user_limit,omitempty"`
	RateLimitPerUser     int                   `json:"rate_limit_per_user,omitempty"`
	Recipients           []User                `json:"recipients,omitempty"`
	Icon                 string                `json:"icon,omitempty"`
	OwnerID              UserID                `json:"owner_id,omitempty"`
	ApplicationID        ApplicationID         `json:"application_id,omitempty"`
	ParentID             ChannelID             `json:"parent_id,omitempty"`
	LastPinTimestamp     *time.Time            `json:"last_pin_timestamp,omitempty"`
	RTCRegion            string                `json:"rtc_region,omitempty"`
	MessageCount         int                   `json:"message_count,omitempty"`
	MemberCount          int                   `json:"member_count,omitempty"`
	ThreadMetadata       *ThreadMetadata       `json:"thread_metadata,omitempty"`
	DefaultAutoArchive   int                   `json:"default_auto_archive_duration,omitempty"`
	Permissions          Permissions           `json:"permissions,omitempty"`
	Flags                int                   `json:"flags,omitempty"`
}

// IsThread reports whether the channel is any thread variant.
func (c *Channel) IsThread() bool {
	switch c.Type {
	case ChannelTypeAnnouncementThread, ChannelTypePublicThread, ChannelTypePrivateThread:
		return true
	}
	return false
}

// Mention returns the chat mention form for the channel.
func (c *Channel) Mention() string {
	return "<#" + c.ID.String() + ">"
}

// PermissionOverwrite grants or denies permission bits to one role or
// member within a channel.
type PermissionOverwrite struct {
	ID    Snowflake               `json:"id"`
	Type  PermissionOverwriteType `json:"type"`
	Allow Permissions             `json:"allow"`
	Deny  Permissions             `json:"deny"`
}

// PermissionOverwriteType distinguishes role from member overwrites.
type PermissionOverwriteType int

const (
	PermissionOverwriteRole   PermissionOverwriteType = 0
	PermissionOverwriteMember PermissionOverwriteType = 1
)

// ThreadMetadata carries the thread-only channel fields.
type ThreadMetadata struct {
	Archived            bool       `json:"archived"`
	AutoArchiveDuration int        `json:"auto_archive_duration"`
	ArchiveTimestamp    time.Time  `json:"archive_timestamp"`
	Locked              bool       `json:"locked"`
	Invitable           bool       `json:"invitable,omitempty"`
	CreateTimestamp     *time.Time `json:"create_timestamp,omitempty"`
}

// ThreadMember records one user's membership in a thread.
type ThreadMember struct {
	ThreadID      ChannelID `json:"id,omitempty"`
	UserID        UserID    `json:"user_id,omitempty"`
	JoinTimestamp time.Time `json:"join_timestamp"`
	Flags         int       `json:"flags"`
}

// ThreadList is the paginated shape of the archived-thread endpoints.
type ThreadList struct {
	Threads []Channel      `json:"threads"`
	Members []ThreadMember `json:"members"`
	HasMore bool           `json:"has_more"`
}
