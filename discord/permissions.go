package discord

import "strconv"

// Permissions is a bit set of guild or channel permissions. The API
// serializes the set as a decimal string.
type Permissions uint64

// Permission bits used throughout the library. The full set lives in
// the platform docs; only the commonly checked bits get names here.
const (
	PermissionCreateInstantInvite Permissions = 1 << 0
	PermissionKickMembers         Permissions = 1 << 1
	PermissionBanMembers          Permissions = 1 << 2
	PermissionAdministrator       Permissions = 1 << 3
	PermissionManageChannels      Permissions = 1 << 4
	PermissionManageGuild         Permissions = 1 << 5
	PermissionAddReactions        Permissions = 1 << 6
	PermissionViewAuditLog        Permissions = 1 << 7
	PermissionViewChannel         Permissions = 1 << 10
	PermissionSendMessages        Permissions = 1 << 11
	PermissionManageMessages      Permissions = 1 << 13
	PermissionEmbedLinks          Permissions = 1 << 14
	PermissionAttachFiles         Permissions = 1 << 15
	PermissionReadMessageHistory  Permissions = 1 << 16
	PermissionMentionEveryone     Permissions = 1 << 17
	PermissionUseExternalEmojis   Permissions = 1 << 18
	PermissionConnect             Permissions = 1 << 20
	PermissionSpeak               Permissions = 1 << 21
	PermissionMuteMembers         Permissions = 1 << 22
	PermissionDeafenMembers       Permissions = 1 << 23
	PermissionMoveMembers         Permissions = 1 << 24
	PermissionManageRoles         Permissions = 1 << 28
	PermissionManageWebhooks      Permissions = 1 << 29
	PermissionManageThreads       Permissions = 1 << 34
	PermissionModerateMembers     Permissions = 1 << 40
)

// Has reports whether every bit in want is set, or the administrator
// bit overrides it.
func (p Permissions) Has(want Permissions) bool {
	if p&PermissionAdministrator != 0 {
		return true
	}
	return p&want == want
}

func (p Permissions) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// MarshalJSON encodes the bit set as a quoted decimal string.
func (p Permissions) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts quoted or bare decimal forms.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		*p = 0
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" {
		*p = 0
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return err
	}
	*p = Permissions(parsed)
	return nil
}
