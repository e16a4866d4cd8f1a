package discord

import "net/url"

// Emoji is a unicode or custom guild emoji. Custom emojis carry an id;
// unicode emojis carry only the literal in Name.
type Emoji struct {
	ID            EmojiID  `json:"id,omitempty"`
	Name          string   `json:"name,omitempty"`
	Roles         []RoleID `json:"roles,omitempty"`
	User          *User    `json:"user,omitempty"`
	RequireColons bool     `json:"require_colons,omitempty"`
	Managed       bool     `json:"managed,omitempty"`
	Animated      bool     `json:"animated,omitempty"`
	Available     bool     `json:"available,omitempty"`
}

// IsCustom reports whether the emoji is a guild upload.
func (e *Emoji) IsCustom() bool {
	return Snowflake(e.ID) != 0
}

// APIName returns the reaction-endpoint form: the raw literal for
// unicode emojis, name:id for custom ones, percent-encoded for the
// path.
func (e *Emoji) APIName() string {
	if e.IsCustom() {
		return url.PathEscape(e.Name + ":" + e.ID.String())
	}
	return url.PathEscape(e.Name)
}
