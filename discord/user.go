package discord

// User is a platform account, bot or human.
type User struct {
	ID            UserID  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator,omitempty"`
	GlobalName    string  `json:"global_name,omitempty"`
	Avatar        string  `json:"avatar,omitempty"`
	Bot           bool    `json:"bot,omitempty"`
	System        bool    `json:"system,omitempty"`
	MFAEnabled    bool    `json:"mfa_enabled,omitempty"`
	Banner        string  `json:"banner,omitempty"`
	AccentColor   int     `json:"accent_color,omitempty"`
	Locale        string  `json:"locale,omitempty"`
	Verified      bool    `json:"verified,omitempty"`
	Email         string  `json:"email,omitempty"`
	Flags         int     `json:"flags,omitempty"`
	PremiumType   int     `json:"premium_type,omitempty"`
	PublicFlags   int     `json:"public_flags,omitempty"`
}

// Tag returns the legacy username#discriminator form, or the plain
// username for accounts migrated off discriminators.
func (u *User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// DisplayName returns the global display name when set, falling back to
// the username.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// CurrentUserPatch is the body for modifying the authenticated user.
type CurrentUserPatch struct {
	Username *string `json:"username,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Banner   *string `json:"banner,omitempty"`
}

// Connection is a linked third-party account on a user profile.
type Connection struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Revoked      bool   `json:"revoked,omitempty"`
	Verified     bool   `json:"verified"`
	ShowActivity bool   `json:"show_activity"`
}
