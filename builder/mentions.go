package builder

import "github.com/cordialhq/cordial/discord"

// Mentions accumulates an allowed-mentions policy. The zero policy
// suppresses every ping, so a fresh builder is the quiet default and
// each method opens one class back up.
//
// The platform rejects a payload that names a class in parse and also
// carries an explicit list for it; use either Users or AllUsers, not
// both, and likewise for roles.
type Mentions struct {
	allowed discord.AllowedMentions
}

// NewMentions starts a policy that suppresses all mentions.
func NewMentions() *Mentions {
	return &Mentions{allowed: discord.AllowedMentions{Parse: []discord.MentionType{}}}
}

// Everyone allows @everyone and @here to ping.
func (m *Mentions) Everyone() *Mentions {
	m.allowed.Parse = append(m.allowed.Parse, discord.MentionTypeEveryone)
	return m
}

// AllUsers allows every user mention in the content to ping.
func (m *Mentions) AllUsers() *Mentions {
	m.allowed.Parse = append(m.allowed.Parse, discord.MentionTypeUsers)
	return m
}

// AllRoles allows every role mention in the content to ping.
func (m *Mentions) AllRoles() *Mentions {
	m.allowed.Parse = append(m.allowed.Parse, discord.MentionTypeRoles)
	return m
}

// Users allows only the listed users to ping.
func (m *Mentions) Users(ids ...discord.UserID) *Mentions {
	m.allowed.Users = append(m.allowed.Users, ids...)
	return m
}

// Roles allows only the listed roles to ping.
func (m *Mentions) Roles(ids ...discord.RoleID) *Mentions {
	m.allowed.Roles = append(m.allowed.Roles, ids...)
	return m
}

// RepliedUser pings the author of the message being replied to.
func (m *Mentions) RepliedUser() *Mentions {
	m.allowed.RepliedUser = true
	return m
}

// Build returns the accumulated policy.
func (m *Mentions) Build() discord.AllowedMentions {
	return m.allowed
}

// NoMentions is the policy that suppresses every ping in the content.
func NoMentions() discord.AllowedMentions {
	return discord.AllowedMentions{Parse: []discord.MentionType{}}
}
