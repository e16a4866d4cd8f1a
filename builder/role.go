package builder

import (
	"context"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/rest"
)

// Role accumulates role settings. The same builder serves creation and
// editing; fields never set are left to the platform default or kept
// unchanged.
type Role struct {
	params rest.RoleParams
}

// NewRole starts an empty role builder.
func NewRole() *Role {
	return &Role{}
}

// Name sets the role name.
func (r *Role) Name(name string) *Role {
	r.params.Name = &name
	return r
}

// Permissions sets the role's permission bits.
func (r *Role) Permissions(p discord.Permissions) *Role {
	r.params.Permissions = &p
	return r
}

// Color sets the role color as a packed RGB integer. Zero means no
// color.
func (r *Role) Color(rgb int) *Role {
	r.params.Color = &rgb
	return r
}

// Hoist displays the role's members separately in the sidebar.
func (r *Role) Hoist(hoist bool) *Role {
	r.params.Hoist = &hoist
	return r
}

// Mentionable lets anyone mention the role.
func (r *Role) Mentionable(mentionable bool) *Role {
	r.params.Mentionable = &mentionable
	return r
}

// Icon sets the role icon from a data URI, as produced by IconDataURI.
func (r *Role) Icon(dataURI string) *Role {
	r.params.Icon = &dataURI
	return r
}

// Build returns the accumulated params.
func (r *Role) Build() rest.RoleParams {
	return r.params
}

// Create creates the role in a guild.
func (r *Role) Create(ctx context.Context, c *rest.Client, guildID discord.GuildID, reason string) (*discord.Role, error) {
	return c.CreateRole(ctx, guildID, r.params, reason)
}

// Edit applies the accumulated settings to an existing role.
func (r *Role) Edit(ctx context.Context, c *rest.Client, guildID discord.GuildID, roleID discord.RoleID, reason string) (*discord.Role, error) {
	return c.EditRole(ctx, guildID, roleID, r.params, reason)
}
