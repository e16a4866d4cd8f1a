package builder

import (
	"context"
	"time"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/rest"
)

// Invite accumulates channel invite settings.
type Invite struct {
	params rest.CreateInviteParams
}

// NewInvite starts an invite with the platform defaults: 24 hour
// expiry, unlimited uses.
func NewInvite() *Invite {
	return &Invite{}
}

// MaxAge sets how long the invite stays valid. Durations are rounded
// down to whole seconds; zero makes the invite permanent.
func (i *Invite) MaxAge(d time.Duration) *Invite {
	secs := int(d / time.Second)
	i.params.MaxAge = &secs
	return i
}

// MaxUses caps how many times the invite can be used. Zero means
// unlimited.
func (i *Invite) MaxUses(n int) *Invite {
	i.params.MaxUses = &n
	return i
}

// Temporary grants only temporary membership: members are removed on
// disconnect unless they have been given a role.
func (i *Invite) Temporary() *Invite {
	i.params.Temporary = true
	return i
}

// Unique forces a fresh invite code instead of reusing an equivalent
// existing one.
func (i *Invite) Unique() *Invite {
	i.params.Unique = true
	return i
}

// Build returns the accumulated params.
func (i *Invite) Build() rest.CreateInviteParams {
	return i.params
}

// Create creates the invite for a channel.
func (i *Invite) Create(ctx context.Context, c *rest.Client, channelID discord.ChannelID, reason string) (*discord.Invite, error) {
	return c.CreateChannelInvite(ctx, channelID, i.params, reason)
}
