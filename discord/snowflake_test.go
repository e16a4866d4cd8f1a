package discord

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnowflakeJSON(t *testing.T) {
	out, err := json.Marshal(Snowflake(81384788765712384))
	require.NoError(t, err)
	require.Equal(t, `"81384788765712384"`, string(out))

	var quoted Snowflake
	require.NoError(t, json.Unmarshal([]byte(`"81384788765712384"`), &quoted))
	require.Equal(t, Snowflake(81384788765712384), quoted)

	// Some gateway payloads send bare numbers.
	var bare Snowflake
	require.NoError(t, json.Unmarshal([]byte(`81384788765712384`), &bare))
	require.Equal(t, quoted, bare)

	var null Snowflake
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	require.True(t, null.IsZero())

	var bad Snowflake
	require.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &bad))
}

func TestSnowflakeTime(t *testing.T) {
	// 175928847299117063 is the documented worked example: its upper
	// bits decode to 2016-04-30 11:18:25.796 UTC.
	id := Snowflake(175928847299117063)
	want := time.Date(2016, time.April, 30, 11, 18, 25, 796000000, time.UTC)
	require.Equal(t, want, id.Time())
}

func TestTypedIDsRoundTrip(t *testing.T) {
	type payload struct {
		Guild   GuildID   `json:"guild"`
		Channel ChannelID `json:"channel"`
	}
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"guild":"81384788765712384","channel":22}`), &p))
	require.Equal(t, GuildID(81384788765712384), p.Guild)
	require.Equal(t, ChannelID(22), p.Channel)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"guild":"81384788765712384","channel":"22"}`, string(out))
}

func TestEmojiAPIName(t *testing.T) {
	unicode := Emoji{Name: "🦀"}
	require.False(t, unicode.IsCustom())
	require.Equal(t, "%F0%9F%A6%80", unicode.APIName())

	custom := Emoji{ID: EmojiID(7), Name: "ferris"}
	require.True(t, custom.IsCustom())
	require.Equal(t, "ferris:7", custom.APIName())
}

func TestMessageLink(t *testing.T) {
	dm := Message{ID: 3, ChannelID: 2}
	require.Equal(t, "https://discord.com/channels/@me/2/3", dm.Link())

	guild := Message{ID: 3, ChannelID: 2, GuildID: 1}
	require.Equal(t, "https://discord.com/channels/1/2/3", guild.Link())
}

func TestPermissionsHas(t *testing.T) {
	p := PermissionSendMessages | PermissionEmbedLinks
	require.True(t, p.Has(PermissionSendMessages))
	require.False(t, p.Has(PermissionBanMembers))
	require.True(t, PermissionAdministrator.Has(PermissionBanMembers))

	var parsed Permissions
	require.NoError(t, json.Unmarshal([]byte(`"2048"`), &parsed))
	require.Equal(t, PermissionSendMessages, parsed)
}
