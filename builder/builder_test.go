package builder

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/discord"
)

func TestMessageBuild(t *testing.T) {
	embed := NewEmbed().
		Title("release").
		Description("v0.3.0 is out").
		Field("breaking", "none", true).
		Color(0x5865F2).
		Build()

	params := NewMessage("hello").
		Reply(2, 3).
		Embed(embed).
		SuppressEmbeds().
		Mentions(discord.AllowedMentions{Parse: []discord.MentionType{discord.MentionTypeUsers}}).
		Nonce().
		Build()

	require.Equal(t, "hello", params.Content)
	require.NotEmpty(t, params.Nonce)
	require.Equal(t, discord.MessageFlagSuppressEmbeds, params.Flags)
	require.Len(t, params.Embeds, 1)
	require.Equal(t, "release", params.Embeds[0].Title)
	require.Equal(t, discord.ChannelID(2), params.MessageReference.ChannelID)
	require.Equal(t, discord.MessageID(3), params.MessageReference.MessageID)

	body, err := json.Marshal(params)
	require.NoError(t, err)
	require.Contains(t, string(body), `"allowed_mentions":{"parse":["users"]}`)
	require.NotContains(t, string(body), `"tts"`)
}

func TestMessageFilesStayOutOfJSON(t *testing.T) {
	params := NewMessage("with file").
		File("a.txt", "text/plain", strings.NewReader("x")).
		Build()

	require.Len(t, params.Files, 1)
	body, err := json.Marshal(params)
	require.NoError(t, err)
	require.NotContains(t, string(body), "a.txt")
}

func TestEmbedValidate(t *testing.T) {
	require.NoError(t, NewEmbed().Title("ok").Validate())

	long := strings.Repeat("x", 257)
	err := NewEmbed().Title(long).Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "title")

	e := NewEmbed()
	for i := 0; i < 26; i++ {
		e.Field("n", "v", false)
	}
	err = e.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "fields")

	big := NewEmbed().Description(strings.Repeat("d", 4000))
	big.Field(strings.Repeat("n", 250), strings.Repeat("v", 1000), false)
	big.Field(strings.Repeat("n", 250), strings.Repeat("v", 1000), false)
	err = big.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "total")
}

func TestWebhookMessageBuild(t *testing.T) {
	params := NewWebhookMessage("ping").
		Username("deploy-bot").
		AvatarURL("https://example.invalid/a.png").
		ThreadName("release notes").
		Build()

	require.Equal(t, "ping", params.Content)
	require.Equal(t, "deploy-bot", params.Username)
	require.Equal(t, "release notes", params.ThreadName)
}

func TestMessageEditBuild(t *testing.T) {
	params := NewMessageEdit().
		Content("fixed").
		SuppressEmbeds().
		Build()

	require.NotNil(t, params.Content)
	require.Equal(t, "fixed", *params.Content)
	require.NotNil(t, params.Flags)
	require.Equal(t, discord.MessageFlagSuppressEmbeds, *params.Flags)

	body, err := json.Marshal(params)
	require.NoError(t, err)
	require.NotContains(t, string(body), "embeds")
	require.NotContains(t, string(body), "allowed_mentions")
}

func TestMessageEditClearsEmbeds(t *testing.T) {
	body, err := json.Marshal(NewMessageEdit().Embeds().Build())
	require.NoError(t, err)
	require.Contains(t, string(body), `"embeds":[]`)
}

func TestChannelEditBuild(t *testing.T) {
	params := NewChannelEdit().
		Name("announcements").
		Topic("release notes only").
		Slowmode(30).
		NSFW(false).
		Parent(9).
		Build()

	require.Equal(t, "announcements", *params.Name)
	require.Equal(t, 30, *params.RateLimitPerUser)
	require.False(t, *params.NSFW)
	require.Equal(t, discord.ChannelID(9), *params.ParentID)
	require.Nil(t, params.Bitrate)

	body, err := json.Marshal(params)
	require.NoError(t, err)
	require.Contains(t, string(body), `"nsfw":false`)
	require.NotContains(t, string(body), "bitrate")
}

func TestMemberEditBuild(t *testing.T) {
	until := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	params := NewMemberEdit().
		Nick("deploy bot").
		Roles(4, 5).
		Timeout(until).
		Build()

	require.Equal(t, "deploy bot", *params.Nick)
	require.Equal(t, []discord.RoleID{4, 5}, *params.Roles)
	require.Equal(t, "2026-09-01T12:00:00Z", *params.CommunicationDisabledUntil)
	require.Nil(t, params.Mute)

	cleared := NewMemberEdit().Roles().Build()
	body, err := json.Marshal(cleared)
	require.NoError(t, err)
	require.Contains(t, string(body), `"roles":[]`)
}

func TestInviteBuild(t *testing.T) {
	params := NewInvite().
		MaxAge(90 * time.Minute).
		MaxUses(5).
		Temporary().
		Build()

	require.Equal(t, 5400, *params.MaxAge)
	require.Equal(t, 5, *params.MaxUses)
	require.True(t, params.Temporary)
	require.False(t, params.Unique)

	body, err := json.Marshal(NewInvite().Build())
	require.NoError(t, err)
	require.Equal(t, "{}", string(body))
}

func TestRoleBuild(t *testing.T) {
	params := NewRole().
		Name("moderator").
		Color(0xE67E22).
		Hoist(true).
		Mentionable(false).
		Permissions(discord.PermissionKickMembers | discord.PermissionBanMembers).
		Build()

	require.Equal(t, "moderator", *params.Name)
	require.Equal(t, 0xE67E22, *params.Color)
	require.True(t, *params.Hoist)
	require.False(t, *params.Mentionable)
	require.True(t, params.Permissions.Has(discord.PermissionKickMembers))
	require.Nil(t, params.Icon)
}

func TestMentionsBuild(t *testing.T) {
	body, err := json.Marshal(NoMentions())
	require.NoError(t, err)
	require.Equal(t, `{"parse":[]}`, string(body))

	allowed := NewMentions().Users(1, 2).RepliedUser().Build()
	require.True(t, allowed.RepliedUser)
	require.Empty(t, allowed.Parse)
	require.Equal(t, []discord.UserID{1, 2}, allowed.Users)

	body, err = json.Marshal(NewMentions().Everyone().AllRoles().Build())
	require.NoError(t, err)
	require.Contains(t, string(body), `"parse":["everyone","roles"]`)
}

func TestIconDataURI(t *testing.T) {
	uri, err := IconDataURI("image/png", strings.NewReader("fake-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	require.Equal(t, "fake-bytes", string(decoded))

	_, err = IconDataURI("image/png", strings.NewReader(""))
	require.Error(t, err)
}

func TestScaledIconDataURI(t *testing.T) {
	// A 512x128 source must come back 256x64.
	src := image.NewRGBA(image.Rect(0, 0, 512, 128))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	uri, err := ScaledIconDataURI(&buf)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	scaled, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 256, scaled.Bounds().Dx())
	require.Equal(t, 64, scaled.Bounds().Dy())

	// Small images pass through unscaled.
	small := image.NewRGBA(image.Rect(0, 0, 64, 64))
	buf.Reset()
	require.NoError(t, png.Encode(&buf, small))
	uri, err = ScaledIconDataURI(&buf)
	require.NoError(t, err)
	raw, err = base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	kept, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 64, kept.Bounds().Dx())
}
