package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/discord"
)

func TestBucketKeySharedAcrossTemplate(t *testing.T) {
	// Same template and major parameter share a bucket regardless of
	// method or minor ids.
	get := routeMessage(1, 100)
	edit := routeEditMessage(1, 200)
	require.Equal(t, get.key, edit.key)

	list := routeMessages(1)
	create := routeCreateMessage(1)
	require.Equal(t, list.key, create.key)
	require.NotEqual(t, get.key, list.key)
}

func TestBucketKeyMajorParameterSplits(t *testing.T) {
	require.NotEqual(t, routeMessage(1, 100).key, routeMessage(2, 100).key)
	require.NotEqual(t, routeGuild(1).key, routeGuild(2).key)
	require.Equal(t, routeGuild(1).key, routeEditGuild(1).key)
}

func TestBucketKeyDeleteMessageSeparate(t *testing.T) {
	del := routeDeleteMessage(1, 100)
	require.NotEqual(t, routeMessage(1, 100).key, del.key)
	require.Equal(t, del.key, routeDeleteMessage(1, 999).key)
}

func TestBucketKeyWebhookTokenExcluded(t *testing.T) {
	a := routeExecuteWebhook(7, "token-a")
	b := routeWebhookWithToken(7, "token-b")
	require.Equal(t, a.key, b.key)

	// The application-keyed interaction routes share the webhook path
	// shape but never its buckets.
	followup := routeCreateFollowupMessage(7, "token-a")
	require.NotEqual(t, a.key, followup.key)
}

func TestRoutePaths(t *testing.T) {
	r := routeMessage(81384788765712384, 175928847299117063)
	require.Equal(t, http.MethodGet, r.Method())
	require.Equal(t, "/channels/81384788765712384/messages/175928847299117063", r.Path())
	require.Equal(t, "GET /channels/81384788765712384/messages/175928847299117063", r.String())

	emoji := discord.Emoji{Name: "🦀"}
	reaction := routeCreateReaction(1, 2, emoji)
	require.Equal(t, "/channels/1/messages/2/reactions/%F0%9F%A6%80/@me", reaction.Path())
}
