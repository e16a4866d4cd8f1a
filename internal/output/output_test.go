package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/store"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	formatter := NewFormatter(FormatTable)

	guilds := []discord.PartialGuild{
		{ID: 100, Name: "Testing Grounds", Owner: true, Features: []string{"COMMUNITY"}},
		{ID: 200, Name: "Lounge"},
	}
	rendered, err := formatter.Guilds(guilds)
	require.NoError(t, err)
	require.Contains(t, rendered, "Testing Grounds")
	require.Contains(t, rendered, "yes")
	require.Contains(t, rendered, "2 guilds")

	channels := []discord.Channel{
		{ID: 1, Name: "general", Type: discord.ChannelTypeGuildText, Topic: "Anything goes"},
		{ID: 2, Name: "standup", Type: discord.ChannelTypeGuildVoice},
	}
	rendered, err = formatter.Channels(channels)
	require.NoError(t, err)
	require.Contains(t, rendered, "general")
	require.Contains(t, rendered, "text")
	require.Contains(t, rendered, "voice")

	messages := []discord.Message{
		{
			ID:        42,
			Author:    discord.User{Username: "sam"},
			Content:   "hello there",
			Timestamp: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		},
	}
	rendered, err = formatter.Messages(messages)
	require.NoError(t, err)
	require.Contains(t, rendered, "sam")
	require.Contains(t, rendered, "hello there")
	require.Contains(t, rendered, "2026-03-15 10:30:00")

	stats := []store.RouteStat{
		{Route: "/channels/1/messages", Requests: 12, Errors: 2, AvgMillis: 80.5},
		{Route: "/users/@me", Requests: 3},
	}
	rendered, err = formatter.RouteStats(stats)
	require.NoError(t, err)
	require.Contains(t, rendered, "/users/@me")
	require.Contains(t, rendered, "80.5")
	require.Contains(t, rendered, "15") // footer total requests
}

func TestJSONFormatter(t *testing.T) {
	formatter := NewFormatter(FormatJSON)

	rendered, err := formatter.Guilds([]discord.PartialGuild{{ID: 100, Name: "Testing Grounds"}})
	require.NoError(t, err)
	require.Contains(t, rendered, "\"name\": \"Testing Grounds\"")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "100", decoded[0]["id"])

	rendered, err = formatter.EventStats([]store.EventStat{{Type: "MESSAGE_CREATE", Count: 7}})
	require.NoError(t, err)
	require.Contains(t, rendered, "\"type\": \"MESSAGE_CREATE\"")
	require.Contains(t, rendered, "\"count\": 7")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "one two", truncate("one\ntwo", 10))

	long := truncate("abcdefghijklmnop", 10)
	require.Len(t, []rune(long), 10)
	require.Equal(t, "abcdefg...", long)
}
