package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/store"
)

// TableFormatter renders entities as ASCII tables.
type TableFormatter struct{}

// Guilds renders the guild membership list.
func (f *TableFormatter) Guilds(guilds []discord.PartialGuild) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Owner", "Features"})

	for _, g := range guilds {
		owner := ""
		if g.Owner {
			owner = "yes"
		}
		t.AppendRow(table.Row{g.ID, g.Name, owner, len(g.Features)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d guilds", len(guilds)), "", ""})

	return t.Render(), nil
}

// Channels renders a guild's channel list.
func (f *TableFormatter) Channels(channels []discord.Channel) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Topic"})

	for _, ch := range channels {
		t.AppendRow(table.Row{ch.ID, ch.Name, channelTypeLabel(ch.Type), truncate(ch.Topic, 48)})
	}

	return t.Render(), nil
}

// Messages renders a channel history page, oldest first.
func (f *TableFormatter) Messages(messages []discord.Message) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Author", "Sent", "Content"})

	for _, m := range messages {
		t.AppendRow(table.Row{m.ID, m.Author.Username, formatTime(m.Timestamp), truncate(m.Content, 64)})
	}

	return t.Render(), nil
}

// Commands renders registered application commands.
func (f *TableFormatter) Commands(commands []discord.Command) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Options", "Description"})

	for _, c := range commands {
		t.AppendRow(table.Row{c.ID, c.Name, len(c.Options), truncate(c.Description, 48)})
	}

	return t.Render(), nil
}

// RouteStats renders per-route exchange aggregates from the ledger.
func (f *TableFormatter) RouteStats(stats []store.RouteStat) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"Route", "Requests", "Errors", "Avg ms", "Last"})

	var requests, errors int
	for _, s := range stats {
		requests += s.Requests
		errors += s.Errors
		t.AppendRow(table.Row{s.Route, s.Requests, s.Errors, fmt.Sprintf("%.1f", s.AvgMillis), formatTime(s.LastAt)})
	}
	t.AppendFooter(table.Row{"total", requests, errors, "", ""})

	return t.Render(), nil
}

// EventStats renders per-type gateway event aggregates from the ledger.
func (f *TableFormatter) EventStats(stats []store.EventStat) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"Event", "Count", "Last"})

	for _, s := range stats {
		t.AppendRow(table.Row{s.Type, s.Count, formatTime(s.LastAt)})
	}

	return t.Render(), nil
}

// Events renders recorded gateway events, newest first.
func (f *TableFormatter) Events(entries []store.EventEntry) (string, error) {
	t := newTable()
	t.AppendHeader(table.Row{"Received", "Event", "Guild", "Channel", "Payload"})

	for _, e := range entries {
		t.AppendRow(table.Row{formatTime(e.ReceivedAt), e.Type, e.GuildID, e.ChannelID, truncate(string(e.Payload), 48)})
	}

	return t.Render(), nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func channelTypeLabel(ct discord.ChannelType) string {
	switch ct {
	case discord.ChannelTypeGuildText:
		return "text"
	case discord.ChannelTypeDM:
		return "dm"
	case discord.ChannelTypeGuildVoice:
		return "voice"
	case discord.ChannelTypeGroupDM:
		return "group-dm"
	case discord.ChannelTypeGuildCategory:
		return "category"
	case discord.ChannelTypeGuildAnnouncement:
		return "announcement"
	case discord.ChannelTypeAnnouncementThread:
		return "announcement-thread"
	case discord.ChannelTypePublicThread:
		return "public-thread"
	case discord.ChannelTypePrivateThread:
		return "private-thread"
	case discord.ChannelTypeGuildStageVoice:
		return "stage"
	case discord.ChannelTypeGuildForum:
		return "forum"
	default:
		return fmt.Sprintf("type-%d", int(ct))
	}
}

func formatTime(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format("2006-01-02 15:04:05")
}

func truncate(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}
