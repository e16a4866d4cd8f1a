package output

import (
	"encoding/json"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/store"
)

// JSONFormatter renders entities as JSON arrays.
type JSONFormatter struct {
	Indent bool
}

// Guilds renders the guild membership list.
func (f *JSONFormatter) Guilds(guilds []discord.PartialGuild) (string, error) {
	return f.render(guilds)
}

// Channels renders a guild's channel list.
func (f *JSONFormatter) Channels(channels []discord.Channel) (string, error) {
	return f.render(channels)
}

// Messages renders a channel history page.
func (f *JSONFormatter) Messages(messages []discord.Message) (string, error) {
	return f.render(messages)
}

// Commands renders registered application commands.
func (f *JSONFormatter) Commands(commands []discord.Command) (string, error) {
	return f.render(commands)
}

// RouteStats renders per-route exchange aggregates from the ledger.
func (f *JSONFormatter) RouteStats(stats []store.RouteStat) (string, error) {
	return f.render(stats)
}

// EventStats renders per-type gateway event aggregates from the ledger.
func (f *JSONFormatter) EventStats(stats []store.EventStat) (string, error) {
	return f.render(stats)
}

// Events renders recorded gateway events.
func (f *JSONFormatter) Events(entries []store.EventEntry) (string, error) {
	return f.render(entries)
}

func (f *JSONFormatter) render(value any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
