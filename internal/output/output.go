// Package output renders API entities for the terminal, as either
// human-readable tables or JSON.
package output

import (
	"fmt"
	"strings"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/store"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter renders entity listings.
type Formatter interface {
	Guilds(guilds []discord.PartialGuild) (string, error)
	Channels(channels []discord.Channel) (string, error)
	Messages(messages []discord.Message) (string, error)
	Commands(commands []discord.Command) (string, error)
	RouteStats(stats []store.RouteStat) (string, error)
	EventStats(stats []store.EventStat) (string, error)
	Events(entries []store.EventEntry) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	if format == FormatJSON {
		return &JSONFormatter{Indent: true}
	}
	return &TableFormatter{}
}
