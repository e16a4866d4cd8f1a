package builder

import (
	"fmt"
	"time"

	"github.com/cordialhq/cordial/discord"
)

// Platform limits on embed content.
const (
	embedTitleLimit       = 256
	embedDescriptionLimit = 4096
	embedFieldLimit       = 25
	embedFieldNameLimit   = 256
	embedFieldValueLimit  = 1024
	embedTotalLimit       = 6000
)

// Embed accumulates one rich embed.
type Embed struct {
	embed discord.Embed
}

// NewEmbed starts an empty embed.
func NewEmbed() *Embed {
	return &Embed{}
}

// Title sets the embed title.
func (e *Embed) Title(title string) *Embed {
	e.embed.Title = title
	return e
}

// Description sets the embed body text.
func (e *Embed) Description(desc string) *Embed {
	e.embed.Description = desc
	return e
}

// URL makes the title a link.
func (e *Embed) URL(url string) *Embed {
	e.embed.URL = url
	return e
}

// Color sets the accent color as 0xRRGGBB.
func (e *Embed) Color(color int) *Embed {
	e.embed.Color = color
	return e
}

// Timestamp sets the embed timestamp.
func (e *Embed) Timestamp(t time.Time) *Embed {
	e.embed.Timestamp = &t
	return e
}

// Field appends one titled field.
func (e *Embed) Field(name, value string, inline bool) *Embed {
	e.embed.Fields = append(e.embed.Fields, discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return e
}

// Footer sets the trailing line.
func (e *Embed) Footer(text, iconURL string) *Embed {
	e.embed.Footer = &discord.EmbedFooter{Text: text, IconURL: iconURL}
	return e
}

// Author sets the leading author line.
func (e *Embed) Author(name, url, iconURL string) *Embed {
	e.embed.Author = &discord.EmbedAuthor{Name: name, URL: url, IconURL: iconURL}
	return e
}

// Image sets the large image.
func (e *Embed) Image(url string) *Embed {
	e.embed.Image = &discord.EmbedImage{URL: url}
	return e
}

// Thumbnail sets the corner thumbnail.
func (e *Embed) Thumbnail(url string) *Embed {
	e.embed.Thumbnail = &discord.EmbedThumbnail{URL: url}
	return e
}

// Build returns the embed without checking limits.
func (e *Embed) Build() discord.Embed {
	return e.embed
}

// Validate reports the first platform limit the embed exceeds. The
// server would reject it anyway; checking first gives a better error
// than a 400 with a field map.
func (e *Embed) Validate() error {
	if len(e.embed.Title) > embedTitleLimit {
		return fmt.Errorf("embed title exceeds %d characters", embedTitleLimit)
	}
	if len(e.embed.Description) > embedDescriptionLimit {
		return fmt.Errorf("embed description exceeds %d characters", embedDescriptionLimit)
	}
	if len(e.embed.Fields) > embedFieldLimit {
		return fmt.Errorf("embed has more than %d fields", embedFieldLimit)
	}
	total := len(e.embed.Title) + len(e.embed.Description)
	for i, f := range e.embed.Fields {
		if len(f.Name) > embedFieldNameLimit {
			return fmt.Errorf("field %d name exceeds %d characters", i, embedFieldNameLimit)
		}
		if len(f.Value) > embedFieldValueLimit {
			return fmt.Errorf("field %d value exceeds %d characters", i, embedFieldValueLimit)
		}
		total += len(f.Name) + len(f.Value)
	}
	if e.embed.Footer != nil {
		total += len(e.embed.Footer.Text)
	}
	if e.embed.Author != nil {
		total += len(e.embed.Author.Name)
	}
	if total > embedTotalLimit {
		return fmt.Errorf("embed content exceeds %d characters total", embedTotalLimit)
	}
	return nil
}
