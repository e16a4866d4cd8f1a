// Package builder assembles request payloads for the rest client:
// fluent construction for messages, embeds and webhook posts, plus
// helpers for image uploads.
package builder

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/rest"
)

// Message accumulates the parts of an outgoing channel message.
type Message struct {
	params rest.CreateMessageParams
}

// NewMessage starts a message with the given content.
func NewMessage(content string) *Message {
	return &Message{params: rest.CreateMessageParams{Content: content}}
}

// Content replaces the message content.
func (m *Message) Content(content string) *Message {
	m.params.Content = content
	return m
}

// TTS marks the message as text-to-speech.
func (m *Message) TTS() *Message {
	m.params.TTS = true
	return m
}

// Embed appends an embed, up to the platform cap of ten.
func (m *Message) Embed(e discord.Embed) *Message {
	m.params.Embeds = append(m.params.Embeds, e)
	return m
}

// Reply links the message to the one it answers. By default the
// replied user is not pinged; chain Mentions to change that.
func (m *Message) Reply(channelID discord.ChannelID, messageID discord.MessageID) *Message {
	m.params.MessageReference = &discord.MessageReference{
		ChannelID: channelID,
		MessageID: messageID,
	}
	return m
}

// Mentions sets the mention policy for this message only.
func (m *Message) Mentions(allowed discord.AllowedMentions) *Message {
	m.params.AllowedMentions = &allowed
	return m
}

// SuppressEmbeds stops link previews from rendering.
func (m *Message) SuppressEmbeds() *Message {
	m.params.Flags |= discord.MessageFlagSuppressEmbeds
	return m
}

// Silent suppresses push and desktop notifications for recipients.
func (m *Message) Silent() *Message {
	m.params.Flags |= discord.MessageFlagSuppressNotifications
	return m
}

// File attaches an upload.
func (m *Message) File(name, contentType string, r io.Reader) *Message {
	m.params.Files = append(m.params.Files, rest.File{
		Name:        name,
		ContentType: contentType,
		Reader:      r,
	})
	return m
}

// Nonce tags the message with a random nonce so the gateway echo can
// be matched to this send.
func (m *Message) Nonce() *Message {
	m.params.Nonce = uuid.NewString()
	return m
}

// Build returns the accumulated params.
func (m *Message) Build() rest.CreateMessageParams {
	return m.params
}

// Send posts the message to the channel.
func (m *Message) Send(ctx context.Context, c *rest.Client, channelID discord.ChannelID) (*discord.Message, error) {
	return c.CreateMessage(ctx, channelID, m.params)
}
