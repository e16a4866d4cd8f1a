package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/builder"
	"github.com/cordialhq/cordial/discord"
)

var (
	sendFiles          []string
	sendReplyTo        string
	sendTTS            bool
	sendSilent         bool
	sendSuppressEmbeds bool
)

var sendCmd = &cobra.Command{
	Use:   "send <channel-id> <content...>",
	Short: "Send a message to a channel",
	Long: `Send a message to a channel. Content words after the channel id are
joined with spaces. Attach files with --file; reply to a message with
--reply-to.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channelID, err := parseSnowflakeArg("channel id", args[0])
		if err != nil {
			return err
		}
		content := strings.Join(args[1:], " ")

		msg := builder.NewMessage(content)
		if sendTTS {
			msg.TTS()
		}
		if sendSilent {
			msg.Silent()
		}
		if sendSuppressEmbeds {
			msg.SuppressEmbeds()
		}
		if sendReplyTo != "" {
			replyTo, err := parseSnowflakeArg("--reply-to message id", sendReplyTo)
			if err != nil {
				return err
			}
			msg.Reply(discord.ChannelID(channelID), discord.MessageID(replyTo))
		}

		for _, path := range sendFiles {
			f, err := os.Open(path) // #nosec G304 -- user-supplied attachment path
			if err != nil {
				return fmt.Errorf("open attachment: %w", err)
			}
			defer f.Close() // nolint:errcheck // read-only file
			msg.File(filepath.Base(path), contentTypeFor(path), f)
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		sent, err := msg.Send(cmd.Context(), client, discord.ChannelID(channelID))
		if err != nil {
			return err
		}

		fmt.Printf("Sent message %s\n", sent.ID)
		fmt.Printf("Link: %s\n", sent.Link())
		return nil
	},
}

// contentTypeFor guesses the MIME type from the file extension.
func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringSliceVar(&sendFiles, "file", nil, "Attach a file (repeatable)")
	sendCmd.Flags().StringVar(&sendReplyTo, "reply-to", "", "Reply to this message id")
	sendCmd.Flags().BoolVar(&sendTTS, "tts", false, "Send as text-to-speech")
	sendCmd.Flags().BoolVar(&sendSilent, "silent", false, "Suppress notifications for this message")
	sendCmd.Flags().BoolVar(&sendSuppressEmbeds, "suppress-embeds", false, "Suppress link embeds")
}
