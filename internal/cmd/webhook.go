package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/builder"
	"github.com/cordialhq/cordial/discord"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Execute webhooks without a bot token",
}

var (
	webhookExecUsername string
	webhookExecAvatar   string
	webhookExecFiles    []string
	webhookExecNoWait   bool
)

var webhookExecCmd = &cobra.Command{
	Use:   "exec <url|id/token> <content...>",
	Short: "Post a message through a webhook",
	Long: `Post a message through a webhook. The target is either the full
webhook URL from the channel settings or the bare id/token pair. No bot
token is needed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		webhookID, token, err := parseWebhookRef(args[0])
		if err != nil {
			return err
		}
		content := strings.Join(args[1:], " ")

		msg := builder.NewWebhookMessage(content)
		if webhookExecUsername != "" {
			msg.Username(webhookExecUsername)
		}
		if webhookExecAvatar != "" {
			msg.AvatarURL(webhookExecAvatar)
		}
		for _, path := range webhookExecFiles {
			f, err := os.Open(path) // #nosec G304 -- user-supplied attachment path
			if err != nil {
				return fmt.Errorf("open attachment: %w", err)
			}
			defer f.Close() // nolint:errcheck // read-only file
			msg.File(filepath.Base(path), contentTypeFor(path), f)
		}

		client, cleanup, err := newAnonymousClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		sent, err := client.ExecuteWebhook(cmd.Context(), webhookID, token, msg.Build(), !webhookExecNoWait)
		if err != nil {
			return err
		}
		if sent != nil {
			fmt.Printf("Sent message %s\n", sent.ID)
		} else {
			fmt.Println("Webhook accepted")
		}
		return nil
	},
}

// parseWebhookRef accepts a full webhook URL or a bare id/token pair.
func parseWebhookRef(raw string) (discord.WebhookID, string, error) {
	raw = strings.TrimSpace(raw)

	path := raw
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return 0, "", fmt.Errorf("invalid webhook url: %w", err)
		}
		path = parsed.Path
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	// A full URL path reads api/webhooks/{id}/{token}; a bare ref is
	// just {id}/{token}.
	for i, seg := range segments {
		if seg == "webhooks" {
			segments = segments[i+1:]
			break
		}
	}
	if len(segments) != 2 || segments[0] == "" || segments[1] == "" {
		return 0, "", fmt.Errorf("webhook reference must be a webhook URL or id/token, got %q", raw)
	}

	flake, err := discord.ParseSnowflake(segments[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid webhook id %q: %w", segments[0], err)
	}
	return discord.WebhookID(flake), segments[1], nil
}

func init() {
	webhookCmd.AddCommand(webhookExecCmd)
	rootCmd.AddCommand(webhookCmd)

	webhookExecCmd.Flags().StringVar(&webhookExecUsername, "username", "", "Override the webhook display name")
	webhookExecCmd.Flags().StringVar(&webhookExecAvatar, "avatar-url", "", "Override the webhook avatar")
	webhookExecCmd.Flags().StringSliceVar(&webhookExecFiles, "file", nil, "Attach a file (repeatable)")
	webhookExecCmd.Flags().BoolVar(&webhookExecNoWait, "no-wait", false, "Do not wait for the created message")
}
