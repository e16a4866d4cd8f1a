package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/output"
	"github.com/cordialhq/cordial/rest"
)

var (
	historyOutput string
	historyLimit  int
	historyBefore string
)

var historyCmd = &cobra.Command{
	Use:   "history <channel-id>",
	Short: "Show recent messages in a channel",
	Long:  "Show recent messages in a channel, newest first. Use --before to page further back.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(historyOutput)
		if err != nil {
			return err
		}

		channelID, err := parseSnowflakeArg("channel id", args[0])
		if err != nil {
			return err
		}

		if historyLimit < 1 || historyLimit > 100 {
			return fmt.Errorf("--limit must be between 1 and 100, got %d", historyLimit)
		}

		query := rest.MessagesQuery{Limit: historyLimit}
		if historyBefore != "" {
			before, err := parseSnowflakeArg("--before message id", historyBefore)
			if err != nil {
				return err
			}
			query.Before = discord.MessageID(before)
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		messages, err := client.Messages(cmd.Context(), discord.ChannelID(channelID), query)
		if err != nil {
			return err
		}

		formatter := output.NewFormatter(format)
		rendered, err := formatter.Messages(messages)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyOutput, "output", "table", "Output format: table, json")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Number of messages to fetch (1-100)")
	historyCmd.Flags().StringVar(&historyBefore, "before", "", "Fetch messages before this message id")
}
