package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/output"
)

var channelsOutput string

var channelsCmd = &cobra.Command{
	Use:   "channels <guild-id>",
	Short: "List the channels of a guild",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(channelsOutput)
		if err != nil {
			return err
		}

		guildID, err := parseSnowflakeArg("guild id", args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		channels, err := client.GuildChannels(cmd.Context(), discord.GuildID(guildID))
		if err != nil {
			return err
		}

		formatter := output.NewFormatter(format)
		rendered, err := formatter.Channels(channels)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
	channelsCmd.Flags().StringVar(&channelsOutput, "output", "table", "Output format: table, json")
}
