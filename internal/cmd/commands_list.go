package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/output"
)

var (
	commandsListOutput string
	commandsListGuild  string
)

var commandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered application commands",
	Long:  "List registered application commands, global by default or per guild with --guild.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(commandsListOutput)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := ensureApplicationID(cmd.Context(), client, cfg); err != nil {
			return err
		}

		var cmds []discord.Command
		if commandsListGuild != "" {
			guildID, err := parseSnowflakeArg("--guild id", commandsListGuild)
			if err != nil {
				return err
			}
			cmds, err = client.GuildCommands(cmd.Context(), discord.GuildID(guildID))
			if err != nil {
				return err
			}
		} else {
			cmds, err = client.GlobalCommands(cmd.Context())
			if err != nil {
				return err
			}
		}

		formatter := output.NewFormatter(format)
		rendered, err := formatter.Commands(cmds)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	commandsListCmd.Flags().StringVar(&commandsListOutput, "output", "table", "Output format: table, json")
	commandsListCmd.Flags().StringVar(&commandsListGuild, "guild", "", "List guild commands instead of global")
}
