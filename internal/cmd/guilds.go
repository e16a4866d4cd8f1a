package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/internal/output"
)

var guildsOutput string

var guildsCmd = &cobra.Command{
	Use:   "guilds",
	Short: "List the guilds the current user is in",
	Long:  "List the guilds the current user is in, following pagination until the full set is collected.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(guildsOutput)
		if err != nil {
			return err
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		guilds, err := client.AllCurrentUserGuilds(cmd.Context())
		if err != nil {
			return err
		}

		formatter := output.NewFormatter(format)
		rendered, err := formatter.Guilds(guilds)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guildsCmd)
	guildsCmd.Flags().StringVar(&guildsOutput, "output", "table", "Output format: table, json")
}
