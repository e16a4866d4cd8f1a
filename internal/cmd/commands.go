package cmd

import "github.com/spf13/cobra"

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Manage application commands",
}

func init() {
	commandsCmd.AddCommand(commandsListCmd)
	commandsCmd.AddCommand(commandsSyncCmd)
	rootCmd.AddCommand(commandsCmd)
}
