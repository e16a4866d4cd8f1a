package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cordialhq/cordial/internal/observability"
	"github.com/cordialhq/cordial/internal/output"
)

var whoamiOutput string

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity the configured token resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(whoamiOutput)
		if err != nil {
			return err
		}

		client, cleanup, err := newRestClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		user, err := client.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}

		// Bearer and webhook tokens have no application attached.
		app, appErr := client.CurrentApplication(cmd.Context())
		if appErr != nil {
			observability.CLILogger.Debug("No application for token", zap.Error(appErr))
			app = nil
		}

		if format == output.FormatJSON {
			payload := map[string]any{"user": user}
			if app != nil {
				payload["application"] = app
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		name := user.Username
		if user.GlobalName != "" {
			name = fmt.Sprintf("%s (%s)", user.GlobalName, user.Username)
		}
		fmt.Printf("User: %s\n", name)
		fmt.Printf("ID: %s\n", user.ID)
		if user.Bot {
			fmt.Println("Type: bot")
		}
		if app != nil {
			fmt.Printf("Application: %s (%s)\n", app.Name, app.ID)
			if app.Description != "" {
				fmt.Printf("Description: %s\n", app.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.Flags().StringVar(&whoamiOutput, "output", "table", "Output format: table, json")
}
