package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/internal/output"
)

var (
	statsOutput string
	statsSince  time.Duration
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-route traffic from the recorded exchange ledger",
	Long: `Show per-route request counts, error counts and latency from the
recorded exchange ledger. Populate the ledger by running commands with
--record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(statsOutput)
		if err != nil {
			return err
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		var since time.Time
		if statsSince > 0 {
			since = time.Now().Add(-statsSince)
		}

		stats, err := db.RouteStats(cmd.Context(), since)
		if err != nil {
			return err
		}

		formatter := output.NewFormatter(format)
		rendered, err := formatter.RouteStats(stats)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsOutput, "output", "table", "Output format: table, json")
	statsCmd.Flags().DurationVar(&statsSince, "since", 24*time.Hour, "Window to report over (0 for everything)")
}
