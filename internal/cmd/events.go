package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cordialhq/cordial/internal/output"
)

var (
	eventsOutput string
	eventsType   string
	eventsLimit  int
	eventsCounts bool
	eventsSince  time.Duration
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show gateway events archived by listen --record",
	Long: `Show gateway events archived by listen --record, newest first.
Use --counts for per-type totals instead of individual events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(eventsOutput)
		if err != nil {
			return err
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		formatter := output.NewFormatter(format)

		if eventsCounts {
			var since time.Time
			if eventsSince > 0 {
				since = time.Now().Add(-eventsSince)
			}
			counts, err := db.EventCounts(cmd.Context(), since)
			if err != nil {
				return err
			}
			rendered, err := formatter.EventStats(counts)
			if err != nil {
				return err
			}
			fmt.Println(rendered)
			return nil
		}

		entries, err := db.RecentEvents(cmd.Context(), eventsType, eventsLimit)
		if err != nil {
			return err
		}
		rendered, err := formatter.Events(entries)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().StringVar(&eventsOutput, "output", "table", "Output format: table, json")
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "Only show events of this type, e.g. MESSAGE_CREATE")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "Number of events to show")
	eventsCmd.Flags().BoolVar(&eventsCounts, "counts", false, "Show per-type totals instead of events")
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 0, "Window for --counts (0 for everything)")
}
