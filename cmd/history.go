package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent verification attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		opts := store.QueryOpts{Limit: limit}
		if h := handle.Normalize(e.cfg.Handle); h.Valid() {
			opts.Handle = h.String()
		}

		events, err := e.store.EventRepo().QueryVerifications(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-16s  %-10s  %-9s  %5s  %s\n",
			"When", "Handle", "Problem", "Flow", "Min", "Result")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, ev := range events {
			fmt.Fprintf(out, "%-16s  %-16s  %-10s  %-9s  %5d  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04"),
				ev.Handle, ev.ProblemID, ev.Flow, ev.TimeSpentMinutes, ev.Kind)
		}

		if opts.Handle != "" {
			stats, err := e.store.EventRepo().Stats(cmd.Context(), opts.Handle)
			if err != nil {
				return fmt.Errorf("query stats: %w", err)
			}
			fmt.Fprintf(out, "\n%d solved of %d attempts, %d minutes\n",
				stats.Solved, stats.Attempts, stats.TotalMinutes)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of attempts to show")
}
