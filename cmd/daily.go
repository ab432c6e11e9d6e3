package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/verify"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's recommended problem",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		h, err := e.handle()
		if err != nil {
			return err
		}

		p, err := e.svc.Acquire(handle.WithHandle(cmd.Context(), h))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", p.ID, p.Name)
		fmt.Fprintf(out, "Rating: %d (%s)\n", p.Rating, verify.RatingBand(p.Rating))
		if len(p.Tags) > 0 {
			fmt.Fprintf(out, "Tags:   %s\n", strings.Join(p.Tags, ", "))
		}
		fmt.Fprintf(out, "Solve:  %s\n", p.Link)
		return nil
	},
}
