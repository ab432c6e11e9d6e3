package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/verify"
)

var logCmd = &cobra.Command{
	Use:   "log <problem-id>",
	Short: "Record a solved problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, _ := cmd.Flags().GetInt("time")
		if minutes < 0 {
			return verify.ErrInvalidMinutes
		}
		id := verify.NormalizeID(args[0])
		if id == "" {
			return verify.ErrEmptyProblemID
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		h, err := e.handle()
		if err != nil {
			return err
		}

		o := e.svc.Verify(handle.WithHandle(cmd.Context(), h), verify.FlowManual, verify.SubmissionRequest{
			ProblemID:        id,
			TimeSpentMinutes: minutes,
		})
		return report(cmd, o)
	},
}

func init() {
	logCmd.Flags().Int("time", 0, "Minutes spent on the problem")
}

// report prints an outcome and turns failures into a non-zero exit.
func report(cmd *cobra.Command, o verify.Outcome) error {
	if o.Failed() {
		return errors.New(o.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), o.Message)
	return nil
}
