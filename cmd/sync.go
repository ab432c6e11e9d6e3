package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ascent-cf/ascent/internal/handle"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile solve history with Codeforces",
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
		return report(cmd, e.svc.Sync(handle.WithHandle(cmd.Context(), h)))
	},
}
