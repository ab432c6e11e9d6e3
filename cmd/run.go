package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ascent-cf/ascent/internal/app"
	"github.com/ascent-cf/ascent/internal/handle"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Service:       e.svc,
		Events:        e.store.EventRepo(),
		Handle:        handle.Normalize(e.cfg.Handle),
		SuccessWindow: e.cfg.SuccessWindow,
		Logger:        e.logger,
	})
}
