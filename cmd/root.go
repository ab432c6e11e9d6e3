package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "ascent",
	Short:        "Codeforces training tracker",
	Long:         "Ascent is a terminal companion for a daily Codeforces ladder.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides ASCENT_DB env var)")
	flags.String("backend", "", "Tracker backend base URL (overrides ASCENT_BACKEND_URL env var)")
	flags.String("handle", "", "Codeforces handle (overrides ASCENT_HANDLE env var)")
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/ascent/config.yaml)")
	flags.String("log-file", "", "Path to log file (overrides ASCENT_LOG_FILE env var)")
	flags.Bool("verbose", false, "Enable debug logging")
	flags.Duration("timeout", 0, "Per-request backend timeout, 0 for none")

	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
