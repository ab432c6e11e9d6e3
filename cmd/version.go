package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ascent", displayVersion())
	},
}

// displayVersion returns the canonical semver of a release build, or
// "(devel)" for anything else.
func displayVersion() string {
	v := version
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "(devel)"
	}
	return semver.Canonical(v)
}

// userAgent identifies this build to the backend.
func userAgent() string {
	return "ascent/" + displayVersion()
}
