package main

import (
	"os"

	"github.com/ascent-cf/ascent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
