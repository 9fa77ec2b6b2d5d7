package main

import (
	"github.com/s0up4200/reelsearch/cmd"
)

// Set by the release build via -ldflags
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, buildTime)
	cmd.Execute()
}
