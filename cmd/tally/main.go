package main

import (
	"os"

	"github.com/balkashynov/tally/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
