package main

import (
	"os"

	"docvault/cmd/docvault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
