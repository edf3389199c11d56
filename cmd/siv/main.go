package main

import (
	"os"

	"github.com/codahale/siv/cmd/siv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
