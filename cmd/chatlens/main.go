package main

import (
	"os"

	"github.com/chatlensapp/chatlens/cmd/chatlens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.OutputError("%v", err)
		os.Exit(1)
	}
}
