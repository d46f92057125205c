package main

import (
	"os"

	"github.com/aegentdev/aivss/cmd/aivss/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
