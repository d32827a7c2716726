package main

import (
	"os"

	"github.com/midastouch-dev/midastouch/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
