package main

import (
	"os"

	"github.com/jwhan/fintab/cmd/fintab/commands"
)

// main is the entry point for the fintab CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
