package main

import (
	"os"

	"github.com/light-bringer/pricetracker/cmd/pricetracker/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
