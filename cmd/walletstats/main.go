package main

import (
	"os"

	"github.com/rustyeddy/walletstats/cmd/walletstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
