package main

import (
	"os"

	"github.com/arthur-debert/hermes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
