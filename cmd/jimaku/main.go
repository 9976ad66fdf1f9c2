package main

import (
	"os"

	"github.com/fumikura/jimaku/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
