package main

import (
	"os"

	"github.com/typeview/typeview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
