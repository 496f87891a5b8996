package main

import (
	"os"

	"github.com/ericlevine/barcodegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
