// Package main is the entry point for the pricing-truth CLI.
package main

import (
	"os"

	"pricing-truth/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
