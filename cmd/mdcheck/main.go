// Package main is the entry point for the mdcheck CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/mdcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
