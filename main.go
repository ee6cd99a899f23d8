// Copyright (c) 2026 Passkeep Team
// Passkeep - password generation and vault toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Passkeep.
//
// Usage:
//
//	go run . [flags]
//	./passkeep [flags]
//
// This launches the Passkeep CLI; running it without a subcommand opens
// the interactive TUI. See --help for options.
package main

import (
	"log"
	"os"

	"github.com/passkeep/passkeep/ui/cli"
)

// main is the entrypoint for the Passkeep CLI.
func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("Passkeep CLI error: %v", err)
		os.Exit(1)
	}
}
