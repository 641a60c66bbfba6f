// Package main is the entry point for the sentry-mcp CLI.
package main

import (
	"os"

	"github.com/thoreinstein/sentry-mcp/cmd/sentry-mcp/commands"
)

func main() {
	os.Exit(commands.Main())
}
