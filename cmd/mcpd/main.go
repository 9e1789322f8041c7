// Package main is the entry point for the mcpd binary.
package main

import (
	"os"

	cli "compliance-mcp/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
