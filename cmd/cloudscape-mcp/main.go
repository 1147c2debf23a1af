// Command cloudscape-mcp serves Cloudscape component metadata to AI coding
// assistants over the Model Context Protocol.
package main

import (
	"os"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
