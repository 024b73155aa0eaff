package main

import (
	"os"
)

// Build metadata - injected at build time
var (
	BuildVersion = "dev"
	BuildCommit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
