// Package main provides the entry point for the swipe engine HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swipe_engine",
	Short: "Gig Matcher Swipe Engine",
	Long:  "Gig Matcher serves a ranked job-recommendation feed with swipe gestures, daily limits and rewind via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
