package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zamapedia",
	Short: "ZamaPedia page-intel service",
	Long: `ZamaPedia fetches web pages, extracts leaderboard-related snippets,
handles and links, and serves them over HTTP with an ephemeral cache.

Usage:
  zamapedia serve
  zamapedia fetch <url>`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
