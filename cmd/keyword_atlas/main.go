// Package main provides the entry point for the Keyword Atlas CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyword_atlas",
	Short: "Keyword clustering and cross-referencing engine",
	Long:  "Keyword Atlas groups a site's tracked keywords into clusters, matches them against ranking reports, associates inbound and outbound links, and lays the clusters out for rendering.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
