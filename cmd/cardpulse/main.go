// Package main provides the entry point for the CardPulse CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cardpulse",
	Short: "CardPulse business card scanner",
	Long:  "CardPulse turns photos of business cards into structured, locally stored contacts using an external AI vision model, with list, export and REST API access.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
