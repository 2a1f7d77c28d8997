// Package main provides the entry point for the Hire.io API server and tooling.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hireio",
	Short: "Hire.io applicant tracking service",
	Long:  "Hire.io is a multi-tenant applicant tracking service: it extracts structured profiles from resume documents and scores candidates against job requirements via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
