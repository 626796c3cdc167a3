// Package main provides the entry point for the Job Portal HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobportal",
	Short: "Job Portal HTTP API Server",
	Long:  "Job Portal exposes a REST API for searching job listings with per-candidate match scoring, tracking applications, company reviews, and interview practice sessions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
