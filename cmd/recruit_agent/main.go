// Package main provides the entry point for the recruit-agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recruit_agent",
	Short: "AI recruiting assistant CLI",
	Long:  "Recruit Agent submits resume screening runs to the analysis backend, generates job descriptions and aptitude assessments, and reports on candidate assessment progress.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
