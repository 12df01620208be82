// Package main provides the resume parser HTTP server and a local parse command.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/medflow/resume-parser/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-parser",
	Short: "Resume parsing service",
	Long:  "Extracts contact details, skills, education and location from PDF resumes over HTTP or from the command line.",
}

func main() {
	// Load .env file if it exists; deployed environments use real env vars
	if !config.IsProductionLike() {
		_ = godotenv.Load()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
