// Package main provides the entry point for the Resume Enhancer CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_enhancer",
	Short: "Resume Enhancer document processor",
	Long:  "Resume Enhancer inserts technology bullet points into DOCX resumes, cloning each document's own bullet formatting and spreading points evenly across the top projects.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
