// Package main provides the daily_reading command line: it compiles Korean reading passages
// into DAILY_READING exercise files.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daily_reading",
	Short: "Daily reading exercise compiler",
	Long: `daily_reading turns nonfiction, literature and workbook passages into self-contained
DAILY_READING exercises: one JSON file per day for each of the twelve levels, plus a source index.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
