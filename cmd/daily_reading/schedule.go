package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/daily-reading/internal/levels"
	"github.com/jonathan/daily-reading/internal/observability"
	"github.com/jonathan/daily-reading/internal/schedule"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <level>",
	Short: "Print the 365-day content-type schedule of a level",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

var scheduleJSON bool

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "Print every day as JSON")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	level, err := levels.Lookup(args[0])
	if err != nil {
		return err
	}
	labels, err := schedule.Year(level.Quota)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", level.Name, err)
	}
	entries := schedule.Entries(level.Name, labels)

	if scheduleJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSchedule(level.Name, entries)
	return nil
}
