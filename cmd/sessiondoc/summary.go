package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryName string

var summaryCmd = &cobra.Command{
	Use:   "summary <log>...",
	Short: "Print a condensed session summary to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(summaryName, args, "")
		if err != nil {
			return err
		}

		sum := s.Summary()
		fmt.Printf("\n=== %s Summary ===\n", sum.SessionName)
		fmt.Printf("Duration:       %.1f minutes\n", sum.DurationMinutes)
		fmt.Printf("Tool Calls:     %d\n", sum.ToolCalls)
		fmt.Printf("Files Touched:  %d\n", sum.FilesTouched)
		fmt.Printf("Errors:         %d (%d resolved)\n", sum.Errors, sum.ErrorsResolved)
		fmt.Printf("Decisions:      %d\n", sum.Decisions)
		fmt.Printf("Milestones:     %d\n\n", sum.Milestones)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryName, "name", "n", "", "session name")
	rootCmd.AddCommand(summaryCmd)
}
