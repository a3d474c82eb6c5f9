package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats <log>...",
	Short: "Show tool usage statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession("", args, "")
		if err != nil {
			return err
		}
		r := s.Report()

		fmt.Printf("\n=== Tool Usage Statistics ===\n\n")

		fmt.Println("By Category:")
		fmt.Println(strings.Repeat("-", 40))
		for _, row := range metrics.CategoryBreakdown(r.ToolUsages) {
			bar := strings.Repeat("#", int(row.Percent/5))
			fmt.Printf("  %-12s %4d (%5.1f%%) %s\n", row.Category, row.Count, row.Percent, bar)
		}

		fmt.Println("\nTop Tools:")
		fmt.Println(strings.Repeat("-", 40))
		total := len(r.ToolUsages)
		for _, row := range metrics.TopTools(r.ToolUsages, cfg.Report.TopTools) {
			pct := 0.0
			if total > 0 {
				pct = float64(row.Count) / float64(total) * 100
			}
			fmt.Printf("  %-30s %4d (%5.1f%%)\n", row.Name, row.Count, pct)
		}

		fmt.Printf("\nTotal Tool Calls: %d\n\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
