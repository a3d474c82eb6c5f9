package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/record"
	"github.com/johns/sessiondoc/internal/report"
)

var (
	milestoneDesc   string
	milestoneImpact string
	milestoneReport string
)

var milestoneCmd = &cobra.Command{
	Use:   "milestone <title>",
	Short: "Append a milestone to a saved structured report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		impact, err := record.ParseImpact(milestoneImpact)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(milestoneReport)
		if err != nil {
			return fmt.Errorf("read report %s: %w", milestoneReport, err)
		}

		var r report.Report
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("parse report %s: %w", milestoneReport, err)
		}

		r.Milestones = append(r.Milestones, record.Milestone{
			ID:          fmt.Sprintf("MS_%04d", len(r.Milestones)+1),
			Title:       args[0],
			Description: milestoneDesc,
			Impact:      impact,
			Timestamp:   time.Now(),
		})
		r.Metrics.MilestonesAchieved = len(r.Milestones)

		out, err := json.MarshalIndent(&r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(milestoneReport, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		fmt.Printf("added milestone: %s\n", args[0])
		return nil
	},
}

func init() {
	milestoneCmd.Flags().StringVarP(&milestoneDesc, "description", "d", "", "milestone description")
	milestoneCmd.Flags().StringVarP(&milestoneImpact, "impact", "i", "minor", "impact level (minor, major, critical)")
	milestoneCmd.Flags().StringVarP(&milestoneReport, "report", "r", "", "structured report file to update")
	milestoneCmd.MarkFlagRequired("report")
	rootCmd.AddCommand(milestoneCmd)
}
