package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/history"
)

var (
	historyLimit int
	historyName  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated session summaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.History.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var entries []history.Entry
		if historyName != "" {
			entries, err = store.ListByName(historyName, historyLimit)
		} else {
			entries, err = store.List(historyLimit)
		}
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no sessions recorded")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %-24s %4d tools  %3d files  %3d errors (%d resolved)  %.1fm\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.Name,
				e.ToolCalls, e.FilesTouched, e.Errors, e.ErrorsResolved,
				e.DurationMinutes)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max sessions to list (0 = all)")
	historyCmd.Flags().StringVar(&historyName, "name", "", "only list sessions with this name")
	rootCmd.AddCommand(historyCmd)
}
