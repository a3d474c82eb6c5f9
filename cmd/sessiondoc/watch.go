package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/watch"
)

var (
	watchFormat string
	watchName   string
	watchOutput string
)

var watchCmd = &cobra.Command{
	Use:   "watch <log>",
	Short: "Watch a log file and regenerate the report on change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		regen := func(path string) error {
			s, err := loadSession(watchName, []string{path}, "")
			if err != nil {
				return err
			}
			format := watchFormat
			if format == "" {
				format = cfg.Report.Format
			}
			out, err := s.Render(format)
			if err != nil {
				return err
			}
			if watchOutput != "" {
				return writeReportFile(watchOutput, out)
			}
			fmt.Print(out)
			return nil
		}

		// Render once up front so the report exists before the first change.
		if err := regen(args[0]); err != nil {
			return err
		}

		err := watch.Watch(ctx, args[0], regen)
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "output format")
	watchCmd.Flags().StringVarP(&watchName, "name", "n", "", "session name")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file path (default: stdout)")
	rootCmd.AddCommand(watchCmd)
}
