// Command sessiondoc generates session summary reports from free-form
// transcripts. All parsing and rendering lives in the internal
// packages; this layer only handles arguments and file I/O.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/config"
)

const version = "0.1.0"

var (
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "sessiondoc",
	Short:   "Generate session summaries from tool usage logs",
	Long: `sessiondoc extracts tool invocations, file modifications, errors and
decisions from session transcripts and renders them into summary
reports (structured JSON/YAML, narrative markdown, or plain text).`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sessiondoc: %v\n", err)
		os.Exit(1)
	}
}
