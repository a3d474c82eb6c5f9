package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/archive"
	"github.com/johns/sessiondoc/internal/history"
	"github.com/johns/sessiondoc/internal/session"
)

var (
	parseFormat   string
	parseName     string
	parseOutput   string
	parseDiff     string
	parseArchive  bool
	parseNoRecord bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <log>...",
	Short: "Parse log files and generate a report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format (structured, yaml, narrative, plain)")
	parseCmd.Flags().StringVarP(&parseName, "name", "n", "", "session name")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseDiff, "diff", "", "unified diff file for file modifications")
	parseCmd.Flags().BoolVar(&parseArchive, "archive", false, "compress source logs into the archive dir")
	parseCmd.Flags().BoolVar(&parseNoRecord, "no-record", false, "skip recording the session in history")
	rootCmd.AddCommand(parseCmd)
}

// loadSession builds an accumulator from log paths plus an optional
// diff file. Shared by parse, summary and stats.
func loadSession(name string, logs []string, diffPath string) (*session.Session, error) {
	if name == "" {
		name = cfg.Report.SessionName
	}
	s := session.New(name)

	for _, path := range logs {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read log %s: %w", path, err)
		}
		s.Load(string(data))
		slog.Debug("parsed log", "path", path)
	}

	if diffPath != "" {
		data, err := os.ReadFile(diffPath)
		if err != nil {
			return nil, fmt.Errorf("read diff %s: %w", diffPath, err)
		}
		s.LoadDiff(string(data))
		slog.Debug("loaded diff", "path", diffPath)
	}

	return s, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSession(parseName, args, parseDiff)
	if err != nil {
		return err
	}

	format := parseFormat
	if format == "" {
		format = cfg.Report.Format
	}

	out, err := s.Render(format)
	if err != nil {
		return err
	}

	if parseOutput != "" {
		if err := writeReportFile(parseOutput, out); err != nil {
			return err
		}
		fmt.Printf("report saved to: %s\n", parseOutput)
	} else {
		fmt.Print(out)
	}

	if cfg.History.Enabled && !parseNoRecord {
		if err := recordHistory(s, parseOutput); err != nil {
			slog.Warn("record history", "err", err)
		}
	}

	if parseArchive || cfg.Archive.Compress {
		for _, path := range args {
			dest, err := archive.Archive(path, cfg.Archive.Dir)
			if err != nil {
				slog.Warn("archive log", "path", path, "err", err)
				continue
			}
			slog.Debug("archived log", "path", path, "dest", dest)
		}
	}

	return nil
}

// writeReportFile writes rendered report text, creating parent dirs.
func writeReportFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func recordHistory(s *session.Session, reportPath string) error {
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(s.ID(), s.Summary(), reportPath, time.Now())
}
