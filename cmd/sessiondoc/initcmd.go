package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johns/sessiondoc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [output-dir]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir := cfg.OutputDir
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve output dir: %w", err)
			}
			outputDir = abs
		}

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		path, err := config.WriteDefault(outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("config written to: %s\n", path)
		fmt.Printf("reports will be saved under: %s\n", config.CompressHome(outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
