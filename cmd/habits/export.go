// ABOUTME: CLI commands for exporting and importing habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export habit data",
	Long: `Export habits, missed days, and todos in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Markdown tables (for documentation/sharing)

EXAMPLES:

  habits export json                  # Export all data as JSON
  habits export json -o backup.json   # Save to file
  habits export markdown              # Tables for sharing`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		export := habitsApp.Export()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = export.JSON()
		case "yaml":
			data, err = export.YAML()
		case "markdown", "md":
			data = []byte(export.Markdown())
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import habit data from a JSON or YAML export",
	Long: `Import habit data from a file written by 'habits export json' or
'habits export yaml'.

This REPLACES all current habits, missed days, and todos.

EXAMPLES:

  habits import backup.json
  habits import backup.yaml --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		data, err := storage.ParseExport(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if !confirm(fmt.Sprintf("Replace all data with %d habits and %d todos from %s?",
			len(data.Habits), len(data.Todos)+len(data.HabitTodos), filename)) {
			fmt.Println("Canceled.")
			return nil
		}

		if err := habitsApp.Import(data); err != nil {
			return err
		}
		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  %s\n", faint.Sprintf("%d habits, %d todos, %d habit todos",
			len(data.Habits), len(data.Todos), len(data.HabitTodos)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
