// ABOUTME: CLI command for moving data between storage backends.
// ABOUTME: Copies every state key from one backend to another.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy habit data from one storage backend to another.

Backends are sqlite, badger, and charm. Both use the configured data
directory and namespace. The destination must be empty unless --force
is given.

USAGE:

  habits migrate --from sqlite --to badger --dry-run   # Preview
  habits migrate --from sqlite --to charm              # Copy to Charm Cloud
  habits config set backend charm                      # Then switch over`,
	Annotations: map[string]string{skipApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		if migrateFrom == "memory" || migrateTo == "memory" {
			return fmt.Errorf("the memory backend cannot be migrated")
		}

		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("open destination: %w", err)
		}
		defer dst.Close()

		ns := cfg.GetNamespace()
		has, err := storage.HasState(src, ns)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		if !has {
			color.Yellow("Nothing to migrate: %s has no habit data", migrateFrom)
			return nil
		}

		if existing, err := storage.HasState(dst, ns); err != nil {
			return fmt.Errorf("read destination: %w", err)
		} else if existing && !migrateForce {
			return fmt.Errorf("%s already has habit data (use --force to overwrite)", migrateTo)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy habit data from %s to %s\n", migrateFrom, migrateTo)
			return nil
		}

		summary, err := storage.MigrateData(src, dst, ns)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Printf("  %s\n", faint.Sprintf("%d keys, %d bytes, %d absent", summary.Keys, summary.Bytes, summary.Skipped))
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "sqlite", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "badger", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data already in the destination")
	rootCmd.AddCommand(migrateCmd)
}
