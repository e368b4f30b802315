// ABOUTME: CLI commands for viewing and changing configuration.
// ABOUTME: Reads and writes the JSON config file without opening storage.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change habits configuration.

KEYS:

  backend       sqlite (default), badger, charm, or memory
  data_dir      where sqlite and badger keep their files
  namespace     prefix for stored keys and the Charm database name
  debounce_ms   delay before changes are written (0 writes immediately)
  log_level     debug, info, warn, or error
  charm_host    Charm server for the charm backend

The config file lives at ~/.config/habits/config.json.`,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective configuration",
	Annotations: map[string]string{skipApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(faint.Sprint(config.GetConfigPath()))
		for _, key := range config.Keys {
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", padRight(key, 12), value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Change a configuration value",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Reload so flag overrides are not persisted.
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
