// ABOUTME: Root Cobra command for habits CLI.
// ABOUTME: Handles config, logger, and app lifecycle via PersistentPre/PostRunE.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/app"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/days"
	"github.com/harperreed/habits/internal/todos"
	"github.com/spf13/cobra"
)

// Command annotations read by the root hooks.
const (
	// skipApp marks commands that must not open the store.
	skipApp = "skip-app"
	// autoConfirm marks commands whose stdin is not a terminal.
	autoConfirm = "auto-confirm"
)

var (
	cfg       *config.Config
	logger    *log.Logger
	habitsApp *app.App

	// clock is swapped out in tests.
	clock days.Clock = days.SystemClock{}

	assumeYes    bool
	logLevelFlag string
	backendFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Personal habit and todo tracker",
	Long: `Habits is a CLI tool for building habits one day at a time.

Each habit has a target number of days. Mark it done once per day and
habits counts down the remaining days, tracks the days you missed, and
keeps a todo list for each habit alongside your general todos.

QUICK START:

  $ habits add "Run" "5k around the park" 30   # Track a habit for 30 days
  $ habits done Run                            # Mark today as done
  $ habits list                                # Progress for every habit
  $ habits missed Run                          # Days you skipped
  $ habits show Run                            # Month calendar

TODOS:

  $ habits todo add "Buy running shoes" --habit Run
  $ habits todo add "Call mom" --due 2025-06-01
  $ habits todo list

MCP INTEGRATION:

  Run 'habits mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "habits": { "command": "habits", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/habits/habits.db by default.
  Use 'habits config set backend <sqlite|badger|charm|memory>' to switch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Annotations[skipApp] == "true" {
			return nil
		}
		return openApp(assumeYes || cmd.Annotations[autoConfirm] == "true")
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "override the configured storage backend")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		if err := cfg.Set("backend", backendFlag); err != nil {
			return err
		}
	}
	if logLevelFlag != "" {
		if err := cfg.Set("log_level", logLevelFlag); err != nil {
			return err
		}
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "habits",
		Level:  cfg.GetLogLevel(),
	})
	return nil
}

func openApp(yes bool) error {
	var confirmer todos.Confirmer = todos.ConfirmFunc(promptConfirm)
	if yes {
		confirmer = todos.AlwaysConfirm
	}

	var err error
	habitsApp, err = app.Open(cfg, app.Options{
		Clock:   clock,
		Confirm: confirmer,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	return nil
}

// closeApp flushes pending writes and closes storage. Safe to call twice.
func closeApp() error {
	if habitsApp == nil {
		return nil
	}
	err := habitsApp.Close()
	habitsApp = nil
	return err
}

// promptConfirm asks on stdin and accepts y or yes.
func promptConfirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// confirm gates CLI-level destructive actions the same way the stores do.
func confirm(prompt string) bool {
	return assumeYes || promptConfirm(prompt)
}
