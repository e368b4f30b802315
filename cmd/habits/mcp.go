// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to manage your habits and todos through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "habits": {
        "command": "habits",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_habit         Create a habit
  edit_habit        Rename or change a habit
  complete_habit    Mark a habit done today
  delete_habit      Delete a habit and its todos
  list_habits       List habits with progress
  missed_days       Days a habit was skipped
  completion_rate   Average completion percentage
  add_todo          Add a general or habit todo
  list_todos        Todos grouped by due date
  toggle_todo       Flip a todo's done state
  update_todo       Replace a todo's text
  delete_todo       Delete a todo

AVAILABLE RESOURCES:

  habits://today      Done and pending habits for today
  habits://summary    Completion rate, counts, and open todos`,
	Annotations: map[string]string{autoConfirm: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(habitsApp)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
