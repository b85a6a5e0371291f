// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/datocms-mcp/internal/mcpserver"
)

// workspaceCmd is the parent command for script-workspace subcommands.
var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Inspect or reset the on-disk script sandbox",
	Long: `The script sandbox is the npm/pnpm project the execute_script and
create_script/update_script (run=true) tools materialize scripts into
before running them with tsx. These commands inspect and reset it without
going through the MCP protocol.`,
}

var workspaceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the script sandbox location and install state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolvedConfig()
		if err != nil {
			return exitError(ExitConfigError, "%v", err)
		}
		ws := mcpserver.NewDeps(cfg).Workspace

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "dir:              %s\n", ws.Dir())
		fmt.Fprintf(w, "package manager:  %s\n", cfg.PackageManager)
		if ws.Installed() {
			fmt.Fprintln(w, "node_modules:     "+color.GreenString("installed"))
		} else {
			fmt.Fprintln(w, "node_modules:     "+color.YellowString("not installed (installs lazily on first script run)"))
		}
		return nil
	},
}

var workspaceResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the script sandbox",
	Long:  "Remove the script sandbox directory entirely. The next script run rematerializes package.json/tsconfig.json/runner.ts and reinstalls node_modules from scratch.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolvedConfig()
		if err != nil {
			return exitError(ExitConfigError, "%v", err)
		}
		ws := mcpserver.NewDeps(cfg).Workspace
		if err := ws.Reset(); err != nil {
			return fmt.Errorf("resetting workspace: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", ws.Dir())
		return nil
	},
}

func init() {
	workspaceCmd.AddCommand(workspaceStatusCmd)
	workspaceCmd.AddCommand(workspaceResetCmd)
}
