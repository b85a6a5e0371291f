// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/datocms-mcp/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running datocms-mcp as an MCP server, exposing DatoCMS documentation, scripting, and execution tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing datocms-mcp's tool set:
  - resources, resource, resource_action, resource_action_method: discover
    the DatoCMS client's resource/action/method surface from its hyperschema
  - create_script, update_script, view_script: author small TypeScript
    automation scripts against the client
  - resource_action_readonly_method_execute,
    resource_action_destructive_method_execute, schema_info,
    execute_script: run methods and scripts against a live project

The execution and schema_info tools only register when an API token is
configured; without one, only the documentation and script authoring tools
are available.

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to call datocms-mcp tools directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolvedConfig()
		if err != nil {
			return exitError(ExitConfigError, "%v", err)
		}
		deps := mcpserver.NewDeps(cfg)
		return mcpserver.Run(cmd.Context(), Version, &mcp.StdioTransport{}, deps)
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
