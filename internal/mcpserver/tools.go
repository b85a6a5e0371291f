// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools registers the documentation and script authoring tools
// unconditionally and the execution/mutation tools only when
// deps.Config.APIToken is set.
func registerTools(server *mcp.Server, deps *Deps) {
	h := &handlers{deps: deps}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resources",
		Description: "List every resource namespace the DatoCMS Content Management API client exposes, sorted by name, each with its hyperschema entity title. The list is flat; resources are not grouped.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, h.handleResources)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resource",
		Description: "Describe one resource: its entity documentation and the list of actions (hyperschema links) available on it.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, h.handleResource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resource_action",
		Description: "Describe one action on a resource: its hyperschema documentation, request/response examples, and the client method signatures bound to it.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, h.handleResourceAction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resource_action_method",
		Description: "Show the full method signature for one client method, with its parameter and return types expanded to the requested depth.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, h.handleResourceActionMethod)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_script",
		Description: "Create a new TypeScript automation script against the DatoCMS client. Optionally validate and run it immediately if run=true and an API token is configured.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: false, DestructiveHint: boolPtr(false)},
	}, h.handleCreateScript)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_script",
		Description: "Apply ordered find/replace edits to an existing script. Optionally validate and run it immediately if run=true and an API token is configured.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: false, DestructiveHint: boolPtr(false)},
	}, h.handleUpdateScript)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_script",
		Description: "View a previously created script's current content.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, h.handleViewScript)

	if deps.Config.APIToken == "" {
		return
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resource_action_readonly_method_execute",
		Description: "Invoke a read-only (GET-mapped) client method against the live DatoCMS project and return its result, optionally filtered by a JSONPath-like selector.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, h.handleExecuteReadonly)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resource_action_destructive_method_execute",
		Description: "Invoke a mutating (POST/PUT/DELETE-mapped) client method against the live DatoCMS project and return its result. Creates, updates, publishes, destroys, or forks real project state.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: false, DestructiveHint: boolPtr(true), OpenWorldHint: boolPtr(true)},
	}, h.handleExecuteDestructive)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "schema_info",
		Description: "Fuzzy-search the live project's item type schema and return matching models with their fields, fieldsets, nested blocks, and references.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, OpenWorldHint: boolPtr(true)},
	}, h.handleSchemaInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_script",
		Description: "Validate and run a previously created script against the live project.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: false, DestructiveHint: boolPtr(true), OpenWorldHint: boolPtr(true)},
	}, h.handleExecuteScript)
}
