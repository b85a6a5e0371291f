// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/docrender"
	"github.com/davetashner/datocms-mcp/internal/toolerr"
)

// handleResources lists every resource namespace the client exposes,
// cross-referenced against the hyperschema's entity title for a one-line
// description of each.
func (h *handlers) handleResources(ctx context.Context, _ *mcp.CallToolRequest, _ ResourcesInput) (*mcp.CallToolResult, any, error) {
	prog, err := h.deps.TypeProgram()
	if err != nil {
		return nil, nil, err
	}
	resources, err := h.deps.Resources.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch resource manifest: %v", err))
	}
	schema, err := h.deps.Hyperschema.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch hyperschema: %v", err))
	}

	names := prog.ResourceNames()
	sort.Strings(names)

	items := make([]string, 0, len(names))
	for _, name := range names {
		desc := ""
		if endpoints, ok := resources.FindByNamespace(name); ok && len(endpoints) > 0 {
			if entity, ok := schema.FindEntity(endpoints[0].JSONApiType); ok {
				desc = entity.Title
			}
		}
		if desc == "" {
			items = append(items, fmt.Sprintf("**%s**", name))
			continue
		}
		items = append(items, fmt.Sprintf("**%s** — %s", name, desc))
	}

	return textResult(bulletList(items))
}

// handleResource describes one resource: its entity documentation plus the
// list of actions (hyperschema links) available on it.
func (h *handlers) handleResource(ctx context.Context, _ *mcp.CallToolRequest, input ResourceInput) (*mcp.CallToolResult, any, error) {
	prog, err := h.deps.TypeProgram()
	if err != nil {
		return nil, nil, err
	}
	if prog.ResourceField(input.Resource) == nil {
		return handlerError(toolerr.Inputf("call resources to list valid resource names", "unknown resource %q", input.Resource))
	}

	resources, err := h.deps.Resources.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch resource manifest: %v", err))
	}
	endpoints, ok := resources.FindByNamespace(input.Resource)
	if !ok || len(endpoints) == 0 {
		return handlerError(toolerr.Inputf("call resources to list valid resource names", "no manifest entry for resource %q", input.Resource))
	}

	schema, err := h.deps.Hyperschema.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch hyperschema: %v", err))
	}
	entity, ok := schema.FindEntity(endpoints[0].JSONApiType)
	if !ok {
		return handlerError(toolerr.Inputf("", "hyperschema has no entity for resource %q", input.Resource))
	}

	var b []string
	b = append(b, fmt.Sprintf("# %s", input.Resource))
	if entity.Title != "" {
		b = append(b, entity.Title)
	}
	if entity.Description != "" {
		examples := map[string]docrender.Example{}
		b = append(b, docrender.Render(entity.Description, examples, input.ExpandDetails))
	}

	b = append(b, "\n## Actions")
	actionLines := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		line := fmt.Sprintf("`%s` — %s %s", ep.Rel, ep.Method, ep.DocURL)
		if ep.Deprecated {
			line += " (deprecated)"
		}
		actionLines = append(actionLines, line)
	}
	b = append(b, bulletList(actionLines))

	return textResult(joinSections(b))
}

func joinSections(sections []string) string {
	out := ""
	for i, s := range sections {
		if i > 0 {
			out += "\n\n"
		}
		out += s
	}
	return out
}
