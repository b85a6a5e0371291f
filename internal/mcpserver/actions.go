// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/docrender"
	"github.com/davetashner/datocms-mcp/internal/signature"
	"github.com/davetashner/datocms-mcp/internal/toolerr"
	"github.com/davetashner/datocms-mcp/internal/typedeps"
)

// handleResourceAction describes one hyperschema link: its documentation,
// rendered examples, and the signatures of every client method whose
// action URL binds back to that link's docUrl.
func (h *handlers) handleResourceAction(ctx context.Context, _ *mcp.CallToolRequest, input ResourceActionInput) (*mcp.CallToolResult, any, error) {
	prog, err := h.deps.TypeProgram()
	if err != nil {
		return nil, nil, err
	}
	resources, err := h.deps.Resources.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch resource manifest: %v", err))
	}
	endpoint, ok := resources.FindEndpointByRel(input.Resource, input.Action)
	if !ok {
		return handlerError(toolerr.Inputf("call resource to list valid actions", "unknown action %q on resource %q", input.Action, input.Resource))
	}

	schema, err := h.deps.Hyperschema.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch hyperschema: %v", err))
	}
	link, ok := schema.FindLink(endpoint.JSONApiType, input.Action)
	if !ok {
		return handlerError(toolerr.Inputf("", "hyperschema has no link %q for %q", input.Action, endpoint.JSONApiType))
	}

	examples := make(map[string]docrender.Example, len(link.Examples))
	for _, ex := range link.Examples {
		examples[ex.ID] = docrender.Example{
			ID:           ex.ID,
			Title:        ex.Title,
			Description:  ex.Description,
			RequestCode:  ex.RequestCode,
			ResponseCode: ex.ResponseCode,
		}
	}

	var out []string
	out = append(out, fmt.Sprintf("# %s.%s", input.Resource, input.Action))
	if endpoint.Deprecated {
		out = append(out, "**Deprecated.**")
	}
	out = append(out, fmt.Sprintf("`%s %s`", endpoint.Method, endpoint.DocURL))
	if link.Description != "" {
		out = append(out, docrender.Render(link.Description, examples, input.ExpandDetails))
	}

	var sigLines []string
	for _, method := range prog.ResourceMethods(input.Resource) {
		sig, err := signature.Extract(prog, input.Resource, method)
		if err != nil {
			return nil, nil, err
		}
		if sig == nil || sig.ActionURL != link.DocURL {
			continue
		}
		sigLines = append(sigLines, formatOverload(method, sig.Overloads[0]))
	}
	if len(sigLines) > 0 {
		out = append(out, "## Methods")
		out = append(out, fence("go", joinSections(sigLines)))
	}

	return textResult(joinSections(out))
}

// handleResourceActionMethod shows one method's full signature with its
// parameter and return types expanded to the requested depth.
func (h *handlers) handleResourceActionMethod(ctx context.Context, _ *mcp.CallToolRequest, input ResourceActionMethodInput) (*mcp.CallToolResult, any, error) {
	prog, err := h.deps.TypeProgram()
	if err != nil {
		return nil, nil, err
	}

	sig, err := signature.Extract(prog, input.Resource, input.Method)
	if err != nil {
		return nil, nil, err
	}
	if sig == nil {
		return handlerError(toolerr.Inputf("call resource to list valid methods", "unknown method %q on resource %q", input.Method, input.Resource))
	}

	result, err := typedeps.Expand(prog, sig.ReferencedTypeSymbols, typedeps.Options{
		MaxDepth:    input.MaxDepth,
		ExpandTypes: input.ExpandTypes,
	})
	if err != nil {
		return nil, nil, err
	}

	var out []string
	out = append(out, fence("go", formatSignature(sig)))
	if result.ExpandedTypes != "" {
		out = append(out, "## Types")
		out = append(out, fence("go", result.ExpandedTypes))
	}
	if len(result.NotExpandedTypes) > 0 {
		out = append(out, "## Not expanded (depth cap reached)")
		out = append(out, bulletList(result.NotExpandedTypes))
	}

	return textResult(joinSections(out))
}
