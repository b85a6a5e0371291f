// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/cmaclient"
	"github.com/davetashner/datocms-mcp/internal/jsonpath"
	"github.com/davetashner/datocms-mcp/internal/signature"
	"github.com/davetashner/datocms-mcp/internal/toolerr"
)

const defaultExecuteResultMaxBytes = 8192

// handleExecuteReadonly invokes a GET-mapped client method.
func (h *handlers) handleExecuteReadonly(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteInput) (*mcp.CallToolResult, any, error) {
	return h.handleExecute(ctx, input, true)
}

// handleExecuteDestructive invokes a POST/PUT/DELETE-mapped client method.
func (h *handlers) handleExecuteDestructive(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteInput) (*mcp.CallToolResult, any, error) {
	return h.handleExecute(ctx, input, false)
}

// handleExecute enforces that the requested method's HTTP verb matches the
// calling tool variant (readonly vs. destructive), then dispatches through
// cmaclient, filters the result with an optional jsonpath selector, and
// caps the returned text.
func (h *handlers) handleExecute(ctx context.Context, input ExecuteInput, wantReadonly bool) (*mcp.CallToolResult, any, error) {
	if err := requireAPIToken(h.deps.Config); err != nil {
		return handlerError(err)
	}

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

	resources, err := h.deps.Resources.Get()
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch resource manifest: %v", err))
	}
	endpoint, ok := resources.FindEndpointByMethodName(input.Resource, input.Method)
	if !ok {
		return handlerError(toolerr.Inputf("call resource to list valid methods", "no manifest entry for method %q on resource %q", input.Method, input.Resource))
	}

	if cmaclient.IsReadOnlyMethod(endpoint.Method) != wantReadonly {
		variant := "resource_action_readonly_method_execute"
		if wantReadonly {
			variant = "resource_action_destructive_method_execute"
		}
		return handlerError(toolerr.Inputf(
			"call "+variant+" instead",
			"method %q on resource %q does not belong to this execution tool", input.Method, input.Resource,
		))
	}

	result, err := h.deps.Client.Invoke(ctx, input.Resource, input.Method, endpoint.Method, input.Args)
	if err != nil {
		return handlerError(toolerr.Upstreamf("invoke %s.%s: %v", input.Resource, input.Method, err))
	}

	if input.JSONPath != "" {
		filtered, ok, err := jsonpath.Select(result, input.JSONPath)
		if err != nil {
			return handlerError(toolerr.Inputf("check the json_path syntax", "%v", err))
		}
		if !ok {
			return textResult("null")
		}
		result = filtered
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, nil, err
	}

	maxBytes := h.deps.Config.MaxOutputBytes
	if maxBytes <= 0 {
		maxBytes = defaultExecuteResultMaxBytes
	}
	return textResult(truncate(string(data), maxBytes))
}
