// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/config"
	"github.com/davetashner/datocms-mcp/internal/redact"
	"github.com/davetashner/datocms-mcp/internal/toolerr"
)

// textResult wraps s as a single successful text content block.
func textResult(s string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: s}},
	}, nil, nil
}

// handlerError converts a classified toolerr.Error into a text result with
// IsError set, so the process keeps serving subsequent calls; any other
// error is an invariant violation and is returned as-is, aborting only the
// in-flight call.
func handlerError(err error) (*mcp.CallToolResult, any, error) {
	var te *toolerr.Error
	if !errors.As(err, &te) {
		return nil, nil, err
	}

	msg := redact.String(te.Error())
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("**%s error:** %s", te.Kind, msg)}},
		IsError: true,
	}, nil, nil
}

// requireAPIToken guards a tool that needs a live client, returning a
// remediation error when no API token is configured.
func requireAPIToken(cfg config.Config) error {
	if cfg.APIToken == "" {
		return toolerr.Inputf(
			"set DATOCMS_API_TOKEN and reconnect, or use the documentation-only tools",
			"this tool requires a configured DatoCMS API token",
		)
	}
	return nil
}

const defaultTruncationSuffix = "\n…[truncated]"

// truncate caps s at maxBytes, appending the truncation sentinel exactly
// once when content was dropped. maxBytes <= 0 disables the cap.
func truncate(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}
	return s[:maxBytes] + defaultTruncationSuffix
}

func fence(lang, body string) string {
	var b strings.Builder
	b.WriteString("```")
	b.WriteString(lang)
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n```")
	return b.String()
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
