// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/redact"
	"github.com/davetashner/datocms-mcp/internal/schemagen"
	"github.com/davetashner/datocms-mcp/internal/scriptstore"
	"github.com/davetashner/datocms-mcp/internal/scriptvalidate"
	"github.com/davetashner/datocms-mcp/internal/scriptworkspace"
	"github.com/davetashner/datocms-mcp/internal/toolerr"
)

func formatValidation(result scriptvalidate.Result) string {
	if result.Valid() {
		return "Structural validation passed."
	}
	lines := make([]string, len(result.Violations))
	for i, v := range result.Violations {
		lines[i] = fmt.Sprintf("%s:%d:%d: %s", v.Kind, v.Line, v.Column, v.Message)
	}
	return "Structural validation found issues:\n" + bulletList(lines)
}

func formatExecuteResult(result *scriptworkspace.ExecuteResult) string {
	var status string
	switch result.Outcome {
	case scriptworkspace.OutcomeSuccess:
		status = "succeeded"
	case scriptworkspace.OutcomeTimeout:
		status = "timed out"
	case scriptworkspace.OutcomeSignaled:
		status = fmt.Sprintf("was killed by signal %s", result.Signal)
	default:
		status = fmt.Sprintf("failed (exit code %d)", result.ExitCode)
	}

	out := fmt.Sprintf("Execution %s.", status)
	if result.Stdout != "" {
		out += "\n\n**stdout:**\n" + fence("", redact.String(result.Stdout))
	}
	if result.Stderr != "" {
		out += "\n\n**stderr:**\n" + fence("", redact.String(result.Stderr))
	}
	return out
}

// runIfRequested validates and, on success, executes the script at name
// when run is true and an API token is configured, appending the results
// to sections.
func (h *handlers) runIfRequested(ctx context.Context, name, content string, run bool, sections []string) ([]string, error) {
	if !run || h.deps.Config.APIToken == "" {
		return sections, nil
	}

	if err := h.deps.Workspace.Ensure(ctx); err != nil {
		return nil, toolerr.Executionf("prepare script workspace: %v", err)
	}
	path, cleanup, err := h.deps.Workspace.WriteScript(name, content)
	if err != nil {
		return nil, toolerr.Executionf("write script to workspace: %v", err)
	}
	defer cleanup()

	if err := h.regenerateSchema(ctx); err != nil {
		return nil, toolerr.Executionf("regenerate schema.ts: %v", err)
	}

	validation, err := h.deps.Workspace.ValidateScript(ctx, path)
	if err != nil {
		return nil, toolerr.Executionf("run tsc: %v", err)
	}
	sections = append(sections, fmt.Sprintf("## tsc\n\n%s", tscSummary(validation)))
	if !validation.Passed {
		return sections, nil
	}

	execResult, err := h.deps.Workspace.ExecuteScript(ctx, path)
	if err != nil {
		return nil, toolerr.Executionf("run script: %v", err)
	}
	sections = append(sections, fmt.Sprintf("## Run\n\n%s", formatExecuteResult(execResult)))
	return sections, nil
}

// regenerateSchema fetches the live item types (with fields, per
// schema_info's own loadModels) and the site's locales, then rewrites
// the workspace's scripts/schema.ts so a script's sanctioned `./schema`
// import resolves to per-project typed definitions rather than a stale
// or missing file.
func (h *handlers) regenerateSchema(ctx context.Context) error {
	models, err := loadModels(ctx, h)
	if err != nil {
		return fmt.Errorf("fetch item types: %w", err)
	}

	raw, err := h.deps.Client.Invoke(ctx, "Site", "Find", http.MethodGet, nil)
	if err != nil {
		return fmt.Errorf("fetch site: %w", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	site := gjson.GetBytes(data, "data")
	if !site.Exists() {
		site = gjson.ParseBytes(data)
	}
	attrs := site.Get("attributes")
	if !attrs.Exists() {
		attrs = site
	}

	var locales []string
	attrs.Get("locales").ForEach(func(_, l gjson.Result) bool {
		locales = append(locales, l.String())
		return true
	})

	itemTypes := make([]schemagen.ItemType, 0, len(models))
	for _, m := range models {
		itemTypes = append(itemTypes, schemaItemType(m))
	}

	source := schemagen.Generate(schemagen.Site{Locales: locales, ItemTypes: itemTypes})
	return h.deps.Workspace.RegenerateSchema(source)
}

// schemaItemType converts one schema_info modelEntry into the shape
// schemagen.Generate needs, reading the same field/validator data
// summarize reads for the schema_info tool.
func schemaItemType(m modelEntry) schemagen.ItemType {
	attrs := m.Raw.Get("attributes")
	if !attrs.Exists() {
		attrs = m.Raw
	}

	it := schemagen.ItemType{
		ID:       m.ID,
		APIKey:   m.APIKey,
		Sortable: attrs.Get("sortable").Bool(),
		Tree:     attrs.Get("tree").Bool(),
	}

	m.Raw.Get("fields").ForEach(func(_, f gjson.Result) bool {
		fieldType := fieldAttr(f, "field_type").String()
		field := schemagen.Field{
			APIKey:    fieldAttr(f, "api_key").String(),
			FieldType: fieldType,
			Localized: fieldAttr(f, "localized").Bool(),
		}
		switch fieldType {
		case "rich_text":
			field.BlockItemTypeIDs = validatorItemTypeIDs(f, "rich_text_blocks")
		case "single_block":
			field.BlockItemTypeIDs = validatorItemTypeIDs(f, "single_block_blocks")
		case "structured_text":
			field.BlockItemTypeIDs = validatorItemTypeIDs(f, "structured_text_blocks")
			field.InlineBlockItemTypeIDs = validatorItemTypeIDs(f, "structured_text_inline_blocks")
		}
		it.Fields = append(it.Fields, field)
		return true
	})

	return it
}

func validatorItemTypeIDs(f gjson.Result, key string) []string {
	var ids []string
	fieldAttr(f, "validators").Get(key + ".item_types").ForEach(func(_, id gjson.Result) bool {
		ids = append(ids, id.String())
		return true
	})
	return ids
}

func tscSummary(v *scriptworkspace.ValidateResult) string {
	if v.Passed {
		return "tsc passed."
	}
	return "tsc failed:\n" + fence("", redact.String(v.Output))
}

// handleCreateScript saves a new script and, when requested and possible,
// validates and runs it.
func (h *handlers) handleCreateScript(ctx context.Context, _ *mcp.CallToolRequest, input CreateScriptInput) (*mcp.CallToolResult, any, error) {
	result, _, err := h.deps.Scripts.Create(input.Name, input.Content)
	if err != nil {
		return handlerError(toolerr.Inputf("", "%v", err))
	}

	sections := []string{fmt.Sprintf("Saved %s.", input.Name), formatValidation(result)}
	sections, err = h.runIfRequested(ctx, input.Name, input.Content, input.Run, sections)
	if err != nil {
		return handlerError(err)
	}
	return textResult(joinSections(sections))
}

// handleUpdateScript applies ordered edits and, when requested and
// possible, validates and runs the result.
func (h *handlers) handleUpdateScript(ctx context.Context, _ *mcp.CallToolRequest, input UpdateScriptInput) (*mcp.CallToolResult, any, error) {
	edits := make([]scriptstore.Edit, len(input.Edits))
	for i, e := range input.Edits {
		edits[i] = scriptstore.Edit{OldStr: e.OldStr, NewStr: e.NewStr}
	}

	content, result, err := h.deps.Scripts.Update(input.Name, edits)
	if err != nil {
		return handlerError(toolerr.Inputf("", "%v", err))
	}

	sections := []string{fmt.Sprintf("Updated %s.", input.Name), formatValidation(result)}
	sections, err = h.runIfRequested(ctx, input.Name, content, input.Run, sections)
	if err != nil {
		return handlerError(err)
	}
	return textResult(joinSections(sections))
}

// handleViewScript returns a script's current content.
func (h *handlers) handleViewScript(ctx context.Context, _ *mcp.CallToolRequest, input ViewScriptInput) (*mcp.CallToolResult, any, error) {
	content, err := h.deps.Scripts.View(input.Name)
	if err != nil {
		return handlerError(toolerr.Inputf("", "%v", err))
	}
	return textResult(fence("typescript", content))
}

// handleExecuteScript validates and runs a previously created script.
func (h *handlers) handleExecuteScript(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteScriptInput) (*mcp.CallToolResult, any, error) {
	if err := requireAPIToken(h.deps.Config); err != nil {
		return handlerError(err)
	}

	content, err := h.deps.Scripts.View(input.Name)
	if err != nil {
		return handlerError(toolerr.Inputf("", "%v", err))
	}

	sections, err := h.runIfRequested(ctx, input.Name, content, true, nil)
	if err != nil {
		return handlerError(err)
	}
	return textResult(joinSections(sections))
}
