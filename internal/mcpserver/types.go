// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

// ResourcesInput is the input schema for the resources tool: it takes no
// arguments, listing every resource the introspected client exposes.
type ResourcesInput struct{}

// ResourceInput is the input schema for the resource tool.
type ResourceInput struct {
	Resource      string   `json:"resource" jsonschema:"Resource namespace, e.g. Items or Uploads"`
	ExpandDetails []string `json:"expand_details,omitempty" jsonschema:"Summary texts of <details> blocks/examples to expand in full; omit for a collapsed overview"`
}

// ResourceActionInput is the input schema for the resource_action tool.
type ResourceActionInput struct {
	Resource      string   `json:"resource" jsonschema:"Resource namespace, e.g. Items"`
	Action        string   `json:"action" jsonschema:"Hyperschema link rel for the action, e.g. instances, self, create"`
	ExpandDetails []string `json:"expand_details,omitempty" jsonschema:"Summary texts of <details> blocks/examples to expand in full"`
}

// ResourceActionMethodInput is the input schema for the
// resource_action_method tool.
type ResourceActionMethodInput struct {
	Resource    string   `json:"resource" jsonschema:"Resource namespace, e.g. Items"`
	Method      string   `json:"method" jsonschema:"Method name on the resource, e.g. List, RawList, Find, Create"`
	MaxDepth    *int     `json:"max_depth,omitempty" jsonschema:"Type dependency expansion depth (default 2, 0 for none)"`
	ExpandTypes []string `json:"expand_types,omitempty" jsonschema:"Type names to expand fully regardless of depth; use * to expand all"`
}

// ExecuteInput is the input schema shared by the
// resource_action_readonly_method_execute and
// resource_action_destructive_method_execute tools.
type ExecuteInput struct {
	Resource string `json:"resource" jsonschema:"Resource namespace, e.g. Items"`
	Method   string `json:"method" jsonschema:"Method name on the resource, e.g. List, Create, Destroy"`
	Args     []any  `json:"args,omitempty" jsonschema:"Positional arguments to pass to the method call"`
	JSONPath string `json:"json_path,omitempty" jsonschema:"Optional JSONPath-like selector applied to the result before it is returned"`
}

// SchemaInfoInput is the input schema for the schema_info tool.
type SchemaInfoInput struct {
	Query                 string   `json:"query,omitempty" jsonschema:"Fuzzy search term matched against model api_key/name/id; omit to list every model"`
	IncludeFieldsets      bool     `json:"include_fieldsets,omitempty" jsonschema:"Include each model's fieldsets"`
	IncludeBlocks         bool     `json:"include_blocks,omitempty" jsonschema:"Recursively include nested block models referenced by rich_text/structured_text/single_block fields"`
	IncludeReverseRefs    bool     `json:"include_reverse_references,omitempty" jsonschema:"Include models that reference the matched model via a link/links field"`
	IncludeBlockEmbedders bool     `json:"include_block_embedders,omitempty" jsonschema:"Include models that embed the matched model as a block"`
	FieldsDetails         string   `json:"fields_details,omitempty" jsonschema:"How much field detail to include: basic, complete, or allowlist"`
	FieldsAllowlist       []string `json:"fields_allowlist,omitempty" jsonschema:"Field api_keys to include when fields_details is allowlist"`
}

// CreateScriptInput is the input schema for the create_script tool.
type CreateScriptInput struct {
	Name    string `json:"name" jsonschema:"Script URI, e.g. script://sync-authors.ts"`
	Content string `json:"content" jsonschema:"TypeScript source for the script"`
	Run     bool   `json:"run,omitempty" jsonschema:"If an API token is configured, tsc-validate and execute the script after saving"`
}

// EditInput is one ordered {oldStr, newStr} replacement.
type EditInput struct {
	OldStr string `json:"old_str" jsonschema:"Text to find; must occur exactly once at the time this edit is applied"`
	NewStr string `json:"new_str" jsonschema:"Replacement text"`
}

// UpdateScriptInput is the input schema for the update_script tool.
type UpdateScriptInput struct {
	Name  string      `json:"name" jsonschema:"Script URI to update"`
	Edits []EditInput `json:"edits" jsonschema:"Ordered list of replacements to apply"`
	Run   bool        `json:"run,omitempty" jsonschema:"If an API token is configured, tsc-validate and execute the script after saving"`
}

// ViewScriptInput is the input schema for the view_script tool.
type ViewScriptInput struct {
	Name string `json:"name" jsonschema:"Script URI to view"`
}

// ExecuteScriptInput is the input schema for the execute_script tool.
type ExecuteScriptInput struct {
	Name string `json:"name" jsonschema:"Script URI to validate and execute"`
}
