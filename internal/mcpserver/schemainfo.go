// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/datocms-mcp/internal/fuzzy"
	"github.com/davetashner/datocms-mcp/internal/toolerr"
)

// blockFieldTypes lists the field types whose validators can reference a
// block model, per DatoCMS's rich_text/structured_text/single_block fields.
var blockFieldTypes = map[string]bool{
	"rich_text":        true,
	"structured_text":  true,
	"single_block":     true,
}

// linkFieldTypes lists the field types whose validators reference another
// model directly (as opposed to a block).
var linkFieldTypes = map[string]bool{
	"link":  true,
	"links": true,
}

// modelEntry is one item type as returned by the ItemTypes.List call,
// normalized so the rest of the handler doesn't care whether the client's
// generic JSON:API envelope nested attributes under "attributes" or
// inlined them.
type modelEntry struct {
	ID     string
	APIKey string
	Name   string
	Raw    gjson.Result
}

func fieldAttr(f gjson.Result, key string) gjson.Result {
	if a := f.Get("attributes"); a.Exists() {
		return a.Get(key)
	}
	return f.Get(key)
}

func loadModels(ctx context.Context, h *handlers) ([]modelEntry, error) {
	raw, err := h.deps.Client.Invoke(ctx, "ItemTypes", "List", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	items := gjson.GetBytes(data, "data")
	if !items.Exists() {
		items = gjson.ParseBytes(data)
	}

	var models []modelEntry
	items.ForEach(func(_, item gjson.Result) bool {
		attrs := item.Get("attributes")
		if !attrs.Exists() {
			attrs = item
		}
		models = append(models, modelEntry{
			ID:     item.Get("id").String(),
			APIKey: attrs.Get("api_key").String(),
			Name:   attrs.Get("name").String(),
			Raw:    item,
		})
		return true
	})
	return models, nil
}

func matchKey(m modelEntry) string {
	return m.APIKey + " " + m.Name + " " + m.ID
}

// modelResult is the serialized shape returned for a matched model.
type modelResult struct {
	ID                string        `json:"id"`
	APIKey            string        `json:"api_key"`
	Name              string        `json:"name"`
	Fields            []any         `json:"fields,omitempty"`
	Fieldsets         []any         `json:"fieldsets,omitempty"`
	Blocks            []modelResult `json:"blocks,omitempty"`
	ReverseReferences []modelResult `json:"reverse_references,omitempty"`
	BlockEmbedders    []modelResult `json:"block_embedders,omitempty"`
}

func summarize(m modelEntry, input SchemaInfoInput) modelResult {
	out := modelResult{ID: m.ID, APIKey: m.APIKey, Name: m.Name}

	details := input.FieldsDetails
	if details == "" {
		details = "basic"
	}

	allowlist := make(map[string]bool, len(input.FieldsAllowlist))
	for _, k := range input.FieldsAllowlist {
		allowlist[k] = true
	}

	m.Raw.Get("fields").ForEach(func(_, f gjson.Result) bool {
		apiKey := fieldAttr(f, "api_key").String()
		switch details {
		case "allowlist":
			if allowlist[apiKey] {
				out.Fields = append(out.Fields, f.Value())
			}
		case "complete":
			out.Fields = append(out.Fields, f.Value())
		default: // "basic"
			out.Fields = append(out.Fields, map[string]any{
				"api_key":    apiKey,
				"field_type": fieldAttr(f, "field_type").String(),
			})
		}
		return true
	})

	if input.IncludeFieldsets {
		m.Raw.Get("fieldsets").ForEach(func(_, fs gjson.Result) bool {
			out.Fieldsets = append(out.Fieldsets, fs.Value())
			return true
		})
	}

	return out
}

// blockModelIDs collects the item type ids referenced as allowed blocks by
// m's rich_text/structured_text/single_block fields.
func blockModelIDs(m modelEntry) []string {
	var ids []string
	m.Raw.Get("fields").ForEach(func(_, f gjson.Result) bool {
		fieldType := fieldAttr(f, "field_type").String()
		if !blockFieldTypes[fieldType] {
			return true
		}
		validators := fieldAttr(f, "validators")
		for _, key := range []string{"rich_text_blocks", "structured_text_blocks", "single_block_blocks"} {
			validators.Get(key + ".item_types").ForEach(func(_, id gjson.Result) bool {
				ids = append(ids, id.String())
				return true
			})
		}
		return true
	})
	return ids
}

// referencesModel reports whether m has a link/links field validated to
// point at targetID.
func referencesModel(m modelEntry, targetID string) bool {
	found := false
	m.Raw.Get("fields").ForEach(func(_, f gjson.Result) bool {
		fieldType := fieldAttr(f, "field_type").String()
		if !linkFieldTypes[fieldType] {
			return true
		}
		fieldAttr(f, "validators").Get("item_item_type.item_types").ForEach(func(_, id gjson.Result) bool {
			if id.String() == targetID {
				found = true
			}
			return !found
		})
		return !found
	})
	return found
}

// embedsAsBlock reports whether m allows targetID as a block reference.
func embedsAsBlock(m modelEntry, targetID string) bool {
	for _, id := range blockModelIDs(m) {
		if id == targetID {
			return true
		}
	}
	return false
}

func findModel(models []modelEntry, id string) (modelEntry, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return modelEntry{}, false
}

// handleSchemaInfo fuzzy-searches the project's item type schema and
// returns matching models enriched per the requested flags.
func (h *handlers) handleSchemaInfo(ctx context.Context, _ *mcp.CallToolRequest, input SchemaInfoInput) (*mcp.CallToolResult, any, error) {
	if err := requireAPIToken(h.deps.Config); err != nil {
		return handlerError(err)
	}

	models, err := loadModels(ctx, h)
	if err != nil {
		return handlerError(toolerr.Upstreamf("fetch item types: %v", err))
	}

	var matched []modelEntry
	if input.Query == "" {
		matched = models
	} else {
		for _, m := range fuzzy.Rank(input.Query, models, matchKey) {
			matched = append(matched, m.Value)
		}
	}

	results := make([]modelResult, 0, len(matched))
	for _, m := range matched {
		mr := summarize(m, input)

		if input.IncludeBlocks {
			seen := map[string]bool{m.ID: true}
			var expand func(parent modelEntry) []modelResult
			expand = func(parent modelEntry) []modelResult {
				var out []modelResult
				for _, id := range blockModelIDs(parent) {
					if seen[id] {
						continue
					}
					seen[id] = true
					if block, ok := findModel(models, id); ok {
						br := summarize(block, input)
						br.Blocks = expand(block)
						out = append(out, br)
					}
				}
				return out
			}
			mr.Blocks = expand(m)
		}

		if input.IncludeReverseRefs {
			for _, candidate := range models {
				if candidate.ID == m.ID {
					continue
				}
				if referencesModel(candidate, m.ID) {
					mr.ReverseReferences = append(mr.ReverseReferences, summarize(candidate, input))
				}
			}
		}

		if input.IncludeBlockEmbedders {
			for _, candidate := range models {
				if candidate.ID == m.ID {
					continue
				}
				if embedsAsBlock(candidate, m.ID) {
					mr.BlockEmbedders = append(mr.BlockEmbedders, summarize(candidate, input))
				}
			}
		}

		results = append(results, mr)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, nil, err
	}

	maxBytes := h.deps.Config.MaxOutputBytes
	if maxBytes <= 0 {
		maxBytes = defaultExecuteResultMaxBytes
	}
	return textResult(truncate(string(data), maxBytes))
}
