// Package schemagen emits the per-project schema.ts a script's "./schema"
// import resolves to: one TypeScript ItemTypeDefinition per model, built
// from a live site fetch, in the same unadorned string-building style the
// teacher's internal/docs markdown generator uses.
package schemagen

import (
	"fmt"
	"sort"
	"strings"
)

// Field is one model field as returned by the CMA's fields-included site
// fetch.
type Field struct {
	APIKey                 string
	FieldType              string
	Localized              bool
	BlockItemTypeIDs       []string // rich_text, structured_text, single_block
	InlineBlockItemTypeIDs []string // structured_text only
}

// ItemType is one model.
type ItemType struct {
	ID       string
	APIKey   string
	Sortable bool
	Tree     bool
	Fields   []Field
}

// Site is the subset of a fetched site this generator needs.
type Site struct {
	Locales   []string
	ItemTypes []ItemType
}

// Generate emits the schema.ts source for site.
func Generate(site Site) string {
	names := itemTypeNames(site.ItemTypes)

	var b strings.Builder
	b.WriteString("// Code generated by datocms-mcp schemagen. DO NOT EDIT.\n\n")
	b.WriteString("import type { ItemTypeDefinition } from '@datocms/cma-client';\n\n")
	b.WriteString("type EnvironmentSettings = { locales: " + localeUnion(site.Locales) + " };\n\n")

	for _, it := range site.ItemTypes {
		writeItemType(&b, it, names)
	}

	return b.String()
}

func localeUnion(locales []string) string {
	if len(locales) == 0 {
		return "string"
	}
	quoted := make([]string, len(locales))
	for i, l := range locales {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return strings.Join(quoted, " | ")
}

func writeItemType(b *strings.Builder, it ItemType, names map[string]string) {
	fmt.Fprintf(b, "export type %s = ItemTypeDefinition<EnvironmentSettings, %q, {\n", names[it.ID], it.ID)

	for _, f := range it.Fields {
		fmt.Fprintf(b, "  %s: %s;\n", f.APIKey, fieldTypeLiteral(f, names))
	}
	if it.Sortable {
		b.WriteString("  position: { type: 'integer' };\n")
	}
	if it.Tree {
		b.WriteString("  parent_id: { type: 'link' };\n")
	}

	b.WriteString("}>;\n\n")
}

func fieldTypeLiteral(f Field, blockNames map[string]string) string {
	parts := []string{fmt.Sprintf("type: %q", f.FieldType)}
	if f.Localized {
		parts = append(parts, "localized: true")
	}

	switch f.FieldType {
	case "rich_text", "single_block":
		parts = append(parts, "blocks: "+blockUnion(f.BlockItemTypeIDs, blockNames))
	case "structured_text":
		parts = append(parts, "blocks: "+blockUnion(f.BlockItemTypeIDs, blockNames))
		parts = append(parts, "inline_blocks: "+blockUnion(f.InlineBlockItemTypeIDs, blockNames))
	}

	return "{ " + strings.Join(parts, "; ") + " }"
}

func blockUnion(ids []string, names map[string]string) string {
	var resolved []string
	for _, id := range ids {
		if n, ok := names[id]; ok {
			resolved = append(resolved, n)
		}
	}
	if len(resolved) == 0 {
		return "never"
	}
	return strings.Join(resolved, " | ")
}

// itemTypeNames maps each item type's id to its PascalCase(api_key), the
// name the generated TypeScript type is exported under.
func itemTypeNames(itemTypes []ItemType) map[string]string {
	names := make(map[string]string, len(itemTypes))
	for _, it := range itemTypes {
		names[it.ID] = pascalCase(it.APIKey)
	}
	return names
}

func pascalCase(apiKey string) string {
	parts := strings.FieldsFunc(apiKey, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Model"
	}
	return b.String()
}

// ResolveOutputDir decides where schema.ts belongs: at the root of a
// detected npm/pnpm/lerna/nx workspace so every package shares one
// generated schema, or directly under dir when dir is not part of one.
// Go and Rust workspace conventions are not probed: a script sandbox is
// always a Node project, so a schema.ts only ever needs a JS/TS monorepo
// root, never a go.work or Cargo.toml one.
func ResolveOutputDir(dir string) (string, error) {
	layout, err := detectMonorepo(dir)
	if err != nil {
		return "", fmt.Errorf("schemagen: detect monorepo layout: %w", err)
	}
	if layout == nil {
		return dir, nil
	}
	return layout.Root, nil
}

// SortedItemTypeAPIKeys returns the item types' api_keys sorted, useful for
// deterministic test assertions and for callers that want a stable
// display order rather than the site's own item type order.
func SortedItemTypeAPIKeys(site Site) []string {
	keys := make([]string, len(site.ItemTypes))
	for i, it := range site.ItemTypes {
		keys[i] = it.APIKey
	}
	sort.Strings(keys)
	return keys
}
