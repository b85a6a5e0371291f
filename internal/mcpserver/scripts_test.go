package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/datocms-mcp/internal/cmaclient"
	"github.com/davetashner/datocms-mcp/internal/config"
	"github.com/davetashner/datocms-mcp/internal/scriptworkspace"
)

func scriptHandlersWithToken(t *testing.T) *handlers {
	t.Helper()
	deps := testDeps(t)
	deps.Config = config.Config{APIToken: "test-token"}
	return &handlers{deps: deps}
}

const validAutomationScript = `
import { Client } from '@datocms/cma-client-node';

export default async function run(client: Client) {
  await client.items.list('article');
}
`

func TestHandleCreateScript_SavesAndReportsValidation(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{
		Name:    "script://sync.ts",
		Content: validAutomationScript,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "Saved script://sync.ts.")
	assert.Contains(t, text, "Structural validation passed.")
}

func TestHandleCreateScript_DuplicateNameIsInputError(t *testing.T) {
	h := mustHandlers(t)

	_, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{Name: "script://sync.ts", Content: validAutomationScript})
	require.NoError(t, err)

	result, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{Name: "script://sync.ts", Content: validAutomationScript})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "already exists")
}

func TestHandleCreateScript_RunWithoutAPITokenSkipsExecution(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{
		Name:    "script://sync.ts",
		Content: validAutomationScript,
		Run:     true,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.NotContains(t, text, "## tsc")
	assert.NotContains(t, text, "## Run")
}

func TestHandleUpdateScript_AppliesEditsAndReturnsUpdatedValidation(t *testing.T) {
	h := mustHandlers(t)

	_, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{Name: "script://sync.ts", Content: validAutomationScript})
	require.NoError(t, err)

	result, _, err := h.handleUpdateScript(context.Background(), nil, UpdateScriptInput{
		Name: "script://sync.ts",
		Edits: []EditInput{
			{OldStr: "client.items.list('article')", NewStr: "client.items.list('page')"},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "Updated script://sync.ts.")

	view, _, err := h.handleViewScript(context.Background(), nil, ViewScriptInput{Name: "script://sync.ts"})
	require.NoError(t, err)
	assert.Contains(t, view.Content[0].(*mcp.TextContent).Text, "client.items.list('page')")
}

func TestHandleUpdateScript_MissingOldStrIsInputError(t *testing.T) {
	h := mustHandlers(t)
	_, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{Name: "script://sync.ts", Content: validAutomationScript})
	require.NoError(t, err)

	result, _, err := h.handleUpdateScript(context.Background(), nil, UpdateScriptInput{
		Name:  "script://sync.ts",
		Edits: []EditInput{{OldStr: "does not exist anywhere", NewStr: "x"}},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "String not found")
}

func TestHandleUpdateScript_UnknownScriptIsInputError(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleUpdateScript(context.Background(), nil, UpdateScriptInput{
		Name:  "script://missing.ts",
		Edits: []EditInput{{OldStr: "a", NewStr: "b"}},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "not found")
}

func TestHandleViewScript_UnknownScriptIsInputError(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleViewScript(context.Background(), nil, ViewScriptInput{Name: "script://missing.ts"})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "not found")
}

func TestHandleViewScript_ReturnsFencedContent(t *testing.T) {
	h := mustHandlers(t)
	_, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{Name: "script://sync.ts", Content: validAutomationScript})
	require.NoError(t, err)

	result, _, err := h.handleViewScript(context.Background(), nil, ViewScriptInput{Name: "script://sync.ts"})
	require.NoError(t, err)
	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "```typescript")
	assert.Contains(t, text, "client.items.list")
}

func TestRegenerateSchema_WritesLiveDefinitions(t *testing.T) {
	deps := testDeps(t)
	deps.Config = config.Config{APIToken: "test-token"}
	deps.Client = cmaclient.NewMockClient(
		cmaclient.MockResponse{Result: testItemTypesPayload()},
		cmaclient.MockResponse{Result: map[string]any{
			"data": map[string]any{
				"attributes": map[string]any{"locales": []any{"en", "it"}},
			},
		}},
	)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o700))
	deps.Workspace = scriptworkspace.New(scriptworkspace.Config{Dir: dir})
	h := &handlers{deps: deps}

	require.NoError(t, h.regenerateSchema(context.Background()))

	schema, err := os.ReadFile(filepath.Join(dir, "scripts", "schema.ts"))
	require.NoError(t, err)
	text := string(schema)
	assert.Contains(t, text, "ItemTypeDefinition")
	assert.Contains(t, text, `"en" | "it"`)
	assert.Contains(t, text, "export type Article")
	assert.Contains(t, text, "blocks: ContentBlock")
}

func TestHandleExecuteScript_NoAPITokenIsInputError(t *testing.T) {
	h := mustHandlers(t)
	_, _, err := h.handleCreateScript(context.Background(), nil, CreateScriptInput{Name: "script://sync.ts", Content: validAutomationScript})
	require.NoError(t, err)

	result, _, err := h.handleExecuteScript(context.Background(), nil, ExecuteScriptInput{Name: "script://sync.ts"})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "requires a configured DatoCMS API token")
}

func TestHandleExecuteScript_UnknownScriptIsInputError(t *testing.T) {
	h := scriptHandlersWithToken(t)

	result, _, err := h.handleExecuteScript(context.Background(), nil, ExecuteScriptInput{Name: "script://missing.ts"})
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "not found")
}
