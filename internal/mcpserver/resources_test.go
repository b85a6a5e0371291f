package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleResources_ListsNamespacesWithEntityTitle(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleResources(context.Background(), nil, ResourcesInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "**Items** — Item")
	assert.Contains(t, text, "**ItemTypes** — Item Type")
}

func TestHandleResource_UnknownResourceIsInputError(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleResource(context.Background(), nil, ResourceInput{Resource: "Bogus"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "input error")
	assert.Contains(t, text, `unknown resource "Bogus"`)
}

func TestHandleResource_DescribesEntityAndActions(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleResource(context.Background(), nil, ResourceInput{Resource: "Items"})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "# Items")
	assert.Contains(t, text, "A content record")
	assert.Contains(t, text, "## Actions")
	assert.Contains(t, text, "`instances` — GET")
	assert.Contains(t, text, "`self` — GET")
}

func TestHandleResource_MarksDeprecatedActions(t *testing.T) {
	h := mustHandlers(t)

	result, _, err := h.handleResource(context.Background(), nil, ResourceInput{Resource: "Items"})
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "`batch-destroy` — POST")
	assert.Contains(t, text, "`batch-destroy` — POST https://www.datocms.com/docs/content-management-api/resources/item/batch-destroy (deprecated)")
	assert.NotContains(t, text, "`instances` — GET https://www.datocms.com/docs/content-management-api/resources/item/instances (deprecated)")
}
