package resourceschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResourcesFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resources.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sampleResources = `[
	{
		"namespace": "items",
		"jsonApiType": "item",
		"resourceClassName": "Item",
		"endpoints": [
			{"rel": "instances", "name": "list", "rawName": "rawList", "method": "GET", "urlTemplate": "/items{?filter*}", "urlPlaceholders": ["filter"], "responseTypeName": "ItemInstancesTargetSchema", "paginatedResponse": true, "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/instances"},
			{"rel": "self", "name": "find", "rawName": "rawFind", "method": "GET", "urlTemplate": "/items/{item_id}", "urlPlaceholders": ["item_id"], "responseTypeName": "ItemSelfTargetSchema", "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/self"},
			{"rel": "batch-destroy", "rawName": "rawBatchDestroy", "method": "POST", "urlTemplate": "/items/batch-destroy", "urlPlaceholders": [], "deprecated": true, "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/batch-destroy"}
		]
	},
	{
		"namespace": "uploads",
		"jsonApiType": "upload",
		"resourceClassName": "Upload",
		"endpoints": [
			{"rel": "instances", "name": "list", "rawName": "rawList", "method": "GET", "urlTemplate": "/uploads", "urlPlaceholders": [], "docUrl": "https://www.datocms.com/docs/content-management-api/resources/upload/instances"}
		]
	}
]`

func TestLoader_FlattensEndpointsByNamespaceAndType(t *testing.T) {
	path := writeResourcesFile(t, sampleResources)
	loader := New(path)

	resources, err := loader.Get()
	require.NoError(t, err)

	byNS, ok := resources.FindByNamespace("items")
	require.True(t, ok)
	assert.Len(t, byNS, 3)

	byType, ok := resources.FindByJsonApiType("upload")
	require.True(t, ok)
	assert.Len(t, byType, 1)
	assert.Equal(t, "uploads", byType[0].Namespace)
}

func TestLoader_FindEndpointByRel(t *testing.T) {
	path := writeResourcesFile(t, sampleResources)
	loader := New(path)
	resources, err := loader.Get()
	require.NoError(t, err)

	ep, ok := resources.FindEndpointByRel("items", "self")
	require.True(t, ok)
	assert.Equal(t, "GET", ep.Method)

	_, ok = resources.FindEndpointByRel("items", "does-not-exist")
	assert.False(t, ok)
}

func TestLoader_FindEndpointByMethodName(t *testing.T) {
	path := writeResourcesFile(t, sampleResources)
	loader := New(path)
	resources, err := loader.Get()
	require.NoError(t, err)

	ep, ok := resources.FindEndpointByMethodName("items", "List")
	require.True(t, ok)
	assert.Equal(t, "instances", ep.Rel)

	ep, ok = resources.FindEndpointByMethodName("items", "RawFind")
	require.True(t, ok)
	assert.Equal(t, "self", ep.Rel)

	ep, ok = resources.FindEndpointByMethodName("items", "RawBatchDestroy")
	require.True(t, ok)
	assert.Equal(t, "batch-destroy", ep.Rel)

	_, ok = resources.FindEndpointByMethodName("items", "Bogus")
	assert.False(t, ok)
}

func TestEndpoint_Expand(t *testing.T) {
	path := writeResourcesFile(t, sampleResources)
	loader := New(path)
	resources, err := loader.Get()
	require.NoError(t, err)

	ep, ok := resources.FindEndpointByRel("items", "self")
	require.True(t, ok)

	path2, err := ep.Expand(map[string]string{"item_id": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "/items/abc123", path2)
}

func TestLoader_MemoizesAcrossCalls(t *testing.T) {
	path := writeResourcesFile(t, sampleResources)
	loader := New(path)

	first, err := loader.Get()
	require.NoError(t, err)
	second, err := loader.Get()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoader_FromBytesMatchesFromFile(t *testing.T) {
	loader := NewFromBytes([]byte(sampleResources))
	resources, err := loader.Get()
	require.NoError(t, err)

	ep, ok := resources.FindEndpointByRel("items", "self")
	require.True(t, ok)
	assert.Equal(t, "GET", ep.Method)
}

func TestLoader_MissingFileReturnsError(t *testing.T) {
	loader := New(filepath.Join(t.TempDir(), "missing.json"))
	_, err := loader.Get()
	assert.Error(t, err)
}

func TestLoader_PopulatesManifestFields(t *testing.T) {
	path := writeResourcesFile(t, sampleResources)
	loader := New(path)
	resources, err := loader.Get()
	require.NoError(t, err)

	list, ok := resources.FindEndpointByRel("items", "instances")
	require.True(t, ok)
	assert.Equal(t, "Item", list.ResourceClassName)
	assert.Equal(t, "list", list.Name)
	assert.Equal(t, "rawList", list.RawName)
	assert.Equal(t, "ItemInstancesTargetSchema", list.ResponseTypeName)
	assert.True(t, list.PaginatedResponse)
	assert.False(t, list.Deprecated)

	batchDestroy, ok := resources.FindEndpointByRel("items", "batch-destroy")
	require.True(t, ok)
	assert.Empty(t, batchDestroy.Name, "endpoint may have no simple form")
	assert.Equal(t, "rawBatchDestroy", batchDestroy.RawName)
	assert.True(t, batchDestroy.Deprecated)
}

func TestLoader_InvalidURLTemplateReturnsError(t *testing.T) {
	path := writeResourcesFile(t, `[{"namespace":"bad","jsonApiType":"bad","endpoints":[{"rel":"self","method":"GET","urlTemplate":"/{unclosed"}]}]`)
	loader := New(path)
	_, err := loader.Get()
	assert.Error(t, err)
}
