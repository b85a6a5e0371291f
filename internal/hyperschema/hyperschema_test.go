package hyperschema

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoader_ResolvesRefAndParsesEntity(t *testing.T) {
	doc := `{
		"definitions": {
			"item": {
				"title": "Item",
				"description": "A content record",
				"properties": {
					"data": {"properties": {"type": {"enum": ["item"]}}}
				},
				"links": [
					{"$ref": "#/definitions/item/definitions/instances_link"}
				],
				"definitions": {
					"instances_link": {
						"rel": "instances",
						"href": "/items",
						"method": "GET",
						"title": "List",
						"documentationUrl": "https://www.datocms.com/docs/content-management-api/resources/item/instances"
					}
				}
			}
		}
	}`
	srv := serveJSON(t, doc)

	loader := New(srv.URL)
	schema, err := loader.Get()
	require.NoError(t, err)

	entity, ok := schema.FindEntity("item")
	require.True(t, ok)
	assert.Equal(t, "Item", entity.Title)
	require.Len(t, entity.Links, 1)
	assert.Equal(t, "instances", entity.Links[0].Rel)
	assert.Equal(t, "GET", entity.Links[0].Method)

	link, ok := schema.FindLink("item", "instances")
	require.True(t, ok)
	assert.Equal(t, "https://www.datocms.com/docs/content-management-api/resources/item/instances", link.DocURL)
}

func TestLoader_ParsesLinkExamples(t *testing.T) {
	doc := `{
		"definitions": {
			"item": {
				"properties": {"data": {"properties": {"type": {"enum": ["item"]}}}},
				"links": [{
					"rel": "instances",
					"method": "GET",
					"documentationUrl": "https://example.com/docs",
					"documentation": {
						"javascript": {
							"examples": [
								{"id": "ex1", "title": "List all items", "request": "client.items.list()", "response": "[]"}
							]
						}
					}
				}]
			}
		}
	}`
	srv := serveJSON(t, doc)
	loader := New(srv.URL)
	schema, err := loader.Get()
	require.NoError(t, err)

	link, ok := schema.FindLink("item", "instances")
	require.True(t, ok)
	require.Len(t, link.Examples, 1)
	assert.Equal(t, "ex1", link.Examples[0].ID)
	assert.Equal(t, "client.items.list()", link.Examples[0].RequestCode)
}

func TestLoader_FindEntityMissReturnsFalse(t *testing.T) {
	srv := serveJSON(t, `{"definitions": {}}`)
	loader := New(srv.URL)
	schema, err := loader.Get()
	require.NoError(t, err)

	_, ok := schema.FindEntity("does-not-exist")
	assert.False(t, ok)
}

func TestLoader_FindLinkMissReturnsFalse(t *testing.T) {
	doc := `{
		"definitions": {
			"upload": {
				"properties": {"type": {"enum": ["upload"]}},
				"links": []
			}
		}
	}`
	srv := serveJSON(t, doc)
	loader := New(srv.URL)
	schema, err := loader.Get()
	require.NoError(t, err)

	_, ok := schema.FindLink("upload", "no-such-rel")
	assert.False(t, ok)
}

func TestLoader_MemoizesAcrossCalls(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"definitions": {}}`))
	}))
	defer srv.Close()

	loader := New(srv.URL)
	_, err := loader.Get()
	require.NoError(t, err)
	_, err = loader.Get()
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestLoader_FetchErrorLeavesCacheEmptyForRetry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"definitions": {}}`))
	}))
	defer srv.Close()

	loader := New(srv.URL)
	_, err := loader.Get()
	require.Error(t, err)

	schema, err := loader.Get()
	require.NoError(t, err)
	assert.NotNil(t, schema)
	assert.Equal(t, 2, hits)
}

func TestJSONPointerToGJSONPath(t *testing.T) {
	assert.Equal(t, "a.b.c", jsonPointerToGJSONPath("#/a/b/c"))
	assert.Equal(t, `a\.b`, jsonPointerToGJSONPath("#/a.b"))
	assert.Equal(t, "a/b", jsonPointerToGJSONPath("#/a~1b"))
}
