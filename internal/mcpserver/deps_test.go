package mcpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davetashner/datocms-mcp/internal/config"
	"github.com/davetashner/datocms-mcp/internal/hyperschema"
	"github.com/davetashner/datocms-mcp/internal/resourceschema"
	"github.com/davetashner/datocms-mcp/internal/scriptstore"
	"github.com/davetashner/datocms-mcp/internal/typeprogram"
)

const testResourcesManifest = `[
  {
    "namespace": "Items",
    "jsonApiType": "item",
    "resourceClassName": "Item",
    "endpoints": [
      {"rel": "instances", "name": "list", "rawName": "rawList", "method": "GET", "urlTemplate": "/items", "urlPlaceholders": [], "responseTypeName": "ItemInstancesTargetSchema", "paginatedResponse": true, "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/instances"},
      {"rel": "self", "name": "find", "rawName": "rawFind", "method": "GET", "urlTemplate": "/items/{item_id}", "urlPlaceholders": ["item_id"], "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/self"},
      {"rel": "create", "name": "create", "rawName": "rawCreate", "method": "POST", "urlTemplate": "/items", "urlPlaceholders": [], "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/create"},
      {"rel": "destroy", "name": "destroy", "rawName": "rawDestroy", "method": "DELETE", "urlTemplate": "/items/{item_id}", "urlPlaceholders": ["item_id"], "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/destroy"},
      {"rel": "batch-destroy", "rawName": "rawBatchDestroy", "method": "POST", "urlTemplate": "/items/batch-destroy", "urlPlaceholders": [], "deprecated": true, "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item/batch-destroy"}
    ]
  },
  {
    "namespace": "ItemTypes",
    "jsonApiType": "item_type",
    "endpoints": [
      {"rel": "instances", "method": "GET", "urlTemplate": "/item-types", "urlPlaceholders": [], "docUrl": "https://www.datocms.com/docs/content-management-api/resources/item-type/instances"}
    ]
  }
]`

const testHyperschemaDoc = `{
  "definitions": {
    "item": {
      "title": "Item",
      "description": "A content record",
      "properties": {"data": {"properties": {"type": {"enum": ["item"]}}}},
      "links": [
        {"$ref": "#/definitions/item/definitions/instances_link"},
        {"$ref": "#/definitions/item/definitions/batch_destroy_link"}
      ],
      "definitions": {
        "instances_link": {
          "rel": "instances",
          "href": "/items",
          "method": "GET",
          "title": "List",
          "description": "Returns paginated items.",
          "documentationUrl": "https://www.datocms.com/docs/content-management-api/resources/item/instances"
        },
        "batch_destroy_link": {
          "rel": "batch-destroy",
          "href": "/items/batch-destroy",
          "method": "POST",
          "title": "Batch destroy",
          "description": "Destroys many items at once.",
          "documentationUrl": "https://www.datocms.com/docs/content-management-api/resources/item/batch-destroy"
        }
      }
    },
    "item_type": {
      "title": "Item Type",
      "description": "A content model",
      "properties": {"data": {"properties": {"type": {"enum": ["item_type"]}}}},
      "links": []
    }
  }
}`

// serveHyperschema starts an httptest server returning body for every
// request, standing in for the production hyperschema endpoint.
func serveHyperschema(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testDeps builds a Deps wired to a fixture hyperschema server, a fixture
// resource manifest, and the real type program built from
// internal/cmaschema/client, with no API token configured.
func testDeps(t *testing.T) *Deps {
	t.Helper()
	typeprogram.ResetForTest()

	srv := serveHyperschema(t, testHyperschemaDoc)
	return &Deps{
		Hyperschema: hyperschema.New(srv.URL),
		Resources:   resourceschema.NewFromBytes([]byte(testResourcesManifest)),
		TypeProgram: typeprogram.Get,
		Scripts:     scriptstore.New(),
		Config:      config.Config{},
	}
}

func mustHandlers(t *testing.T) *handlers {
	t.Helper()
	return &handlers{deps: testDeps(t)}
}
