// Package rawapitypes declares the full JSON:API envelope shapes returned
// by the CMA client's "raw" methods (rawList, rawFind, rawCreate, ...).
// The ...TargetSchema return shapes and ItemCreateSchema here have
// same-named, differently-shaped counterparts in
// github.com/davetashner/datocms-mcp/internal/cmaschema/apitypes. This
// duplication is deliberate: it is the Go analog of the TypeScript
// client's ApiTypes/RawApiTypes namespace split, a hazard a correct
// introspector must not collapse by name alone.
package rawapitypes

import "time"

// ItemTypeResourceData is a single JSON:API resource object for an item
// type.
type ItemTypeResourceData struct {
	ID            string
	Type          string
	Attributes    ItemTypeAttributes
	Relationships map[string]Relationship
}

// ItemTypeAttributes holds an item type's own attributes under the
// JSON:API envelope, mirroring the shape returned on the wire before the
// simple client flattens it into apitypes.ItemType.
type ItemTypeAttributes struct {
	APIKey       string
	Name         string
	Singleton    bool
	SortableTree bool
	Modular      bool
}

// Relationship is a JSON:API relationship linkage.
type Relationship struct {
	Data any
}

// ItemTypeInstancesTargetSchema is the return shape of
// ItemTypesResource.RawList: a full JSON:API document, not a bare slice.
// Compare apitypes.ItemTypeInstancesTargetSchema, which simplifies this
// down to []apitypes.ItemType.
type ItemTypeInstancesTargetSchema struct {
	Data []ItemTypeResourceData
	Meta ResponseMeta
}

// ResourceData is a single JSON:API resource object for an item.
type ResourceData struct {
	ID            string
	Type          string
	Attributes    map[string]any
	Relationships map[string]Relationship
	Meta          ResourceMeta
}

// ResourceMeta is per-resource JSON:API metadata.
type ResourceMeta struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PublishedAt      *time.Time
	FirstPublishedAt *time.Time
	IsValid          bool
	Status           string
}

// ResponseMeta is document-level JSON:API metadata (pagination totals).
type ResponseMeta struct {
	TotalCount int
}

// ItemInstancesTargetSchema is the return shape of ItemsResource.RawList.
type ItemInstancesTargetSchema struct {
	Data     []ResourceData
	Included []any
	Meta     ResponseMeta
}

// UploadResourceData is a single JSON:API resource object for an upload.
type UploadResourceData struct {
	ID         string
	Type       string
	Attributes map[string]any
}

// UploadInstancesTargetSchema is the return shape of UploadsResource.RawList.
type UploadInstancesTargetSchema struct {
	Data []UploadResourceData
	Meta ResponseMeta
}

// EnvironmentResourceData is a single JSON:API resource object for an
// environment.
type EnvironmentResourceData struct {
	ID         string
	Type       string
	Attributes map[string]any
}

// EnvironmentInstancesTargetSchema is the return shape of
// EnvironmentsResource.RawList.
type EnvironmentInstancesTargetSchema struct {
	Data []EnvironmentResourceData
}

// ItemCreateSchema is the JSON:API request body accepted by
// ItemsResource.RawCreate.
type ItemCreateSchema struct {
	Data ResourceData
}
