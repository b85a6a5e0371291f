// Package client declares the Go-native stand-in for the DatoCMS CMA
// client's top-level declaration file, rooted here instead of a
// TypeScript .d.ts. Client is the class internal/typeprogram looks for;
// its exported fields are the per-resource objects internal/signature
// extracts method signatures from.
//
// Every doc comment ending in a "Read more: <url>" line is deliberate: it
// is what internal/signature parses as a method's actionUrl, the only
// robust way to bind an overloaded method (List vs RawList) back to a
// single hyperschema link.
package client

import (
	"context"

	"github.com/davetashner/datocms-mcp/internal/cmaschema/apitypes"
	"github.com/davetashner/datocms-mcp/internal/cmaschema/rawapitypes"
)

// Config carries the connection parameters every resource method is
// implicitly evaluated against.
type Config struct {
	APIToken    string
	Environment string
	BaseURL     string
}

// Client is the root of the introspected type program. Field names double
// as resource namespaces: Items, ItemTypes, Uploads, Environments.
type Client struct {
	Config Config

	Items        *ItemsResource
	ItemTypes    *ItemTypesResource
	Uploads      *UploadsResource
	Environments *EnvironmentsResource
}

// ItemsResource exposes CRUD and listing operations over content records.
type ItemsResource struct{}

// List returns every item matching the given item type, flattened into
// apitypes.ItemInstance values.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/instances
func (r *ItemsResource) List(ctx context.Context, itemType string) (apitypes.ItemInstancesTargetSchema, error) {
	return nil, nil
}

// RawList is List's raw counterpart: it returns the full JSON:API document
// instead of a flattened slice.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/instances
func (r *ItemsResource) RawList(ctx context.Context, itemType string) (rawapitypes.ItemInstancesTargetSchema, error) {
	return rawapitypes.ItemInstancesTargetSchema{}, nil
}

// Find retrieves a single item by id.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/self
func (r *ItemsResource) Find(ctx context.Context, itemID string) (apitypes.ItemInstance, error) {
	return apitypes.ItemInstance{}, nil
}

// RawFind is Find's raw counterpart.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/self
func (r *ItemsResource) RawFind(ctx context.Context, itemID string) (rawapitypes.ResourceData, error) {
	return rawapitypes.ResourceData{}, nil
}

// Create creates a new item.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/create
func (r *ItemsResource) Create(ctx context.Context, body apitypes.ItemCreateSchema) (apitypes.ItemInstance, error) {
	return apitypes.ItemInstance{}, nil
}

// RawCreate is Create's raw counterpart.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/create
func (r *ItemsResource) RawCreate(ctx context.Context, body rawapitypes.ItemCreateSchema) (rawapitypes.ResourceData, error) {
	return rawapitypes.ResourceData{}, nil
}

// Update updates an existing item's attributes.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/update
func (r *ItemsResource) Update(ctx context.Context, itemID string, body apitypes.ItemUpdateSchema) (apitypes.ItemInstance, error) {
	return apitypes.ItemInstance{}, nil
}

// Destroy deletes an item.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/destroy
func (r *ItemsResource) Destroy(ctx context.Context, itemID string) (apitypes.ItemInstance, error) {
	return apitypes.ItemInstance{}, nil
}

// Publish publishes an item's current content.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item/publish
func (r *ItemsResource) Publish(ctx context.Context, itemID string) (apitypes.ItemInstance, error) {
	return apitypes.ItemInstance{}, nil
}

// ItemTypesResource exposes operations over content models.
type ItemTypesResource struct{}

// List returns every item type in the project, flattened into
// apitypes.ItemType values. Its return type,
// apitypes.ItemTypeInstancesTargetSchema, simplifies to a bare slice.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item-type/instances
func (r *ItemTypesResource) List(ctx context.Context) (apitypes.ItemTypeInstancesTargetSchema, error) {
	return nil, nil
}

// RawList is List's raw counterpart. Its return type,
// rawapitypes.ItemTypeInstancesTargetSchema, is a distinct Go type from
// apitypes.ItemTypeInstancesTargetSchema despite the identical name — the
// canonical case a name-only lookup would collapse incorrectly.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item-type/instances
func (r *ItemTypesResource) RawList(ctx context.Context) (rawapitypes.ItemTypeInstancesTargetSchema, error) {
	return rawapitypes.ItemTypeInstancesTargetSchema{}, nil
}

// Find retrieves a single item type by id or api key.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/item-type/self
func (r *ItemTypesResource) Find(ctx context.Context, itemTypeID string) (apitypes.ItemType, error) {
	return apitypes.ItemType{}, nil
}

// UploadsResource exposes operations over media assets.
type UploadsResource struct{}

// List returns every upload in the media area.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/upload/instances
func (r *UploadsResource) List(ctx context.Context) (apitypes.UploadInstancesTargetSchema, error) {
	return nil, nil
}

// RawList is List's raw counterpart.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/upload/instances
func (r *UploadsResource) RawList(ctx context.Context) (rawapitypes.UploadInstancesTargetSchema, error) {
	return rawapitypes.UploadInstancesTargetSchema{}, nil
}

// Find retrieves a single upload by id.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/upload/self
func (r *UploadsResource) Find(ctx context.Context, uploadID string) (apitypes.Upload, error) {
	return apitypes.Upload{}, nil
}

// EnvironmentsResource exposes operations over sandbox and primary
// environments.
type EnvironmentsResource struct{}

// List returns every environment for the project.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/environment/instances
func (r *EnvironmentsResource) List(ctx context.Context) (apitypes.EnvironmentInstancesTargetSchema, error) {
	return nil, nil
}

// RawList is List's raw counterpart.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/environment/instances
func (r *EnvironmentsResource) RawList(ctx context.Context) (rawapitypes.EnvironmentInstancesTargetSchema, error) {
	return rawapitypes.EnvironmentInstancesTargetSchema{}, nil
}

// Fork creates a new sandbox environment forked from an existing one.
//
// Read more: https://www.datocms.com/docs/content-management-api/resources/environment/fork
func (r *EnvironmentsResource) Fork(ctx context.Context, sourceID, newID string) (apitypes.Environment, error) {
	return apitypes.Environment{}, nil
}
