// Package apitypes declares the simplified, flattened record shapes
// returned by the CMA client's "simple" methods (list, find, create, ...).
// It plays the role of the real client's `ApiTypes` TypeScript namespace:
// the ...TargetSchema return shapes and ItemCreateSchema have same-named
// counterparts in
// github.com/davetashner/datocms-mcp/internal/cmaschema/rawapitypes that
// describe the full JSON:API envelope the simple type is flattened from.
// The two packages are never merged — keeping them distinct source files
// is what lets internal/typeprogram and internal/signature disambiguate
// "which ItemTypeInstancesTargetSchema did this method return" by Go type
// identity instead of by name.
package apitypes

import "time"

// ItemType describes a content model.
type ItemType struct {
	ID          string
	APIKey      string
	Name        string
	Singleton   bool
	SortableTree bool
	Modular     bool
	Fields      []Field
}

// Field describes a single field of an ItemType.
type Field struct {
	ID         string
	APIKey     string
	FieldType  string
	Localized  bool
	Label      string
	Validators map[string]any
}

// ItemInstance is a single content record, flattened: its field values are
// merged directly onto the struct via Attributes instead of living under a
// nested "data.attributes" envelope.
type ItemInstance struct {
	ID         string
	ItemType   string
	Attributes map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Meta       ItemMeta
}

// ItemMeta carries item-level metadata not part of the record's own fields.
type ItemMeta struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PublishedAt      *time.Time
	FirstPublishedAt *time.Time
	IsValid          bool
	Status           string
}

// ItemTypeInstancesTargetSchema is the return shape of ItemTypesResource.List:
// a flat slice of item types. Its RawApiTypes counterpart wraps the same
// data in a JSON:API {data, meta} envelope — see
// rawapitypes.ItemTypeInstancesTargetSchema. Declared as a defined type
// (not an alias) so it is its own *types.Named distinct from []ItemType.
type ItemTypeInstancesTargetSchema []ItemType

// ItemInstancesTargetSchema is the return shape of ItemsResource.List.
type ItemInstancesTargetSchema []ItemInstance

// Upload describes an uploaded media asset.
type Upload struct {
	ID       string
	Path     string
	Format   string
	Size     int64
	Width    *int
	Height   *int
	MimeType string
	Alt      string
	Title    string
}

// UploadInstancesTargetSchema is the return shape of UploadsResource.List.
type UploadInstancesTargetSchema []Upload

// Environment describes a sandbox or primary environment.
type Environment struct {
	ID        string
	Primary   bool
	CreatedAt time.Time
}

// EnvironmentInstancesTargetSchema is the return shape of EnvironmentsResource.List.
type EnvironmentInstancesTargetSchema []Environment

// ItemCreateSchema is the request body accepted by ItemsResource.Create.
type ItemCreateSchema struct {
	ItemType   string
	Attributes map[string]any
}

// ItemUpdateSchema is the request body accepted by ItemsResource.Update.
type ItemUpdateSchema struct {
	Attributes map[string]any
}
