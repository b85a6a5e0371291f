// Package resourceschema reads the client's shipped resources.json,
// flattens its {entity, endpoints[]} structure so every endpoint carries
// its parent entity's identity, and memoizes the result.
package resourceschema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yosida95/uritemplate/v3"

	"github.com/davetashner/datocms-mcp/internal/memoize"
)

type rawEntity struct {
	Namespace         string        `json:"namespace"`
	JSONApiType       string        `json:"jsonApiType"`
	ResourceClassName string        `json:"resourceClassName"`
	Endpoints         []rawEndpoint `json:"endpoints"`
}

type rawEndpoint struct {
	Rel               string   `json:"rel"`
	Name              string   `json:"name"`
	RawName           string   `json:"rawName"`
	Method            string   `json:"method"`
	URLTemplate       string   `json:"urlTemplate"`
	URLPlaceholders   []string `json:"urlPlaceholders"`
	RequestTypeName   string   `json:"requestTypeName"`
	QueryTypeName     string   `json:"queryTypeName"`
	ResponseTypeName  string   `json:"responseTypeName"`
	PaginatedResponse bool     `json:"paginatedResponse"`
	Deprecated        bool     `json:"deprecated"`
	DocURL            string   `json:"docUrl"`
}

// Endpoint is one flattened action: an entity's endpoint plus the parent
// entity's namespace and JSON:API type.
type Endpoint struct {
	Namespace         string
	JSONApiType       string
	ResourceClassName string
	Rel               string
	// Name is the endpoint's optional simple display name (e.g. "list");
	// empty when the manifest only names the raw form.
	Name string
	// RawName is the endpoint's mandatory name as declared by the raw
	// client method (e.g. "rawList"). Every endpoint has one; Name may be
	// empty when the raw form is the only one exposed.
	RawName string
	Method  string
	URLPlaceholders   []string
	RequestTypeName   string
	QueryTypeName     string
	ResponseTypeName  string
	PaginatedResponse bool
	Deprecated        bool
	DocURL            string

	template *uritemplate.Template
}

// Expand fills the endpoint's URL template from values, returning the
// concrete request path.
func (e Endpoint) Expand(values map[string]string) (string, error) {
	vars := uritemplate.Values{}
	for k, v := range values {
		vars.Set(k, uritemplate.String(v))
	}
	path, err := e.template.Expand(vars)
	if err != nil {
		return "", fmt.Errorf("resourceschema: expand %s.%s: %w", e.Namespace, e.Rel, err)
	}
	return path, nil
}

// Resources is the flattened, memoized view of resources.json.
type Resources struct {
	byNamespace   map[string][]Endpoint
	byJSONApiType map[string][]Endpoint
}

// FindByNamespace returns every endpoint belonging to namespace.
func (r *Resources) FindByNamespace(namespace string) ([]Endpoint, bool) {
	e, ok := r.byNamespace[namespace]
	return e, ok
}

// FindByJsonApiType returns every endpoint belonging to the entity whose
// JSON:API type is jsonAPIType.
func (r *Resources) FindByJsonApiType(jsonAPIType string) ([]Endpoint, bool) {
	e, ok := r.byJSONApiType[jsonAPIType]
	return e, ok
}

// FindEndpointByRel returns the single endpoint named rel within
// namespace.
func (r *Resources) FindEndpointByRel(namespace, rel string) (Endpoint, bool) {
	for _, e := range r.byNamespace[namespace] {
		if e.Rel == rel {
			return e, true
		}
	}
	return Endpoint{}, false
}

// FindEndpointByMethodName returns the endpoint within namespace whose
// simple or raw client method name matches methodName, case-insensitively.
// methodName is expected in its Go spelling (e.g. "List", "RawList"); the
// manifest stores names in lowerCamelCase, so the comparison folds case
// rather than requiring an exact match.
func (r *Resources) FindEndpointByMethodName(namespace, methodName string) (Endpoint, bool) {
	for _, e := range r.byNamespace[namespace] {
		if e.Name != "" && strings.EqualFold(e.Name, methodName) {
			return e, true
		}
		if e.RawName != "" && strings.EqualFold(e.RawName, methodName) {
			return e, true
		}
	}
	return Endpoint{}, false
}

// Loader lazily loads and memoizes Resources from a resources.json file, or
// from an in-memory copy of one.
type Loader struct {
	path string
	data []byte
	load memoize.Thunk[*Resources]
}

// New builds a Loader reading resources.json from path.
func New(path string) *Loader {
	l := &Loader{path: path}
	l.load = memoize.New(l.fetch)
	return l
}

// NewFromBytes builds a Loader against an already-loaded resources.json
// payload, for embedding the client's shipped manifest directly into the
// binary instead of reading it from disk.
func NewFromBytes(data []byte) *Loader {
	l := &Loader{data: data}
	l.load = memoize.New(l.fetch)
	return l
}

// Get returns the flattened resource manifest, loading it on the first
// call and returning the cached result thereafter.
func (l *Loader) Get() (*Resources, error) {
	return l.load()
}

func (l *Loader) fetch() (*Resources, error) {
	data := l.data
	if data == nil {
		var err error
		data, err = os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("resourceschema: read %s: %w", l.path, err)
		}
	}

	var entities []rawEntity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("resourceschema: decode manifest: %w", err)
	}

	r := &Resources{
		byNamespace:   map[string][]Endpoint{},
		byJSONApiType: map[string][]Endpoint{},
	}

	for _, ent := range entities {
		for _, raw := range ent.Endpoints {
			tmpl, err := uritemplate.New(raw.URLTemplate)
			if err != nil {
				return nil, fmt.Errorf("resourceschema: parse urlTemplate %q for %s.%s: %w", raw.URLTemplate, ent.Namespace, raw.Rel, err)
			}
			ep := Endpoint{
				Namespace:         ent.Namespace,
				JSONApiType:       ent.JSONApiType,
				ResourceClassName: ent.ResourceClassName,
				Rel:               raw.Rel,
				Name:              raw.Name,
				RawName:           raw.RawName,
				Method:            strings.ToUpper(raw.Method),
				URLPlaceholders:   raw.URLPlaceholders,
				RequestTypeName:   raw.RequestTypeName,
				QueryTypeName:     raw.QueryTypeName,
				ResponseTypeName:  raw.ResponseTypeName,
				PaginatedResponse: raw.PaginatedResponse,
				Deprecated:        raw.Deprecated,
				DocURL:            raw.DocURL,
				template:          tmpl,
			}
			r.byNamespace[ent.Namespace] = append(r.byNamespace[ent.Namespace], ep)
			r.byJSONApiType[ent.JSONApiType] = append(r.byJSONApiType[ent.JSONApiType], ep)
		}
	}

	return r, nil
}
