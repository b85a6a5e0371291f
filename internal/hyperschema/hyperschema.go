// Package hyperschema fetches the upstream DatoCMS hyperschema over HTTP,
// inlines every internal $ref, and exposes entity/link lookups over the
// resolved tree. The fetch-and-resolve step runs at most once per process.
package hyperschema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/davetashner/datocms-mcp/internal/memoize"
)

const defaultURL = "https://site-api.datocms.com/docs/site-api-hyperschema.json"

const maxRefDepth = 32

// Example is one documentation.javascript.examples[] entry attached to a
// link, keyed by ID for docrender's ::example[id] placeholder resolution.
type Example struct {
	ID           string
	Title        string
	Description  string
	RequestCode  string
	ResponseCode string
}

// Link is one hypermedia action attached to an entity: a create, list,
// update or similar operation, keyed by rel for lookups and by DocURL for
// binding back to a client method's "Read more:" JSDoc.
type Link struct {
	Rel          string
	Href         string
	Method       string
	Title        string
	Description  string
	DocURL       string
	TargetSchema map[string]any
	Examples     []Example
}

// Entity is one JSON:API resource type described by the hyperschema, along
// with the links (actions) it supports.
type Entity struct {
	JSONAPIType string
	Title       string
	Description string
	Links       []Link
}

// Schema is the fully $ref-resolved hyperschema tree, indexed by JSON:API
// type for O(1) lookups.
type Schema struct {
	entities map[string]Entity
}

// FindEntity returns the entity described under jsonAPIType, or false if no
// such entity exists.
func (s *Schema) FindEntity(jsonAPIType string) (Entity, bool) {
	e, ok := s.entities[jsonAPIType]
	return e, ok
}

// FindLink returns the link named rel on the entity jsonAPIType, or false
// if either the entity or that link is missing.
func (s *Schema) FindLink(jsonAPIType, rel string) (Link, bool) {
	e, ok := s.entities[jsonAPIType]
	if !ok {
		return Link{}, false
	}
	for _, l := range e.Links {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}

// Loader lazily fetches and memoizes the resolved Schema.
type Loader struct {
	url  string
	http *http.Client
	load memoize.Thunk[*Schema]
}

// New builds a Loader against url. An empty url falls back to the
// production hyperschema endpoint.
func New(url string) *Loader {
	if url == "" {
		url = defaultURL
	}
	l := &Loader{url: url, http: &http.Client{Timeout: 30 * time.Second}}
	l.load = memoize.New(l.fetch)
	return l
}

// Get returns the resolved schema, fetching and resolving it on the first
// call and returning the cached result thereafter. A failed fetch leaves
// the cache empty so the next call retries.
func (l *Loader) Get() (*Schema, error) {
	return l.load()
}

func (l *Loader) fetch() (*Schema, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("hyperschema: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hyperschema: fetch %s: %w", l.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hyperschema: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("hyperschema: fetch %s: status %d", l.url, resp.StatusCode)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("hyperschema: response is not valid JSON")
	}

	resolved, err := resolveRefs(data, data, 0, map[string]bool{})
	if err != nil {
		return nil, fmt.Errorf("hyperschema: resolve refs: %w", err)
	}

	return &Schema{entities: parseEntities(resolved)}, nil
}

// resolveRefs walks node, replacing every {"$ref": "#/..."} object it finds
// with the raw JSON at that pointer's location in root. visited guards
// against cyclic references: once a pointer has been followed on the
// current path, it is left unresolved rather than expanded again.
func resolveRefs(root, node []byte, depth int, visited map[string]bool) ([]byte, error) {
	if depth > maxRefDepth {
		return node, nil
	}

	result := gjson.ParseBytes(node)

	switch {
	case result.IsObject():
		if ref := result.Get("$ref"); ref.Exists() {
			return followRef(root, ref.String(), depth, visited)
		}

		var walkErr error
		result.ForEach(func(key, value gjson.Result) bool {
			var resolvedChild []byte
			resolvedChild, walkErr = resolveRefs(root, []byte(value.Raw), depth+1, visited)
			if walkErr != nil {
				return false
			}
			node, walkErr = sjson.SetRawBytes(node, escapeKey(key.String()), resolvedChild)
			return walkErr == nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return node, nil

	case result.IsArray():
		idx := 0
		var walkErr error
		result.ForEach(func(_, value gjson.Result) bool {
			var resolvedChild []byte
			resolvedChild, walkErr = resolveRefs(root, []byte(value.Raw), depth+1, visited)
			if walkErr != nil {
				return false
			}
			node, walkErr = sjson.SetRawBytes(node, fmt.Sprintf("%d", idx), resolvedChild)
			idx++
			return walkErr == nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
		return node, nil

	default:
		return node, nil
	}
}

func followRef(root []byte, ptr string, depth int, visited map[string]bool) ([]byte, error) {
	if !strings.HasPrefix(ptr, "#/") {
		// External refs point outside the document we fetched; nothing to
		// inline them with, so the $ref object is left as is.
		return []byte(fmt.Sprintf("{%q:%q}", "$ref", ptr)), nil
	}
	if visited[ptr] {
		return []byte(fmt.Sprintf("{%q:%q}", "$ref", ptr)), nil
	}

	path := jsonPointerToGJSONPath(ptr)
	target := gjson.GetBytes(root, path)
	if !target.Exists() {
		return nil, fmt.Errorf("unresolved $ref %q", ptr)
	}

	nextVisited := make(map[string]bool, len(visited)+1)
	for k, v := range visited {
		nextVisited[k] = v
	}
	nextVisited[ptr] = true

	return resolveRefs(root, []byte(target.Raw), depth+1, nextVisited)
}

func jsonPointerToGJSONPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#/")
	segments := strings.Split(ptr, "/")
	for i, s := range segments {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
		s = escapeKey(s)
		segments[i] = s
	}
	return strings.Join(segments, ".")
}

func escapeKey(key string) string {
	key = strings.ReplaceAll(key, ".", `\.`)
	key = strings.ReplaceAll(key, "*", `\*`)
	key = strings.ReplaceAll(key, "?", `\?`)
	return key
}

// parseEntities extracts each named definition's JSON:API type and link
// list from the resolved schema tree.
func parseEntities(resolved []byte) map[string]Entity {
	entities := map[string]Entity{}

	gjson.GetBytes(resolved, "definitions").ForEach(func(_, def gjson.Result) bool {
		jsonAPIType := entityJSONAPIType(def)
		if jsonAPIType == "" {
			return true
		}

		entity := Entity{
			JSONAPIType: jsonAPIType,
			Title:       def.Get("title").String(),
			Description: def.Get("description").String(),
		}

		def.Get("links").ForEach(func(_, link gjson.Result) bool {
			l := Link{
				Rel:         link.Get("rel").String(),
				Href:        link.Get("href").String(),
				Method:      strings.ToUpper(link.Get("method").String()),
				Title:       link.Get("title").String(),
				Description: link.Get("description").String(),
				DocURL:      link.Get("documentationUrl").String(),
			}
			if ts := link.Get("targetSchema"); ts.Exists() {
				if m, ok := ts.Value().(map[string]any); ok {
					l.TargetSchema = m
				}
			}
			link.Get("documentation.javascript.examples").ForEach(func(_, ex gjson.Result) bool {
				l.Examples = append(l.Examples, Example{
					ID:           ex.Get("id").String(),
					Title:        ex.Get("title").String(),
					Description:  ex.Get("description").String(),
					RequestCode:  ex.Get("request").String(),
					ResponseCode: ex.Get("response").String(),
				})
				return true
			})
			entity.Links = append(entity.Links, l)
			return true
		})

		entities[jsonAPIType] = entity
		return true
	})

	return entities
}

func entityJSONAPIType(def gjson.Result) string {
	candidates := []string{
		"properties.data.properties.type.enum.0",
		"properties.type.enum.0",
	}
	for _, c := range candidates {
		if v := def.Get(c); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
