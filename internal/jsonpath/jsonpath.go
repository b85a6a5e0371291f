// Package jsonpath applies a JSONPath-like selector to an arbitrary
// JSON-shaped result, the post-filter step the execution tools run over a
// CMA response before it is capped and returned to the caller.
package jsonpath

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Select walks value using a gjson-syntax path (dot-separated field names,
// numeric array indices, and gjson's #(...) query modifiers) and returns
// the matched sub-value. An empty path returns value unchanged. A path
// that matches nothing returns (nil, false) rather than an error, mirroring
// the "undefined on miss" convention used by the schema loaders.
func Select(value any, path string) (any, bool, error) {
	if path == "" {
		return value, true, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, false, fmt.Errorf("jsonpath: encode value: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, false, fmt.Errorf("jsonpath: value did not encode to valid JSON")
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return nil, false, nil
	}
	return result.Value(), true, nil
}
