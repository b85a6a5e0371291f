package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetValue retrieves a value from cfg by dot-notation key path (e.g.
// "log_level"). Config has no nested structure, so a key path is always a
// single top-level field name.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	val, ok := m[keyPath]
	if !ok {
		return nil, fmt.Errorf("key %q not found", keyPath)
	}
	return val, nil
}

// SetValue sets a value in a raw YAML map by top-level key.
func SetValue(data map[string]any, keyPath, rawValue string) error {
	if strings.Contains(keyPath, ".") {
		return fmt.Errorf("key %q is a scalar; cannot use sub-keys", keyPath)
	}
	data[keyPath] = coerceValue(rawValue)
	return nil
}

// ValidateKeyPath checks that keyPath corresponds to a valid Config field.
func ValidateKeyPath(keyPath string) error {
	if strings.Contains(keyPath, ".") {
		return fmt.Errorf("key %q is a scalar; cannot use sub-keys", keyPath)
	}
	keys := yamlKeys(reflect.TypeOf(Config{}))
	if !keys[keyPath] {
		return fmt.Errorf("unknown key %q; valid keys: %s", keyPath, sortedKeys(keys))
	}
	return nil
}

func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// coerceValue parses a string into bool, int, or keeps it as string.
func coerceValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return s
}

func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			keys[name] = true
		}
	}
	return keys
}

func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if keys[i] > keys[j] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return strings.Join(keys, ", ")
}
