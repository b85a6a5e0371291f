package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue_KnownKey(t *testing.T) {
	cfg := &Config{Environment: "staging"}
	v, err := GetValue(cfg, "environment")
	require.NoError(t, err)
	assert.Equal(t, "staging", v)
}

func TestGetValue_UnknownKey(t *testing.T) {
	cfg := &Config{}
	_, err := GetValue(cfg, "does_not_exist")
	assert.Error(t, err)
}

func TestSetValue_TopLevelKey(t *testing.T) {
	data := map[string]any{}
	require.NoError(t, SetValue(data, "log_level", "debug"))
	assert.Equal(t, "debug", data["log_level"])
}

func TestSetValue_CoercesBoolAndInt(t *testing.T) {
	data := map[string]any{}
	require.NoError(t, SetValue(data, "max_output_bytes", "2048"))
	assert.Equal(t, 2048, data["max_output_bytes"])
	require.NoError(t, SetValue(data, "enabled", "true"))
	assert.Equal(t, true, data["enabled"])
}

func TestSetValue_RejectsDottedKey(t *testing.T) {
	data := map[string]any{}
	err := SetValue(data, "nested.key", "value")
	assert.Error(t, err)
}

func TestValidateKeyPath_KnownKey(t *testing.T) {
	assert.NoError(t, ValidateKeyPath("environment"))
}

func TestValidateKeyPath_UnknownKey(t *testing.T) {
	err := ValidateKeyPath("nonsense")
	assert.Error(t, err)
}

func TestValidateKeyPath_RejectsDottedKey(t *testing.T) {
	err := ValidateKeyPath("environment.sub")
	assert.Error(t, err)
}
