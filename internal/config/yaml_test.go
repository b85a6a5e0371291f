// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.APIToken)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	content := `
environment: staging
log_level: debug
max_output_bytes: 4096
`
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4096, cfg.MaxOutputBytes)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("{{invalid yaml"), 0o600))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.Environment)
}

func TestLoad_PermissionError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("environment: staging"), 0o600))

	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() {
		_ = os.Chmod(path, 0o600)
	})

	cfg, err := Load(path)
	assert.Error(t, err, "should fail when file is unreadable")
	assert.Nil(t, cfg)
}

func TestWrite(t *testing.T) {
	cfg := &Config{
		Environment: "staging",
		LogLevel:    "debug",
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "environment: staging")
	assert.Contains(t, out, "log_level: debug")
}

func TestWrite_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))
	assert.Contains(t, buf.String(), "{}")
}
