package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_IsRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "mcp" {
			found = true
			break
		}
	}
	assert.True(t, found, "mcp command should be registered on rootCmd")
}

func TestMCPServeCmd_IsRegistered(t *testing.T) {
	found := false
	for _, cmd := range mcpCmd.Commands() {
		if cmd.Use == "serve" {
			found = true
			break
		}
	}
	assert.True(t, found, "serve command should be registered on mcpCmd")
}

func TestMCPServeCmd_RejectsArgs(t *testing.T) {
	// cobra.NoArgs should reject positional arguments.
	err := mcpServeCmd.Args(mcpServeCmd, []string{"extra"})
	assert.Error(t, err)
}

func TestMCPServeCmd_NoAPITokenStillServes(t *testing.T) {
	// resolvedConfig should succeed even without an API token; only the
	// documentation and script-authoring tools register in that case.
	resetFlagOverrides(t)
	chdirTemp(t)
	t.Setenv("DATOCMS_API_TOKEN", "")

	cfg, err := resolvedConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIToken)

	err = mcpServeCmd.Args(mcpServeCmd, nil)
	assert.NoError(t, err)
}
