package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/datocms-mcp/internal/config"
)

func TestMergeFileConfigs_RepoOverridesGlobal(t *testing.T) {
	global := &config.Config{PackageManager: "npm", LogLevel: "info"}
	repo := &config.Config{PackageManager: "pnpm"}

	merged := mergeFileConfigs(global, repo)
	assert.Equal(t, "pnpm", merged.PackageManager)
	assert.Equal(t, "info", merged.LogLevel)
}

func TestMergeFileConfigs_ZeroRepoFieldsFallThrough(t *testing.T) {
	global := &config.Config{MaxOutputBytes: 4096, ExecTimeout: "30s"}
	repo := &config.Config{}

	merged := mergeFileConfigs(global, repo)
	assert.Equal(t, 4096, merged.MaxOutputBytes)
	assert.Equal(t, "30s", merged.ExecTimeout)
}

// resetFlagOverrides clears the package-level flag variables resolvedConfig
// reads, restoring them after the test so later tests see a clean slate.
func resetFlagOverrides(t *testing.T) {
	t.Helper()
	apiTokenFlag, environmentFlag, baseURLFlag = "", "", ""
	packageManagerFlag, execTimeoutFlag, logLevelFlag = "", "", ""
	maxOutputBytesFlag = 0
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() {
		apiTokenFlag, environmentFlag, baseURLFlag = "", "", ""
		packageManagerFlag, execTimeoutFlag, logLevelFlag = "", "", ""
		maxOutputBytesFlag = 0
	})
}

func TestResolvedConfig_FileValuesApply(t *testing.T) {
	resetFlagOverrides(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.FileName),
		[]byte("package_manager: pnpm\n"),
		0o600,
	))

	cfg, err := resolvedConfig()
	require.NoError(t, err)
	assert.Equal(t, "pnpm", cfg.PackageManager)
}

func TestResolvedConfig_FlagOverridesFile(t *testing.T) {
	resetFlagOverrides(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.FileName),
		[]byte("package_manager: npm\n"),
		0o600,
	))
	packageManagerFlag = "pnpm"

	cfg, err := resolvedConfig()
	require.NoError(t, err)
	assert.Equal(t, "pnpm", cfg.PackageManager)
}

func TestResolvedConfig_EnvOverridesFile(t *testing.T) {
	resetFlagOverrides(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.FileName),
		[]byte("api_token: file-token\n"),
		0o600,
	))
	t.Setenv("DATOCMS_API_TOKEN", "env-token")

	cfg, err := resolvedConfig()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.APIToken)
}

func TestResolvedConfig_InvalidMergedConfigErrors(t *testing.T) {
	resetFlagOverrides(t)
	chdirTemp(t)
	logLevelFlag = "verbose"

	_, err := resolvedConfig()
	assert.Error(t, err)
}

func TestResolvedConfig_DefaultsApplyWithNoConfig(t *testing.T) {
	resetFlagOverrides(t)
	chdirTemp(t)

	cfg, err := resolvedConfig()
	require.NoError(t, err)
	assert.Equal(t, "npm", cfg.PackageManager)
	assert.Equal(t, "info", cfg.LogLevel)
}
