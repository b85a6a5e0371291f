package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_CLIWinsOverFileAndEnv(t *testing.T) {
	t.Setenv("DATOCMS_API_TOKEN", "env-token")
	file := &Config{APIToken: "file-token"}
	cli := Overrides{APIToken: "cli-token"}

	result := Merge(file, cli)
	assert.Equal(t, "cli-token", result.APIToken)
}

func TestMerge_EnvWinsOverFile(t *testing.T) {
	t.Setenv("DATOCMS_API_TOKEN", "env-token")
	file := &Config{APIToken: "file-token"}

	result := Merge(file, Overrides{})
	assert.Equal(t, "env-token", result.APIToken)
}

func TestMerge_FileWinsOverDefault(t *testing.T) {
	t.Setenv("DATOCMS_API_TOKEN", "")
	file := &Config{APIToken: "file-token", PackageManager: "pnpm"}

	result := Merge(file, Overrides{})
	assert.Equal(t, "file-token", result.APIToken)
	assert.Equal(t, "pnpm", result.PackageManager)
}

func TestMerge_DefaultsApplyWhenNothingSet(t *testing.T) {
	t.Setenv("DATOCMS_API_TOKEN", "")
	t.Setenv("DATOCMS_ENVIRONMENT", "")
	t.Setenv("DATOCMS_BASE_URL", "")

	result := Merge(&Config{}, Overrides{})
	assert.Equal(t, defaultPackageManager, result.PackageManager)
	assert.Equal(t, defaultExecTimeout, result.ExecTimeout)
	assert.Equal(t, defaultLogLevel, result.LogLevel)
	assert.Equal(t, defaultMaxOutputBytes, result.MaxOutputBytes)
}

func TestMerge_MaxOutputBytesPrecedence(t *testing.T) {
	file := &Config{MaxOutputBytes: 1000}
	result := Merge(file, Overrides{MaxOutputBytes: 2000})
	assert.Equal(t, 2000, result.MaxOutputBytes)

	result = Merge(file, Overrides{})
	assert.Equal(t, 1000, result.MaxOutputBytes)
}
