package main

import (
	"fmt"

	"github.com/davetashner/datocms-mcp/internal/config"
)

// resolvedConfig loads the repo config (.datocms-mcp.yaml), the global
// config, and merges them with the persistent CLI flags and environment
// variables. Repo file values override global file values; CLI flags and
// environment variables override both.
func resolvedConfig() (config.Config, error) {
	repoCfg, err := config.Load(config.FileName)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading %s: %w", config.FileName, err)
	}
	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading global config: %w", err)
	}
	fileCfg := mergeFileConfigs(globalCfg, repoCfg)

	overrides := config.Overrides{
		APIToken:       apiTokenFlag,
		Environment:    environmentFlag,
		BaseURL:        baseURLFlag,
		PackageManager: packageManagerFlag,
		MaxOutputBytes: maxOutputBytesFlag,
		ExecTimeout:    execTimeoutFlag,
		LogLevel:       logLevelFlag,
	}
	merged := config.Merge(fileCfg, overrides)
	if err := config.Validate(&merged); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// mergeFileConfigs layers repo config over global config: non-zero repo
// fields win, everything else falls through to the global value.
func mergeFileConfigs(global, repo *config.Config) *config.Config {
	merged := *global

	if repo.APIToken != "" {
		merged.APIToken = repo.APIToken
	}
	if repo.Environment != "" {
		merged.Environment = repo.Environment
	}
	if repo.BaseURL != "" {
		merged.BaseURL = repo.BaseURL
	}
	if repo.PackageManager != "" {
		merged.PackageManager = repo.PackageManager
	}
	if repo.MaxOutputBytes != 0 {
		merged.MaxOutputBytes = repo.MaxOutputBytes
	}
	if repo.ExecTimeout != "" {
		merged.ExecTimeout = repo.ExecTimeout
	}
	if repo.LogLevel != "" {
		merged.LogLevel = repo.LogLevel
	}

	return &merged
}
