package config

import (
	"fmt"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validPackageManagers = map[string]bool{"npm": true, "pnpm": true}

// Validate checks all fields in cfg and returns every error at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.LogLevel != "" && !validLogLevels[cfg.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: invalid value %q (must be debug, info, warn, or error)", cfg.LogLevel))
	}

	if cfg.PackageManager != "" && !validPackageManagers[cfg.PackageManager] {
		errs = append(errs, fmt.Sprintf("package_manager: invalid value %q (must be npm or pnpm)", cfg.PackageManager))
	}

	if cfg.ExecTimeout != "" {
		if _, err := time.ParseDuration(cfg.ExecTimeout); err != nil {
			errs = append(errs, fmt.Sprintf("exec_timeout: %v", err))
		}
	}

	if cfg.MaxOutputBytes < 0 {
		errs = append(errs, fmt.Sprintf("max_output_bytes: must be non-negative, got %d", cfg.MaxOutputBytes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
