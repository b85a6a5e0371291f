// Package config handles .datocms-mcp.yaml configuration files, global
// config in the OS-standard config dir, and merging both with CLI flags
// and environment variables into the values the rest of the server uses.
package config

// FileName is the project-local config file name, checked in the current
// working directory.
const FileName = ".datocms-mcp.yaml"

// AppName is used to derive the global config and workspace directories.
const AppName = "datocms-mcp"

// Config represents the contents of a .datocms-mcp.yaml file (project or
// global).
type Config struct {
	APIToken       string `yaml:"api_token,omitempty"`
	Environment    string `yaml:"environment,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty"`
	PackageManager string `yaml:"package_manager,omitempty"`
	MaxOutputBytes int    `yaml:"max_output_bytes,omitempty"`
	ExecTimeout    string `yaml:"exec_timeout,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}
