package config

import "os"

// Overrides carries CLI-flag-provided values; an empty string/zero value
// means "not set on the command line" and falls through to the next
// precedence tier.
type Overrides struct {
	APIToken       string
	Environment    string
	BaseURL        string
	PackageManager string
	MaxOutputBytes int
	ExecTimeout    string
	LogLevel       string
}

const (
	defaultPackageManager = "npm"
	defaultExecTimeout    = "60s"
	defaultLogLevel       = "info"
	defaultMaxOutputBytes = 64 * 1024
)

// Merge combines file-based config, environment variables, and CLI
// overrides into the resolved Config the server runs with. Precedence,
// highest first: CLI flag, environment variable, config file, built-in
// default.
func Merge(file *Config, cli Overrides) Config {
	result := Config{
		APIToken:       firstNonEmpty(cli.APIToken, os.Getenv("DATOCMS_API_TOKEN"), file.APIToken),
		Environment:    firstNonEmpty(cli.Environment, os.Getenv("DATOCMS_ENVIRONMENT"), file.Environment),
		BaseURL:        firstNonEmpty(cli.BaseURL, os.Getenv("DATOCMS_BASE_URL"), file.BaseURL),
		PackageManager: firstNonEmpty(cli.PackageManager, file.PackageManager, defaultPackageManager),
		ExecTimeout:    firstNonEmpty(cli.ExecTimeout, file.ExecTimeout, defaultExecTimeout),
		LogLevel:       firstNonEmpty(cli.LogLevel, file.LogLevel, defaultLogLevel),
	}

	result.MaxOutputBytes = cli.MaxOutputBytes
	if result.MaxOutputBytes == 0 {
		result.MaxOutputBytes = file.MaxOutputBytes
	}
	if result.MaxOutputBytes == 0 {
		result.MaxOutputBytes = defaultMaxOutputBytes
	}

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
