package config

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads path as a Config. If the file does not exist, it returns a
// zero-value Config and nil error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided config path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write marshals cfg to YAML and writes it to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // best-effort close
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
