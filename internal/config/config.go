// Package config loads the optional roadii configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the file-configurable settings. Command-line flags take
// precedence over all of them.
type Config struct {
	// EvsievePath points at the evsieve binary; empty means look it up in
	// PATH.
	EvsievePath string `yaml:"evsieve_path"`

	// Identity adjusts the sniff test applied to the guitar device's name
	// attribute. The acceptable vendor-string prefixes aren't specified
	// anywhere, so the check is kept configurable rather than hard-coded.
	Identity Identity `yaml:"identity"`

	Log Log `yaml:"log"`
}

// Identity configures the name-attribute check.
type Identity struct {
	Marker string `yaml:"marker"`
	Suffix string `yaml:"suffix"`
}

// Log configures logging output.
type Log struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file. A missing path returns zero-valued
// defaults rather than an error; a named file that can't be read or parsed
// is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
