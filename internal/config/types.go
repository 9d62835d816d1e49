// Package config resolves kvptr settings from defaults, an optional YAML
// config file, KVPTR_ environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
)

const (
	// EnvPrefix prefixes every environment variable read as configuration.
	EnvPrefix = "KVPTR_"

	DefaultOutput   = "auto"
	DefaultIndent   = 2
	DefaultLogLevel = int8(0)
)

// ConfigFileNames are searched, in order, in the working directory when no
// config file is named explicitly.
var ConfigFileNames = []string{"kvptr.yaml", ".kvptr.yaml"}

// Config is the resolved configuration of a kvptr run.
type Config struct {
	Output   string `koanf:"output"`
	Indent   int    `koanf:"indent"`
	LogLevel int8   `koanf:"log_level"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// Validate reports settings no command can work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output) {
	case "auto", "json", "yaml", "toml", "raw":
	default:
		return fmt.Errorf("unsupported output format %q (want auto, json, yaml, toml or raw)", c.Output)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}
	return nil
}
