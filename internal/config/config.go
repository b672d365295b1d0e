// Package config loads the front-end's settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted by LoadFromEnv.
const EnvVar = "SILICON_CONFIG"

// DefaultMaxErrors bounds how many diagnostics are rendered per file when
// max_errors is not set. Zero means no limit.
const DefaultMaxErrors = 20

// Config holds the complete front-end configuration
type Config struct {
	Color      *bool     `toml:"color" yaml:"color"`
	MaxErrors  *int      `toml:"max_errors" yaml:"max_errors"`
	CrossCheck bool      `toml:"cross_check" yaml:"cross_check"`
	Requires   string    `toml:"requires" yaml:"requires"`
	Log        LogConfig `toml:"log" yaml:"log"`
}

// LogConfig holds commonlog settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by SILICON_CONFIG, falling back to a
// silicon.toml or silicon.yaml in the working directory, and finally to
// the defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	for _, p := range []string{"silicon.toml", "silicon.yaml", "silicon.yml"} {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.MaxErrors == nil {
		limit := DefaultMaxErrors
		c.MaxErrors = &limit
	}
	if c.Color == nil {
		enabled := true
		c.Color = &enabled
	}
	c.Log.File = os.ExpandEnv(c.Log.File)
}

func (c *Config) Validate() error {
	if c.ErrorLimit() < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.ErrorLimit())
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
		}
	}
	return nil
}

// ErrorLimit is the number of diagnostics to render, zero for all of them.
func (c *Config) ErrorLimit() int {
	if c.MaxErrors == nil {
		return DefaultMaxErrors
	}
	return *c.MaxErrors
}

// SetErrorLimit overrides max_errors, typically from a command-line flag.
func (c *Config) SetErrorLimit(limit int) {
	c.MaxErrors = &limit
}

// ColorEnabled reports whether diagnostics should be colored.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// CheckCompatibility fails when the running version does not satisfy the
// configured requires constraint. An empty constraint accepts any version.
func (c *Config) CheckCompatibility(version string) error {
	if c.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("silicon %s does not satisfy requires %q", version, c.Requires)
	}
	return nil
}
