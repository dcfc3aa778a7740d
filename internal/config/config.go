package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds girt settings read from config.yaml and the environment.
// The zero value defers every decision to the engine defaults.
type Config struct {
	// GitBin overrides the git executable. Empty means "git" from PATH.
	GitBin string `yaml:"git_bin"`

	// SignCommits makes commits GPG-signed unless a request says otherwise.
	SignCommits bool `yaml:"sign_commits"`

	// ForceUnsignedOnFailure retries failed signed commits without a signature.
	ForceUnsignedOnFailure bool `yaml:"force_unsigned_on_failure"`

	// Tenant tags operations in logs. Empty means the engine default.
	Tenant string `yaml:"tenant"`

	// Timeout bounds each git invocation, as a Go duration string ("30s").
	// Empty means no per-invocation timeout.
	Timeout string `yaml:"timeout"`
}

// Load reads config.yaml from Dir() and applies GIRT_* environment overrides.
// A missing file yields the zero config; the environment always wins over
// file values.
func Load() (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(Dir(), "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: environment only.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides copies GIRT_* variables over file values.
// Malformed boolean values are an error rather than a silent skip.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GIRT_GIT_BIN"); v != "" {
		cfg.GitBin = v
	}
	if v := os.Getenv("GIRT_TENANT"); v != "" {
		cfg.Tenant = v
	}
	if v := os.Getenv("GIRT_TIMEOUT"); v != "" {
		cfg.Timeout = v
	}
	if v := os.Getenv("GIRT_SIGN_COMMITS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GIRT_SIGN_COMMITS %q: %w", v, err)
		}
		cfg.SignCommits = b
	}
	if v := os.Getenv("GIRT_FORCE_UNSIGNED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GIRT_FORCE_UNSIGNED %q: %w", v, err)
		}
		cfg.ForceUnsignedOnFailure = b
	}
	return nil
}

// TimeoutDuration parses the configured timeout. Zero means unbounded.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}
