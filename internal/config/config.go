package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds optional defaults loaded from ~/.config/vpc-sweep/config.yaml.
type Config struct {
	DefaultProfile string   `yaml:"default_profile"`
	Regions        []string `yaml:"regions"`
	ExcludeRegions []string `yaml:"exclude_regions"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	JournalPath    string   `yaml:"journal_path"`
}

// DefaultPath returns ~/.config/vpc-sweep/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vpc-sweep", "config.yaml")
}

// Load reads the config file at path, or DefaultPath when path is empty.
// Returns zero-value Config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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

// Overrides are the CLI flag values; empty fields keep the config value.
type Overrides struct {
	Profile   string
	LogLevel  string
	LogFormat string
	Journal   string
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(o Overrides) Config {
	merged := *c
	if o.Profile != "" {
		merged.DefaultProfile = o.Profile
	}
	if o.LogLevel != "" {
		merged.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		merged.LogFormat = o.LogFormat
	}
	if o.Journal != "" {
		merged.JournalPath = o.Journal
	}
	return merged
}

// SelectRegions picks the regions to process from the enabled ones.
// flagRegions replaces the configured inclusion list when set; an empty
// inclusion list means every available region. ExcludeRegions is applied
// last. Requested regions that are not available are dropped and returned
// as unknown. Order follows available.
func (c *Config) SelectRegions(available, flagRegions []string) (selected, unknown []string) {
	include := c.Regions
	if len(flagRegions) > 0 {
		include = flagRegions
	}

	for _, r := range include {
		if !slices.Contains(available, r) {
			unknown = append(unknown, r)
		}
	}

	for _, r := range available {
		if len(include) > 0 && !slices.Contains(include, r) {
			continue
		}
		if slices.Contains(c.ExcludeRegions, r) {
			continue
		}
		selected = append(selected, r)
	}
	return selected, unknown
}
