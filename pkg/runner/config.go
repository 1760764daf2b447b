package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the run block.
const (
	DefaultWorkers      = 5
	DefaultCacheEntries = 1024
	DefaultCacheTTL     = 5 * time.Minute
	DefaultDebounce     = 500 * time.Millisecond
)

// configNames are the files LoadConfigFromDir probes, in order.
var configNames = []string{"doclint.yaml", "doclint.yml", ".doclint.yaml", ".doclint.yml"}

// Config is the runner's file-backed configuration.
type Config struct {
	Version string      `yaml:"version"`
	Check   CheckConfig `yaml:"check"`
	Run     RunConfig   `yaml:"run"`
}

// CheckConfig carries checker options. Every field maps onto a declared
// plugin option and is overridable from the command line.
type CheckConfig struct {
	Convention         string `yaml:"docstring_convention"`
	IgnoreDecorators   string `yaml:"ignore_decorators"`
	PropertyDecorators string `yaml:"property_decorators"`
	IgnoreSelfOnlyInit bool   `yaml:"ignore_self_only_init"`
}

// RunConfig controls file selection and execution.
type RunConfig struct {
	Workers        int      `yaml:"workers"`
	Cache          bool     `yaml:"cache"`
	CacheTTL       string   `yaml:"cache_ttl"` // time.ParseDuration format
	Debounce       string   `yaml:"debounce"`  // watch mode settle delay
	FileExtensions []string `yaml:"file_extensions"`
	Exclude        []string `yaml:"exclude"`
}

// CacheTTLDuration parses the configured TTL, falling back to the default
// when unset or unparseable.
func (r RunConfig) CacheTTLDuration() time.Duration {
	if d, err := time.ParseDuration(r.CacheTTL); err == nil && d > 0 {
		return d
	}
	return DefaultCacheTTL
}

// DebounceDuration parses the configured watch settle delay, falling back
// to the default when unset or unparseable.
func (r RunConfig) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(r.Debounce); err == nil && d > 0 {
		return d
	}
	return DefaultDebounce
}

// DefaultConfig builds the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Check: CheckConfig{
			Convention: "pep257",
		},
		Run: RunConfig{
			Workers:        DefaultWorkers,
			Cache:          true,
			CacheTTL:       DefaultCacheTTL.String(),
			Debounce:       DefaultDebounce.String(),
			FileExtensions: []string{".py"},
			Exclude: []string{
				".git",
				".tox",
				".venv",
				"__pycache__",
				"build",
				"dist",
			},
		},
	}
}

// LoadConfig reads path over the defaults, so absent keys keep their
// default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// LoadConfigFromDir probes dir for the first known config file name and
// loads it, or returns the defaults when none exists.
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	return DefaultConfig(), nil
}

// SaveConfig writes config to path as yaml.
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
