// Package config provides configuration loading for iconscan.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Command-line flags (applied by the cli package)
//  2. Environment variables (ICONSCAN_*)
//  3. Config file (.iconscan/config.yml or .iconscan/config.yaml)
//  4. Built-in defaults
//
// The defaults reproduce the behaviour of the original list_icons tool: scan
// .ts and .html files, ignore nothing, keep every non-placeholder value.
package config

import "time"

// Config represents the complete iconscan configuration.
type Config struct {
	// Root overrides scan root resolution when non-empty.
	Root     string         `yaml:"root" mapstructure:"root"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Patterns PatternsConfig `yaml:"patterns" mapstructure:"patterns"`
	Filter   FilterConfig   `yaml:"filter" mapstructure:"filter"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig defines which files are candidates and which are skipped.
type PathsConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions"` // e.g. [".ts", ".html"], matched case-insensitively
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`         // glob patterns relative to the root
}

// PatternsConfig adds expressions on top of the built-in icon patterns.
type PatternsConfig struct {
	Extra []string `yaml:"extra" mapstructure:"extra"` // RE2 expressions with exactly one capture group
}

// FilterConfig tunes the normalizer.
type FilterConfig struct {
	Strict bool `yaml:"strict" mapstructure:"strict"` // keep only values shaped like icon names
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// Default returns a configuration with the original tool's behaviour.
func Default() *Config {
	return &Config{
		Root: "",
		Paths: PathsConfig{
			Extensions: []string{".ts", ".html"},
			Ignore:     []string{},
		},
		Patterns: PatternsConfig{
			Extra: []string{},
		},
		Filter: FilterConfig{
			Strict: false,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}
