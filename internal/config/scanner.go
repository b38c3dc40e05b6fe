package config

import (
	"github.com/loanflow/iconscan/internal/scanner"
)

// ToScannerConfig converts a Config to a scanner.Config.
// The rootDir parameter specifies the directory to scan.
func (c *Config) ToScannerConfig(rootDir string) *scanner.Config {
	return &scanner.Config{
		RootDir:        rootDir,
		Extensions:     c.Paths.Extensions,
		IgnorePatterns: c.Paths.Ignore,
		ExtraPatterns:  c.Patterns.Extra,
		Strict:         c.Filter.Strict,
	}
}
