package scanner

import (
	"time"
)

// Config holds the settings a Scanner needs. It is usually produced by
// config.Config.ToScannerConfig.
type Config struct {
	RootDir        string
	Extensions     []string // accepted file extensions, matched case-insensitively
	IgnorePatterns []string // globs relative to RootDir
	ExtraPatterns  []string // expressions appended to DefaultPatterns
	Strict         bool     // keep only values shaped like icon names
	CacheEntries   int      // per-file result cache capacity, 0 disables caching
}

// NameSet accumulates captured values. Iteration order is unspecified.
type NameSet map[string]struct{}

// Add inserts name into the set.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// AddAll inserts every name into the set.
func (s NameSet) AddAll(names []string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Values returns the members in unspecified order.
func (s NameSet) Values() []string {
	values := make([]string, 0, len(s))
	for name := range s {
		values = append(values, name)
	}
	return values
}

// FileResult is what a single candidate file contributed.
type FileResult struct {
	Names   []string // distinct captured values
	Matches int      // raw captures across all patterns, duplicates included
}

// Stats tracks statistics about a scan.
type Stats struct {
	FilesScanned int
	FilesCached  int
	FilesSkipped int
	Matches      int
	UniqueValues int
	Emitted      int
	Duration     time.Duration
}

// Result is the outcome of a scan.
type Result struct {
	Root  string
	Names []string // sorted, filtered, unique
	Set   NameSet  // every captured value before filtering
	Stats Stats
}
