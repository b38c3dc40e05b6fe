// Package scanner extracts icon names referenced in a front-end source tree.
//
// A scan walks the root for candidate files (Discovery), applies every
// pattern to each file (Extractor), accumulates captured values in a NameSet
// owned by the scan, then filters and sorts them (Normalize).
package scanner

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Scanner runs the extraction pipeline over one root directory.
type Scanner struct {
	config    *Config
	discovery *Discovery
	extractor *Extractor
	cache     *FileCache
	progress  ProgressReporter
	logger    *zap.Logger
}

// New creates a scanner. A nil logger or progress reporter disables that output.
func New(cfg *Config, logger *zap.Logger, progress ProgressReporter) (*Scanner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	discovery, err := NewDiscovery(cfg.RootDir, cfg.Extensions, cfg.IgnorePatterns, logger)
	if err != nil {
		return nil, err
	}

	extra, err := CompilePatterns(cfg.ExtraPatterns)
	if err != nil {
		return nil, err
	}
	patterns := append(slices.Clone(DefaultPatterns), extra...)

	s := &Scanner{
		config:    cfg,
		discovery: discovery,
		extractor: NewExtractor(patterns),
		progress:  progress,
		logger:    logger,
	}

	if cfg.CacheEntries > 0 {
		s.cache, err = NewFileCache(cfg.CacheEntries)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Root returns the directory this scanner walks.
func (s *Scanner) Root() string {
	return s.discovery.Root()
}

// Discovery exposes the candidate filter, used by the watcher.
func (s *Scanner) Discovery() *Discovery {
	return s.discovery
}

// Invalidate forgets any cached result for path.
func (s *Scanner) Invalidate(path string) {
	if s.cache != nil {
		s.cache.Invalidate(path)
	}
}

// Close releases the scanner's cache.
func (s *Scanner) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// Scan walks the root once and returns the normalized names.
// Files are processed sequentially; ctx is checked between files.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()
	set := make(NameSet)
	stats := Stats{}

	s.progress.OnScanStart(s.discovery.Root())
	s.logger.Debug("scan started", zap.String("root", s.discovery.Root()))

	for path, err := range s.discovery.Files() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan cancelled: %w", err)
		}

		result, cached, err := s.scanFile(path)
		if err != nil {
			// Fail-soft: an unreadable file contributes nothing
			stats.FilesSkipped++
			s.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			s.progress.OnFileSkipped(path, err)
			continue
		}

		if cached {
			stats.FilesCached++
		}
		stats.FilesScanned++
		stats.Matches += result.Matches
		set.AddAll(result.Names)
		s.progress.OnFileScanned(path, result.Matches)
	}

	names := Normalize(set, s.config.Strict)

	stats.UniqueValues = len(set)
	stats.Emitted = len(names)
	stats.Duration = time.Since(start)

	s.logger.Debug("scan complete",
		zap.Int("files", stats.FilesScanned),
		zap.Int("cached", stats.FilesCached),
		zap.Int("skipped", stats.FilesSkipped),
		zap.Int("matches", stats.Matches),
		zap.Int("names", stats.Emitted),
		zap.Duration("duration", stats.Duration))
	s.progress.OnComplete(&stats)

	return &Result{
		Root:  s.discovery.Root(),
		Names: names,
		Set:   set,
		Stats: stats,
	}, nil
}

// scanFile extracts from one file, consulting the cache when enabled.
func (s *Scanner) scanFile(path string) (FileResult, bool, error) {
	if s.cache == nil {
		result, err := s.extractor.ExtractFile(path)
		return result, false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		s.cache.Invalidate(path)
		return FileResult{}, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if result, ok := s.cache.Lookup(path, info); ok {
		return result, true, nil
	}

	result, err := s.extractor.ExtractFile(path)
	if err != nil {
		return FileResult{}, false, err
	}
	s.cache.Store(path, info, result)
	return result, false, nil
}
