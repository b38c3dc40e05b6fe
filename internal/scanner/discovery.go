package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery enumerates candidate files under a root directory.
type Discovery struct {
	rootDir        string
	extensions     map[string]struct{}
	ignorePatterns []compiledPattern
	logger         *zap.Logger
}

// NewDiscovery creates a new file discovery instance.
func NewDiscovery(rootDir string, extensions, ignorePatterns []string, logger *zap.Logger) (*Discovery, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Discovery{
		rootDir:    rootDir,
		extensions: make(map[string]struct{}, len(extensions)),
		logger:     logger,
	}

	for _, ext := range extensions {
		d.extensions[strings.ToLower(ext)] = struct{}{}
	}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// Root returns the directory being walked.
func (d *Discovery) Root() string {
	return d.rootDir
}

// Files lazily walks the tree and yields every candidate file.
//
// A missing root yields nothing. Unreadable entries below the root are logged
// and skipped. An unreadable root is yielded once as an error, ending the walk.
func (d *Discovery) Files() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false

		err := filepath.WalkDir(d.rootDir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if path == d.rootDir {
					if errors.Is(err, fs.ErrNotExist) {
						return filepath.SkipAll
					}
					return fmt.Errorf("failed to read scan root %s: %w", path, err)
				}
				d.logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if path == d.rootDir {
				if !entry.IsDir() {
					return filepath.SkipAll
				}
				return nil
			}

			relPath, err := filepath.Rel(d.rootDir, path)
			if err != nil {
				return nil
			}
			relPath = filepath.ToSlash(relPath)

			if entry.IsDir() {
				if d.shouldIgnore(relPath) {
					return filepath.SkipDir
				}
				return nil
			}

			if d.shouldIgnore(relPath) || !d.IsCandidate(path) {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})

		if err != nil && !stopped {
			yield("", err)
		}
	}
}

// IsCandidate reports whether path carries an accepted extension.
// A name that is only an extension, such as ".ts", has none.
func (d *Discovery) IsCandidate(path string) bool {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return false
	}
	_, ok := d.extensions[strings.ToLower(ext)]
	return ok
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if len(d.ignorePatterns) == 0 {
		return false
	}

	if d.matchesAnyPattern(relPath, d.ignorePatterns) {
		return true
	}

	// "node_modules" should match pattern "node_modules/**"
	return d.matchesAnyPattern(relPath+"/**", d.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (d *Discovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root-level paths also match patterns with the **/ prefix removed, so
	// "**/*.spec.ts" covers both "app.spec.ts" and "pages/home.spec.ts".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
