package scanner

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/maypok86/otter"
)

type cacheEntry struct {
	size    int64
	modTime time.Time
	result  FileResult
}

// FileCache remembers per-file extraction results. An entry is only reused
// while the file's size and modification time are unchanged.
type FileCache struct {
	cache otter.Cache[string, cacheEntry]
}

// NewFileCache creates a cache holding up to capacity files.
func NewFileCache(capacity int) (*FileCache, error) {
	cache, err := otter.MustBuilder[string, cacheEntry](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}
	return &FileCache{cache: cache}, nil
}

// Lookup returns the cached result for path if info still matches it.
func (c *FileCache) Lookup(path string, info fs.FileInfo) (FileResult, bool) {
	entry, ok := c.cache.Get(path)
	if !ok {
		return FileResult{}, false
	}
	if entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		c.cache.Delete(path)
		return FileResult{}, false
	}
	return entry.result, true
}

// Store records result for path as of info.
func (c *FileCache) Store(path string, info fs.FileInfo, result FileResult) {
	c.cache.Set(path, cacheEntry{
		size:    info.Size(),
		modTime: info.ModTime(),
		result:  result,
	})
}

// Invalidate drops any entry for path.
func (c *FileCache) Invalidate(path string) {
	c.cache.Delete(path)
}

// Len returns the number of cached files.
func (c *FileCache) Len() int {
	return c.cache.Size()
}

// Close releases the cache's background resources.
func (c *FileCache) Close() {
	c.cache.Close()
}
