package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a path → content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// defaultConfig returns a scanner config with the stock extensions.
func defaultConfig(root string) *Config {
	return &Config{
		RootDir:    root,
		Extensions: []string{".ts", ".html"},
	}
}

// collect drains a discovery walk into relative, slash-separated paths.
func collect(t *testing.T, d *Discovery) []string {
	t.Helper()
	var paths []string
	for path, err := range d.Files() {
		require.NoError(t, err)
		rel, err := filepath.Rel(d.Root(), path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}
