package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/loanflow/iconscan/internal/config"
	"github.com/loanflow/iconscan/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Test Plan for the scan command:
// - Scanning an explicit root prints sorted names, one per line
// - An empty or missing root prints nothing
// - Explicit flags override configuration; unset flags do not
// - Invalid flag values are rejected before scanning
// - An explicit config file is honoured
// - Root resolution order: argument, configured root, executable default
// - Watch mode prints the initial list and re-prints after a change
// - version prints build information
// - formatNumber inserts thousands separators

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func changedSet(names ...string) func(string) bool {
	return func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
}

func TestRun_PrintsSortedNames(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"app/home.page.html": `<ion-icon name="home"></ion-icon><ion-icon name='home'></ion-icon>`,
		"app/home.page.ts":   `template: '<ion-icon [icon]="add"></ion-icon>'`,
		"app/theme.css":      `[name="ignored"]`,
	})

	var out bytes.Buffer
	opts := &scanOptions{}
	err := opts.run(context.Background(), &out, []string{root}, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "add\nhome\n", out.String())
}

func TestRun_EmptyAndMissingRoots(t *testing.T) {
	for _, root := range []string{t.TempDir(), filepath.Join(t.TempDir(), "missing")} {
		var out bytes.Buffer
		err := (&scanOptions{}).run(context.Background(), &out, []string{root}, zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, "", out.String())
	}
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"page.html":       `<ion-icon name="home"></ion-icon><ion-icon [name]="item.icon"></ion-icon>`,
		"dist/out.html":   `<ion-icon name="built"></ion-icon>`,
		"widget.tsx":      `<Icon name="react-icon" />`,
		"skipped.unknown": `name="never"`,
	})

	var out bytes.Buffer
	opts := &scanOptions{
		extensions: []string{".html", ".tsx"},
		ignore:     []string{"dist/**"},
		strict:     true,
		changed:    changedSet("ext", "ignore", "strict"),
	}
	err := opts.run(context.Background(), &out, []string{root}, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "home\nreact-icon\n", out.String())
}

func TestRun_UnchangedFlagsAreIgnored(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"page.html": `<ion-icon [name]="item.icon"></ion-icon>`})

	var out bytes.Buffer
	// strict is set but was never passed on the command line
	opts := &scanOptions{strict: true, changed: changedSet()}
	err := opts.run(context.Background(), &out, []string{root}, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "item.icon\n", out.String())
}

func TestRun_InvalidFlags(t *testing.T) {
	opts := &scanOptions{extensions: []string{"html"}, changed: changedSet("ext")}

	err := opts.run(context.Background(), &bytes.Buffer{}, []string{t.TempDir()}, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flags")
	assert.ErrorIs(t, err, config.ErrInvalidExtension)
}

func TestRun_ExplicitConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/page.html": `<ion-icon name="home"></ion-icon><ion-icon name="skip-me"></ion-icon>`,
		"src/menu.ts":   `{ iconName: "wallet" }`,
	})
	configPath := filepath.Join(root, "iconscan.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
root: `+filepath.Join(root, "src")+`
patterns:
  extra: ['iconName:\s*"([^"]+)"']
`), 0644))

	var out bytes.Buffer
	opts := &scanOptions{configFile: configPath}
	err := opts.run(context.Background(), &out, nil, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, "home\nskip-me\nwallet\n", out.String())
}

func TestRun_MissingConfigFile(t *testing.T) {
	opts := &scanOptions{configFile: filepath.Join(t.TempDir(), "nope.yaml")}

	err := opts.run(context.Background(), &bytes.Buffer{}, nil, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestResolveRoot(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "arg", resolveRoot(cfg, []string{"arg"}))

	cfg.Root = "configured"
	assert.Equal(t, "arg", resolveRoot(cfg, []string{"arg"}))
	assert.Equal(t, "configured", resolveRoot(cfg, nil))

	cfg.Root = ""
	assert.Equal(t, scanner.ResolveRoot(), resolveRoot(cfg, nil))
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_WatchReprintsOnChange(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.html": `<ion-icon name="alpha"></ion-icon>`})

	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- (&scanOptions{watch: true}).run(ctx, out, []string{root}, zap.NewNop())
	}()

	require.Eventually(t, func() bool {
		return out.String() == "alpha\n"
	}, 5*time.Second, 20*time.Millisecond)

	writeFiles(t, root, map[string]string{"b.ts": `icon="beta"`})

	require.Eventually(t, func() bool {
		return strings.HasSuffix(out.String(), "alpha\nbeta\n")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "iconscan dev")
	assert.Contains(t, out.String(), "Git commit: none")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}

func TestCLIProgressReporter(t *testing.T) {
	var out bytes.Buffer
	p := NewCLIProgressReporter(&out)

	p.OnScanStart("src")
	p.OnFileScanned("src/a.ts", 2)
	p.OnFileSkipped("src/b.ts", os.ErrPermission)
	p.OnComplete(&scanner.Stats{FilesScanned: 1, Emitted: 2, Duration: time.Second})

	assert.Contains(t, out.String(), "✓ Scanned 1 files (0 cached, 1 skipped): 2 names in 1.00s")
}
