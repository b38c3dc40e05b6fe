package scanner

import (
	"os"
	"path/filepath"
)

// FallbackRoot is used, unverified, when the layout next to the executable is absent.
var FallbackRoot = filepath.Join("loanflow", "src")

// ResolveRoot returns the directory to scan: loanflow/src under the parent of
// the directory holding the running executable, or FallbackRoot.
func ResolveRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return FallbackRoot
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return resolveRootFrom(exe)
}

func resolveRootFrom(exe string) string {
	preferred := filepath.Join(filepath.Dir(filepath.Dir(exe)), "loanflow", "src")
	if info, err := os.Stat(preferred); err == nil && info.IsDir() {
		return preferred
	}
	return FallbackRoot
}
