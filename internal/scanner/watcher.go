package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches the scan root and rescans after candidate files change.
type Watcher struct {
	scanner      *Scanner
	rootDir      string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	onScan       func(*Result)
	logger       *zap.Logger
	started      atomic.Bool
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a watcher over the scanner's root. onScan receives the
// result of every rescan. A zero debounce uses 500ms.
func NewWatcher(s *Scanner, debounce time.Duration, onScan func(*Result), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	rootDir := s.Root()
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot watch scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot watch scan root %s: not a directory", rootDir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		scanner:      s,
		rootDir:      rootDir,
		watcher:      fsw,
		debounceTime: debounce,
		onScan:       onScan,
		logger:       logger,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	w.started.Store(true)
	go w.watch(ctx)
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.started.Load() {
			<-w.doneCh
		}
		w.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	rescanCh := make(chan struct{}, 1)
	changed := make(map[string]bool)

	stopTimer := func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return

		case <-w.stopCh:
			stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				stopTimer()
				return
			}

			if !w.handleEvent(event) {
				continue
			}
			changed[event.Name] = true

			stopTimer()
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case rescanCh <- struct{}{}:
				default:
				}
			})

		case <-rescanCh:
			w.triggerRescan(ctx, len(changed))
			changed = make(map[string]bool)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				stopTimer()
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// handleEvent updates watch and cache state for event and reports whether it
// should trigger a rescan.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	if w.scanner.Discovery().shouldIgnore(relPath) {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectoriesRecursively(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			// Files may have landed before the directory was watched
			return true
		}
	}

	if !w.scanner.Discovery().IsCandidate(event.Name) {
		return false
	}

	// Size and mtime can survive an edit on coarse-timestamp filesystems
	w.scanner.Invalidate(event.Name)
	return true
}

// triggerRescan runs a full scan; unchanged files come from the cache.
func (w *Watcher) triggerRescan(ctx context.Context, changedCount int) {
	if changedCount == 0 {
		return
	}

	w.logger.Info("rescanning", zap.Int("changed", changedCount))

	result, err := w.scanner.Scan(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("rescan failed", zap.Error(err))
		}
		return
	}

	if w.onScan != nil {
		w.onScan(result)
	}
}

// shouldWatchDirectory checks if a directory should be watched.
func (w *Watcher) shouldWatchDirectory(path string) bool {
	relPath, err := filepath.Rel(w.rootDir, path)
	if err != nil {
		return false
	}
	if relPath == "." {
		return true
	}
	return !w.scanner.Discovery().shouldIgnore(filepath.ToSlash(relPath))
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.WalkDir(rootPath, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			// Don't fail the entire watch for one directory
			w.logger.Warn("error accessing directory", zap.String("path", path), zap.Error(err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.IsDir() {
			return nil
		}

		if !w.shouldWatchDirectory(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}
