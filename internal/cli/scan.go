package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/loanflow/iconscan/internal/config"
	"github.com/loanflow/iconscan/internal/scanner"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// watchCacheEntries bounds the per-file cache used between watch-mode rescans.
const watchCacheEntries = 10_000

// scanOptions carries command-line overrides for a scan.
type scanOptions struct {
	configFile string
	root       string
	extensions []string
	ignore     []string
	strict     bool
	watch      bool
	progress   bool

	// changed reports whether a flag was set explicitly; nil means none were
	changed func(name string) bool
}

func (o *scanOptions) flagChanged(name string) bool {
	return o.changed != nil && o.changed(name)
}

// loadConfig loads file/env configuration and applies explicit flags on top.
func (o *scanOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.NewFileLoader(o.configFile).Load()
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.flagChanged("root") {
		cfg.Root = o.root
	}
	if o.flagChanged("ext") {
		cfg.Paths.Extensions = o.extensions
	}
	if o.flagChanged("ignore") {
		cfg.Paths.Ignore = o.ignore
	}
	if o.flagChanged("strict") {
		cfg.Filter.Strict = o.strict
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// resolveRoot picks the scan root: positional argument, then configured root,
// then the executable-relative default.
func resolveRoot(cfg *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.Root != "" {
		return cfg.Root
	}
	return scanner.ResolveRoot()
}

func (o *scanOptions) run(ctx context.Context, out io.Writer, args []string, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	rootDir := resolveRoot(cfg, args)
	scanCfg := cfg.ToScannerConfig(rootDir)
	if o.watch {
		scanCfg.CacheEntries = watchCacheEntries
	}

	var progress scanner.ProgressReporter
	if o.progress && isatty.IsTerminal(os.Stderr.Fd()) {
		progress = NewCLIProgressReporter(os.Stderr)
	}

	s, err := scanner.New(scanCfg, logger, progress)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}
	defer s.Close()

	result, err := s.Scan(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("scan cancelled")
		}
		return fmt.Errorf("scan failed: %w", err)
	}
	if err := scanner.Emit(out, result.Names); err != nil {
		return fmt.Errorf("failed to write names: %w", err)
	}

	if !o.watch {
		return nil
	}
	return watch(ctx, s, cfg, out, result.Names, logger)
}

// watch re-emits the list after each rescan whose output differs from the last.
func watch(ctx context.Context, s *scanner.Scanner, cfg *config.Config, out io.Writer, last []string, logger *zap.Logger) error {
	emitErr := make(chan error, 1)
	onScan := func(result *scanner.Result) {
		if slices.Equal(result.Names, last) {
			logger.Debug("rescan produced no change")
			return
		}
		last = result.Names
		if err := scanner.Emit(out, result.Names); err != nil {
			select {
			case emitErr <- fmt.Errorf("failed to write names: %w", err):
			default:
			}
		}
	}

	w, err := scanner.NewWatcher(s, cfg.Watch.Debounce, onScan, logger)
	if err != nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	logger.Info("watching for changes", zap.String("root", s.Root()))
	w.Start(ctx)
	defer w.Stop()

	select {
	case <-ctx.Done():
		logger.Info("watch mode stopped")
		return nil
	case err := <-emitErr:
		return err
	}
}
