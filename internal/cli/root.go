package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
	opts    = &scanOptions{}
)

// rootCmd represents the base command: scan and print icon names
var rootCmd = &cobra.Command{
	Use:   "iconscan [root]",
	Short: "List the icon names referenced by a front-end source tree",
	Long: `iconscan walks a directory of .ts and .html files, collects every value
assigned to name=, icon=, [name]= and [icon]= attributes, and prints the
distinct names sorted, one per line.

Without a root argument it scans loanflow/src next to the directory holding
the binary, falling back to ./loanflow/src.

Examples:
  # Scan the default tree
  iconscan

  # Scan a specific tree, skipping build output
  iconscan web/src --ignore "dist/**"

  # Keep only values shaped like icon names
  iconscan --strict

  # Re-print the list whenever a file changes
  iconscan --watch
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.configFile = cfgFile
		opts.changed = cmd.Flags().Changed
		return opts.run(cmd.Context(), cmd.OutOrStdout(), args, logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .iconscan/config.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging on stderr")

	rootCmd.Flags().StringVar(&opts.root, "root", "", "directory to scan (overrides resolution)")
	rootCmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "accepted file extensions (default .ts,.html)")
	rootCmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "glob patterns to skip, relative to the root")
	rootCmd.Flags().BoolVar(&opts.strict, "strict", false, "keep only values shaped like icon names")
	rootCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "watch for changes and re-print the list")
	rootCmd.Flags().BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr when it is a terminal")
}

// newLogger builds the stderr JSON logger. Warnings and errors only unless verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}
