package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/loanflow/iconscan/internal/scanner"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements progress reporting with a spinner bar.
// The walk is lazy, so the total is unknown and the bar counts up.
type CLIProgressReporter struct {
	w       io.Writer
	bar     *progressbar.ProgressBar
	skipped int
}

// NewCLIProgressReporter creates a progress reporter writing to w.
func NewCLIProgressReporter(w io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{w: w}
}

func (c *CLIProgressReporter) OnScanStart(root string) {
	c.skipped = 0
	c.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Scanning "+root),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string, matches int) {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnFileSkipped(path string, err error) {
	c.skipped++
}

func (c *CLIProgressReporter) OnComplete(stats *scanner.Stats) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	fmt.Fprintf(c.w, "✓ Scanned %s files (%s cached, %d skipped): %s names in %.2fs\n",
		formatNumber(stats.FilesScanned),
		formatNumber(stats.FilesCached),
		c.skipped,
		formatNumber(stats.Emitted),
		stats.Duration.Seconds())
}

// formatNumber adds thousands separators.
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result string
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
