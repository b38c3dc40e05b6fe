package scanner

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnScanStart is called before the walk begins.
	OnScanStart(root string)

	// OnFileScanned is called after each candidate file is read and matched.
	OnFileScanned(path string, matches int)

	// OnFileSkipped is called when a candidate could not be read.
	OnFileSkipped(path string, err error)

	// OnComplete is called when the scan completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnScanStart(root string)                {}
func (n *NoOpProgressReporter) OnFileScanned(path string, matches int) {}
func (n *NoOpProgressReporter) OnFileSkipped(path string, err error)   {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)                {}
