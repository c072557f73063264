package orchestration

import (
	"io"
	"sync"
)

// ProgressUpdate reports evaluation progress. Index identifies the
// expression that finished; Completed and Total describe the overall batch.
type ProgressUpdate struct {
	Index     int
	Completed int
	Total     int
}

// ProgressReporter abstracts the display of progress updates so the
// orchestrator does not depend on a specific UI. The CLI provides a spinner
// implementation; the terminal calculator bridges updates into its event
// loop; quiet mode drains them silently.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It must consume the channel until it is closed and signal wg when done.
	//
	// Parameters:
	//   - wg: The wait group to signal on completion.
	//   - progressChan: The channel of progress updates to consume.
	//   - total: The number of expressions in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc adapts a function to the ProgressReporter interface.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter discards all progress updates. Used in quiet mode and
// in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter abstracts the display of evaluation results.
type ResultPresenter interface {
	// PresentResult displays one evaluation outcome.
	PresentResult(result EvaluationResult, out io.Writer)
}
