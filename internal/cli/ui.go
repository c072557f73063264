//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/goessl/sumofradicals/internal/orchestration"
	"github.com/goessl/sumofradicals/internal/ui"
)

// FormatExecutionDuration formats a duration for display: microseconds
// below a millisecond, milliseconds below a second, and the default
// representation beyond that. Evaluation of a single expression usually
// lands in the microsecond range, where time.Duration.String is noisy.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner behind DisplayProgress so the
// rendering loop can be tested against a mock. It exposes the minimal
// controls: start, stop, and updating the trailing status text.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner glyph.
	UpdateSuffix(suffix string)
}

// realSpinner adapts the spinner library to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner builds the production spinner. Tests swap it for a mock.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Animation interval matches ProgressRefreshRate so suffix updates land
	// on frame boundaries.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes progress updates and renders a spinner with a
// textual progress bar until the channel is closed. It signals wg when the
// channel is drained and the spinner has stopped.
//
// Parameters:
//   - wg: The wait group to signal on completion.
//   - progressChan: The channel of progress updates to consume.
//   - total: The number of expressions in the batch.
//   - out: The writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(fmt.Sprintf(" %s 0/%d", progressBar(0, ProgressBarWidth), total))
	sp.Start()
	defer sp.Stop()

	for update := range progressChan {
		frac := 0.0
		if update.Total > 0 {
			frac = float64(update.Completed) / float64(update.Total)
		}
		sp.UpdateSuffix(fmt.Sprintf(" %s %d/%d",
			progressBar(frac, ProgressBarWidth), update.Completed, update.Total))
	}
}

// progressBar renders a fixed-width bar for a normalized progress value.
// Values outside [0, 1] are clamped.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	filled := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// PrintExecutionConfig displays the batch size and timeout before a run.
//
// Parameters:
//   - count: The number of expressions to evaluate.
//   - timeout: The global timeout for the batch.
//   - out: The writer for standard output.
func PrintExecutionConfig(count int, timeout time.Duration, out io.Writer) {
	noun := "expressions"
	if count == 1 {
		noun = "expression"
	}
	fmt.Fprintf(out, "Evaluating %s%d%s %s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), count, ui.ColorReset(), noun,
		ui.ColorYellow(), timeout, ui.ColorReset())
}
