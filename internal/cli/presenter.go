package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/goessl/sumofradicals/internal/orchestration"
	"github.com/goessl/sumofradicals/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during batch evaluation.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing evaluations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// PresentOptions controls which renderings accompany the exact result.
type PresentOptions struct {
	// Latex adds the LaTeX rendering of each result.
	Latex bool
	// Float adds a floating-point approximation of each result.
	Float bool
	// Quiet restricts output to the bare result, one per line.
	Quiet bool
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for evaluation results in the
// command-line interface.
type CLIResultPresenter struct {
	Opts PresentOptions
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult displays one evaluation outcome. Failures are rendered to
// the same writer so batch output stays in input order.
func (p CLIResultPresenter) PresentResult(res orchestration.EvaluationResult, out io.Writer) {
	if res.Err != nil {
		if p.Opts.Quiet {
			fmt.Fprintf(out, "error: %v\n", res.Err)
			return
		}
		fmt.Fprintf(out, "%s%s%s\n  %s✗ %v%s\n",
			ui.ColorBold(), res.Expr, ui.ColorReset(),
			ui.ColorRed(), res.Err, ui.ColorReset())
		return
	}

	if p.Opts.Quiet {
		fmt.Fprintf(out, "%s\n", res.Value)
		return
	}

	fmt.Fprintf(out, "%s%s%s\n", ui.ColorBold(), res.Expr, ui.ColorReset())
	fmt.Fprintf(out, "  = %s%s%s\n", ui.ColorGreen(), res.Value, ui.ColorReset())
	if p.Opts.Latex {
		fmt.Fprintf(out, "  latex: %s%s%s\n", ui.ColorCyan(), res.Value.Latex(), ui.ColorReset())
	}
	if p.Opts.Float {
		fmt.Fprintf(out, "  ≈ %s%.12g%s\n", ui.ColorYellow(), res.Value.Float64(), ui.ColorReset())
	}
	if res.Duration > 0 {
		fmt.Fprintf(out, "  time: %s%s%s\n", ui.ColorGrey(), FormatExecutionDuration(res.Duration), ui.ColorReset())
	}
}
