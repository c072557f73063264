// Package orchestration coordinates the concurrent evaluation of expression
// batches and turns the collected outcomes into process exit codes.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
	"github.com/goessl/sumofradicals/internal/parser"
	"github.com/goessl/sumofradicals/internal/radical"
)

// EvaluationResult encapsulates the outcome of evaluating one expression.
type EvaluationResult struct {
	// Expr is the source text that was evaluated.
	Expr string
	// Value is the exact result. It is the zero value if an error occurred.
	Value radical.Value
	// Duration is the time taken to evaluate the expression.
	Duration time.Duration
	// Err contains any error that occurred during evaluation.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// evaluation goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// EvaluateAll evaluates every expression concurrently and returns the
// outcomes in input order.
//
// Expressions are independent, so they run on an errgroup bounded by the
// number of logical processors. Cancellation is cooperative: an expression
// already being evaluated runs to completion, but expressions not yet
// started are reported with the context's error.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - exprs: The expressions to evaluate.
//   - progressReporter: Receives completion updates (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []EvaluationResult: One result per input expression, in input order.
func EvaluateAll(ctx context.Context, exprs []string, progressReporter ProgressReporter, out io.Writer) []EvaluationResult {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]EvaluationResult, len(exprs))
	progressChan := make(chan ProgressUpdate, len(exprs)*ProgressBufferMultiplier+1)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(exprs), out)

	var completed atomic.Int64
	for i, expr := range exprs {
		idx, src := i, expr
		g.Go(func() error {
			start := time.Now()
			if err := ctx.Err(); err != nil {
				results[idx] = EvaluationResult{Expr: src, Err: err}
				return nil
			}
			v, err := parser.Parse(src)
			results[idx] = EvaluationResult{
				Expr: src, Value: v, Duration: time.Since(start), Err: err,
			}
			progressChan <- ProgressUpdate{
				Index:     idx,
				Completed: int(completed.Add(1)),
				Total:     len(exprs),
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults presents every outcome and derives the process exit code.
//
// All expressions are presented even when some fail, so a batch run shows
// everything it can. The exit code reflects the most severe failure:
// context cancellation and timeouts take precedence over evaluation errors.
//
// Parameters:
//   - results: The evaluation outcomes from EvaluateAll.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []EvaluationResult, presenter ResultPresenter, out io.Writer) int {
	var firstCtxError error
	failures := 0

	for _, res := range results {
		presenter.PresentResult(res, out)
		if res.Err != nil {
			failures++
			if firstCtxError == nil && apperrors.IsContextError(res.Err) {
				firstCtxError = res.Err
			}
		}
	}

	if failures == 0 {
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "\n%d of %d expressions failed.\n", failures, len(results))
	switch {
	case errors.Is(firstCtxError, context.DeadlineExceeded):
		return apperrors.ExitErrorTimeout
	case errors.Is(firstCtxError, context.Canceled):
		return apperrors.ExitErrorCanceled
	default:
		return apperrors.ExitErrorGeneric
	}
}
