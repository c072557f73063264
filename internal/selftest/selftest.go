// Package selftest runs randomized consistency checks over the arithmetic
// core: ring laws, inversion round-trips, sign soundness against a
// floating-point shadow and canonical-form idempotence. It exists to catch
// regressions on real hardware with real seeds, complementing the unit and
// property tests.
package selftest

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
	"github.com/goessl/sumofradicals/internal/logging"
	"github.com/goessl/sumofradicals/internal/orchestration"
	"github.com/goessl/sumofradicals/internal/radical"
)

// Options configures a self-test run.
type Options struct {
	// Iterations is the number of rounds per worker batch to run in total.
	Iterations int
	// Seed seeds the random generators. Zero lets the caller pick one.
	Seed int64
	// Terms bounds the index and radicand ranges of generated values.
	Terms int
	// Precision bounds generated coefficients to [-Precision/2, +Precision/2].
	Precision int
}

// Stats summarizes a completed run.
type Stats struct {
	// Rounds is the number of rounds actually executed.
	Rounds int64
	// Failures is the number of rounds that detected an inconsistency.
	Failures int64
}

// floatTolerance is the relative tolerance for float shadow comparisons.
// The shadow is only advisory: it guards against gross errors, and rounds
// whose shadow is too close to zero skip the sign check entirely.
const floatTolerance = 1e-6

// Run executes the self-test and returns its statistics.
//
// Rounds are distributed over an errgroup bounded by the number of logical
// processors. Every worker uses an independent generator derived from the
// seed, so a run is reproducible regardless of scheduling. The first
// detected inconsistency is logged in full; the run continues so the total
// failure count is meaningful.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines.
//   - opts: The run configuration.
//   - logger: The structured logger for failure details.
//   - progressReporter: Receives per-round completion updates.
//   - out: The io.Writer for progress display.
//
// Returns:
//   - Stats: The executed round and failure counts.
//   - error: An InternalError when inconsistencies were found, or the
//     context's error when the run was interrupted.
func Run(ctx context.Context, opts Options, logger logging.Logger, progressReporter orchestration.ProgressReporter, out io.Writer) (Stats, error) {
	workers := runtime.NumCPU()
	if workers > opts.Iterations {
		workers = opts.Iterations
	}
	if workers < 1 {
		workers = 1
	}

	progressChan := make(chan orchestration.ProgressUpdate, workers*orchestration.ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, opts.Iterations, out)

	var rounds, failures atomic.Int64
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		workerID := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(workerID)))
			for i := workerID; i < opts.Iterations; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := runRound(rng, opts); err != nil {
					if failures.Add(1) == 1 {
						logger.Error("self-test inconsistency", err,
							logging.Int("round", i),
							logging.Int("worker", workerID))
					}
				}
				progressChan <- orchestration.ProgressUpdate{
					Index:     i,
					Completed: int(rounds.Add(1)),
					Total:     opts.Iterations,
				}
			}
			return nil
		})
	}

	err := g.Wait()
	close(progressChan)
	displayWg.Wait()

	stats := Stats{Rounds: rounds.Load(), Failures: failures.Load()}
	if err != nil {
		return stats, err
	}
	if stats.Failures > 0 {
		return stats, apperrors.InternalError{
			Message: fmt.Sprintf("%d of %d self-test rounds failed", stats.Failures, stats.Rounds),
		}
	}
	logger.Info("self-test passed",
		logging.Int("rounds", int(stats.Rounds)),
		logging.Int("terms", opts.Terms),
		logging.Int("precision", opts.Precision))
	return stats, nil
}

// runRound performs one randomized round of all checks.
func runRound(rng *rand.Rand, opts Options) error {
	a := radical.Rand(rng, opts.Terms, opts.Precision)
	b := radical.Rand(rng, opts.Terms, opts.Precision)
	c := radical.Rand(rng, opts.Terms, opts.Precision)

	if err := checkRingLaws(a, b, c); err != nil {
		return err
	}
	if err := checkFloatShadow(a, b); err != nil {
		return err
	}

	s := radical.RandSqrt(rng, opts.Terms, opts.Precision)
	if err := checkSqrtOps(s); err != nil {
		return err
	}
	return nil
}

// checkRingLaws verifies commutativity, associativity and distributivity
// by exact structural equality.
func checkRingLaws(a, b, c radical.Value) error {
	if !a.Add(b).Equal(b.Add(a)) {
		return fmt.Errorf("addition not commutative for %s and %s", a, b)
	}
	if !a.Mul(b).Equal(b.Mul(a)) {
		return fmt.Errorf("multiplication not commutative for %s and %s", a, b)
	}
	if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
		return fmt.Errorf("addition not associative for %s, %s, %s", a, b, c)
	}
	if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
		return fmt.Errorf("distributivity violated for %s, %s, %s", a, b, c)
	}
	if !a.Sub(a).IsZero() {
		return fmt.Errorf("x-x not zero for %s", a)
	}
	if !a.Mul(radical.One()).Equal(a) {
		return fmt.Errorf("multiplicative identity violated for %s", a)
	}
	return nil
}

// checkFloatShadow verifies that exact arithmetic agrees with the float
// approximation within tolerance.
func checkFloatShadow(a, b radical.Value) error {
	sum := a.Add(b).Float64()
	want := a.Float64() + b.Float64()
	if !closeEnough(sum, want) {
		return fmt.Errorf("float shadow mismatch for (%s)+(%s): exact %g, shadow %g", a, b, sum, want)
	}
	prod := a.Mul(b).Float64()
	want = a.Float64() * b.Float64()
	if !closeEnough(prod, want) {
		return fmt.Errorf("float shadow mismatch for (%s)*(%s): exact %g, shadow %g", a, b, prod, want)
	}
	return nil
}

// checkSqrtOps verifies sign soundness and the inversion round-trip on a
// square-root-only value.
func checkSqrtOps(s radical.Value) error {
	sign, err := s.Sign()
	if err != nil {
		return fmt.Errorf("sign of %s: %w", s, err)
	}
	approx := s.Float64()
	if math.Abs(approx) > floatTolerance {
		shadow := 0
		if approx > 0 {
			shadow = 1
		} else {
			shadow = -1
		}
		if sign != shadow {
			return fmt.Errorf("sign of %s: exact %d, shadow %d (approx %g)", s, sign, shadow, approx)
		}
	}

	if s.IsZero() {
		return nil
	}
	inv, err := s.Invert()
	if err != nil {
		return fmt.Errorf("invert %s: %w", s, err)
	}
	if !s.Mul(inv).Equal(radical.One()) {
		return fmt.Errorf("inversion round-trip failed for %s", s)
	}
	return nil
}

// closeEnough reports whether two floats agree within the relative
// tolerance. Both being non-finite counts as agreement since overflow is
// a property of the shadow, not the exact value.
func closeEnough(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(a-b) <= floatTolerance*scale
}
