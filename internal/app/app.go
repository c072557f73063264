// Package app wires configuration, logging and the execution modes into a
// single runnable application behind the radcalc binary.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/goessl/sumofradicals/internal/cli"
	"github.com/goessl/sumofradicals/internal/config"
	apperrors "github.com/goessl/sumofradicals/internal/errors"
	"github.com/goessl/sumofradicals/internal/logging"
	"github.com/goessl/sumofradicals/internal/orchestration"
	"github.com/goessl/sumofradicals/internal/selftest"
	"github.com/goessl/sumofradicals/internal/server"
	"github.com/goessl/sumofradicals/internal/tui"
	"github.com/goessl/sumofradicals/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents the radcalc application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: full argument vector including the program name.
//   - errWriter: destination for usage and flag error output.
//   - opts: optional construction overrides.
//
// Returns the application, or a ConfigError when parsing or validation
// fails.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "radcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	switch {
	case a.Config.Serve:
		return a.runServe(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Selftest:
		return a.runSelftest(ctx, out)
	case a.Config.REPL:
		return a.runREPL(out)
	case len(a.Config.Expressions) == 0:
		// No expressions and no explicit mode: drop into the REPL.
		return a.runREPL(out)
	default:
		return a.runEvaluate(ctx, out)
	}
}

// lifecycleContext derives the per-mode execution context, bounded by the
// configured timeout and canceled on SIGINT/SIGTERM.
func (a *Application) lifecycleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// runEvaluate evaluates the positional expressions as a batch.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(len(a.Config.Expressions), a.Config.Timeout, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.EvaluateAll(ctx, a.Config.Expressions, progressReporter, progressOut)

	presenter := cli.CLIResultPresenter{Opts: cli.PresentOptions{
		Latex: a.Config.Latex,
		Float: a.Config.Float,
		Quiet: a.Config.Quiet,
	}}
	return orchestration.AnalyzeResults(results, presenter, out)
}

// runREPL starts the interactive read-eval-print loop on stdin.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Latex:         a.Config.Latex,
		Float:         a.Config.Float,
		Seed:          a.Config.Seed,
		RandTerms:     a.Config.RandTerms,
		RandPrecision: a.Config.RandPrecision,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI calculator.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()

	if err := tui.Run(ctx, Version); err != nil {
		// bubbletea reports cancellation as its own error value, so the
		// context is the authority on why the program stopped.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return exitCodeForContext(ctxErr)
		}
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runServe runs the HTTP evaluation server until the context is canceled.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.NewServer(a.Config.Port, a.Logger)
	err := srv.Run(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		// A canceled context is the normal shutdown path in serve mode.
		return apperrors.ExitSuccess
	}
	a.Logger.Error("server terminated", err)
	return apperrors.ExitErrorGeneric
}

// runSelftest runs the randomized consistency suite.
func (a *Application) runSelftest(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()

	seed := a.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.Logger.Info("self-test starting",
		logging.Int("iterations", a.Config.Iterations),
		logging.Int64("seed", seed))

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	stats, err := selftest.Run(ctx, selftest.Options{
		Iterations: a.Config.Iterations,
		Seed:       seed,
		Terms:      a.Config.RandTerms,
		Precision:  a.Config.RandPrecision,
	}, a.Logger, progressReporter, progressOut)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "self-test: %d rounds, %d failures\n", stats.Rounds, stats.Failures)
	}

	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case apperrors.IsContextError(err):
		return exitCodeForContext(err)
	case stats.Failures > 0:
		fmt.Fprintf(a.ErrWriter, "Self-test failed: %v (reproduce with -seed %d)\n", err, seed)
		return apperrors.ExitErrorSelftest
	default:
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
}

// exitCodeForContext maps a context error to the corresponding exit code.
func exitCodeForContext(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ExitErrorTimeout
	}
	return apperrors.ExitErrorCanceled
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
