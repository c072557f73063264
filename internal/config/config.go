// Package config defines the application configuration and its sources.
//
// Precedence, highest first: command-line flags, RADCALC_* environment
// variables, built-in defaults. Environment variables only apply to flags
// that were not set explicitly on the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// Expressions are the positional arguments to evaluate in the default
	// one-shot mode.
	Expressions []string

	// Mode selectors. At most one may be set.
	REPL     bool
	TUI      bool
	Serve    bool
	Selftest bool

	// Timeout bounds the whole invocation.
	Timeout time.Duration

	// Port is the HTTP listen port in serve mode.
	Port int

	// Iterations is the per-property round count in self-test mode.
	Iterations int

	// Seed seeds the random generator for self-test and the random REPL
	// command. Zero means derive from the current time.
	Seed int64

	// RandTerms and RandPrecision shape randomly generated values.
	RandTerms     int
	RandPrecision int

	// Output toggles. Latex and Float add renderings next to the exact one.
	Latex bool
	Float bool

	// Quiet suppresses progress output; Verbose enables debug logging.
	Quiet   bool
	Verbose bool

	// Version requests printing the version string and exiting.
	Version bool
}

// ParseConfig parses command-line flags and applies environment overrides.
//
// Parameters:
//   - progName: program name used in usage output.
//   - args: command-line arguments, excluding the program name.
//   - errWriter: destination for usage and flag error output.
//
// Returns the parsed configuration, or a ConfigError describing the first
// problem encountered.
func ParseConfig(progName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{}

	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.BoolVar(&cfg.REPL, "repl", false, "Run the interactive line-based calculator")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run the full-screen terminal calculator")
	fs.BoolVar(&cfg.Serve, "serve", false, "Run the HTTP evaluation server")
	fs.BoolVar(&cfg.Selftest, "selftest", false, "Run the randomized self-test suite and exit")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Global timeout for the invocation")
	fs.IntVar(&cfg.Port, "port", DefaultPort, "HTTP listen port (serve mode)")
	fs.IntVar(&cfg.Iterations, "iterations", DefaultSelftestIterations, "Rounds per property (selftest mode)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Random seed; 0 derives one from the clock")
	fs.IntVar(&cfg.RandTerms, "rand-terms", DefaultRandTerms, "Index and radicand bound for random values")
	fs.IntVar(&cfg.RandPrecision, "rand-precision", DefaultRandPrecision, "Coefficient bound for random values")
	fs.BoolVar(&cfg.Latex, "latex", false, "Also print the LaTeX rendering of each result")
	fs.BoolVar(&cfg.Float, "float", false, "Also print a floating-point approximation of each result")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options] [expression ...]\n\n", progName)
		fmt.Fprintf(errWriter, "Evaluates expressions over integer radicals exactly, e.g.\n")
		fmt.Fprintf(errWriter, "  %s \"(1+sqrt(2))^3\" \"root(3,2)*root(3,4)\"\n\n", progName)
		fmt.Fprintf(errWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables with the %s prefix override defaults\n", EnvPrefix)
		fmt.Fprintf(errWriter, "for flags not given on the command line, e.g. %sPORT, %sTIMEOUT.\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("invalid command-line flags: %v", err)
	}

	applyEnvOverrides(fs, &cfg)
	cfg.Expressions = fs.Args()

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// applyEnvOverrides fills in configuration from RADCALC_* environment
// variables for every flag not explicitly set on the command line.
func applyEnvOverrides(fs *flag.FlagSet, cfg *AppConfig) {
	if !isFlagSet(fs, "timeout") {
		cfg.Timeout = getEnvDuration("TIMEOUT", cfg.Timeout)
	}
	if !isFlagSet(fs, "port") {
		cfg.Port = getEnvInt("PORT", cfg.Port)
	}
	if !isFlagSet(fs, "iterations") {
		cfg.Iterations = getEnvInt("ITERATIONS", cfg.Iterations)
	}
	if !isFlagSet(fs, "seed") {
		cfg.Seed = getEnvInt64("SEED", cfg.Seed)
	}
	if !isFlagSet(fs, "rand-terms") {
		cfg.RandTerms = getEnvInt("RAND_TERMS", cfg.RandTerms)
	}
	if !isFlagSet(fs, "rand-precision") {
		cfg.RandPrecision = getEnvInt("RAND_PRECISION", cfg.RandPrecision)
	}
	if !isFlagSet(fs, "latex") {
		cfg.Latex = getEnvBool("LATEX", cfg.Latex)
	}
	if !isFlagSet(fs, "float") {
		cfg.Float = getEnvBool("FLOAT", cfg.Float)
	}
	if !isFlagSet(fs, "quiet") {
		cfg.Quiet = getEnvBool("QUIET", cfg.Quiet)
	}
	if !isFlagSet(fs, "verbose") {
		cfg.Verbose = getEnvBool("VERBOSE", cfg.Verbose)
	}
}

// Validate checks the configuration for consistency.
func (c *AppConfig) Validate() error {
	modes := 0
	for _, m := range []bool{c.REPL, c.TUI, c.Serve, c.Selftest} {
		if m {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("at most one of -repl, -tui, -serve, -selftest may be given")
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive")
	}
	if c.Port < 1 || c.Port > 65535 {
		return apperrors.NewConfigError("port %d out of range 1..65535", c.Port)
	}
	if c.Iterations < 1 || c.Iterations > MaxSelftestIterations {
		return apperrors.NewConfigError("iterations %d out of range 1..%d", c.Iterations, MaxSelftestIterations)
	}
	if c.RandTerms < 2 {
		return apperrors.NewConfigError("rand-terms must be at least 2")
	}
	if c.RandPrecision < 1 {
		return apperrors.NewConfigError("rand-precision must be at least 1")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	return nil
}
