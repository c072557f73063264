package config

import "time"

// Operational defaults and hard limits. Flag and environment overrides are
// clamped against the hard limits in Validate.
const (
	// DefaultTimeout bounds a whole invocation, including self-test runs.
	DefaultTimeout = 5 * time.Minute

	// DefaultPort is the HTTP listen port for serve mode.
	DefaultPort = 8080

	// DefaultSelftestIterations is the number of randomized rounds the
	// self-test runs per property.
	DefaultSelftestIterations = 500

	// DefaultRandTerms bounds the index and radicand range of randomly
	// generated values (indices 2..n, radicands 2..n).
	DefaultRandTerms = 5

	// DefaultRandPrecision bounds random coefficients to [-p/2, +p/2].
	DefaultRandPrecision = 20

	// MaxExponent is the largest exponent the expression parser accepts.
	// Repeated squaring keeps Pow cheap, but term counts can grow
	// multiplicatively with every multiplication.
	MaxExponent = 64

	// MaxExpressionLength is the longest expression the parser accepts,
	// in bytes.
	MaxExpressionLength = 64 * 1024

	// MaxRequestBodyBytes caps the size of an HTTP evaluation request.
	MaxRequestBodyBytes = 1 << 20

	// MaxSelftestIterations caps the self-test round count.
	MaxSelftestIterations = 1_000_000

	// ServerShutdownGrace is how long the HTTP server gets to drain
	// in-flight requests on shutdown.
	ServerShutdownGrace = 10 * time.Second

	// ServerReadTimeout and ServerWriteTimeout harden the HTTP server
	// against slow clients.
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
)
