// Package apperrors defines the typed error values and process exit
// codes shared across the application. Every error here reflects a
// caller contract violation or an out-of-scope request; there is no
// transient or retryable class.
package apperrors
