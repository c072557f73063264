package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version string. It is overridden at build time
// via -ldflags "-X github.com/goessl/sumofradicals/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the argument list requests the version,
// without going through full flag parsing. This lets the version short-circuit
// before any configuration validation runs.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "radcalc %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
