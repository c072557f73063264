// Environment variable lookups backing the RADCALC_* override layer.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is prepended to every environment variable consulted for
// configuration overrides.
const EnvPrefix = "RADCALC_"

// lookupEnv reads the prefixed variable and reports whether it was set to
// a non-empty value.
func lookupEnv(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + key)
	return val, val != ""
}

// getEnvString returns the prefixed variable, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt parses the prefixed variable as an int. Unset or malformed
// values keep the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt64 parses the prefixed variable as an int64. Unset or malformed
// values keep the default.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool parses the prefixed variable as a boolean. "true", "1" and
// "yes" enable, "false", "0" and "no" disable, case-insensitively; any
// other value keeps the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := lookupEnv(key); ok {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration parses the prefixed variable with time.ParseDuration
// ("30s", "5m", "1h30m"). Unset or malformed values keep the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether the named flag appeared on the command line.
// Environment overrides only apply when it did not.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
