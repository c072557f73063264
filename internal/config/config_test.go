package config

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("radcalc", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Iterations != DefaultSelftestIterations {
		t.Errorf("Iterations = %d, want %d", cfg.Iterations, DefaultSelftestIterations)
	}
	if cfg.REPL || cfg.TUI || cfg.Serve || cfg.Selftest {
		t.Errorf("no mode flag given, got REPL=%v TUI=%v Serve=%v Selftest=%v",
			cfg.REPL, cfg.TUI, cfg.Serve, cfg.Selftest)
	}
	if len(cfg.Expressions) != 0 {
		t.Errorf("Expressions = %v, want empty", cfg.Expressions)
	}
}

func TestParseConfig_FlagsAndPositionals(t *testing.T) {
	args := []string{"-latex", "-timeout", "30s", "-seed", "42", "1+sqrt(2)", "root(3,2)"}
	cfg, err := ParseConfig("radcalc", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !cfg.Latex {
		t.Error("Latex = false, want true")
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	want := []string{"1+sqrt(2)", "root(3,2)"}
	if len(cfg.Expressions) != len(want) {
		t.Fatalf("Expressions = %v, want %v", cfg.Expressions, want)
	}
	for i := range want {
		if cfg.Expressions[i] != want[i] {
			t.Errorf("Expressions[%d] = %q, want %q", i, cfg.Expressions[i], want[i])
		}
	}
}

func TestParseConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvPrefix+"PORT", "9090")
	t.Setenv(EnvPrefix+"QUIET", "true")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")

	cfg, err := ParseConfig("radcalc", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090 from environment", cfg.Port)
	}
	if !cfg.Quiet {
		t.Error("Quiet = false, want true from environment")
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s from environment", cfg.Timeout)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"PORT", "9090")

	cfg, err := ParseConfig("radcalc", []string{"-port", "7070"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("Port = %d, want 7070 (flag overrides environment)", cfg.Port)
	}
}

func TestParseConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"PORT", "not-a-number")
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")

	cfg, err := ParseConfig("radcalc", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d on malformed env value", cfg.Port, DefaultPort)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v on malformed env value", cfg.Timeout, DefaultTimeout)
	}
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two modes", []string{"-repl", "-serve"}},
		{"zero timeout", []string{"-timeout", "0s"}},
		{"port out of range", []string{"-port", "70000"}},
		{"zero iterations", []string{"-iterations", "0"}},
		{"rand-terms too small", []string{"-rand-terms", "1"}},
		{"quiet and verbose", []string{"-quiet", "-verbose"}},
		{"unknown flag", []string{"-frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("radcalc", tt.args, io.Discard)
			if err == nil {
				t.Fatal("ParseConfig() error = nil, want ConfigError")
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error = %T, want apperrors.ConfigError", err)
			}
		})
	}
}

func TestParseConfig_UsageMentionsEnvPrefix(t *testing.T) {
	var sb strings.Builder
	_, err := ParseConfig("radcalc", []string{"-h"}, &sb)
	if err == nil {
		t.Fatal("ParseConfig(-h) error = nil, want error")
	}
	if !strings.Contains(sb.String(), EnvPrefix) {
		t.Errorf("usage output does not mention env prefix %q", EnvPrefix)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"YES", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // malformed keeps default
	}
	for _, tt := range tests {
		t.Setenv(EnvPrefix+"TESTBOOL", tt.val)
		if got := getEnvBool("TESTBOOL", true); got != tt.want {
			t.Errorf("getEnvBool(%q, true) = %v, want %v", tt.val, got, tt.want)
		}
	}
}
