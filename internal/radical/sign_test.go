package radical

import (
	"errors"
	"testing"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

func mustSign(t *testing.T, v Value) int {
	t.Helper()
	s, err := v.Sign()
	if err != nil {
		t.Fatalf("Sign(%s) returned error: %v", v, err)
	}
	return s
}

func TestSign_BaseCases(t *testing.T) {
	if got := mustSign(t, Zero()); got != 0 {
		t.Errorf("Sign(0) = %d, want 0", got)
	}
	if got := mustSign(t, mustNew(t, []Term{tm(2, 3, 5)}, 7)); got != 1 {
		t.Errorf("Sign(5√3/7) = %d, want 1", got)
	}
	if got := mustSign(t, mustNew(t, []Term{tm(2, 3, -5)}, 7)); got != -1 {
		t.Errorf("Sign(−5√3/7) = %d, want −1", got)
	}
}

func TestSign_UniformTerms(t *testing.T) {
	pos := mustNew(t, []Term{tm(1, 1, 2), tm(2, 2, 1), tm(2, 3, 4)}, 9)
	if got := mustSign(t, pos); got != 1 {
		t.Errorf("all-positive sum: Sign = %d, want 1", got)
	}
	if got := mustSign(t, pos.Neg()); got != -1 {
		t.Errorf("all-negative sum: Sign = %d, want −1", got)
	}
}

// TestSign_CloseCalls pins down sums whose floating-point magnitudes
// sit near zero, where the squaring recursion has to do real work.
func TestSign_CloseCalls(t *testing.T) {
	cases := []struct {
		name  string
		terms []Term
		want  int
	}{
		{"3 − 2√2 > 0", []Term{tm(1, 1, 3), tm(2, 2, -2)}, 1},
		{"7 − 5√2 < 0", []Term{tm(1, 1, 7), tm(2, 2, -5)}, -1},
		{"√2 + √3 − √10 < 0", []Term{tm(2, 2, 1), tm(2, 3, 1), tm(2, 10, -1)}, -1},
		{"√2 + √3 − 3 > 0", []Term{tm(2, 2, 1), tm(2, 3, 1), tm(1, 1, -3)}, 1},
		{"√5 + √7 − 2√6 < 0", []Term{tm(2, 5, 1), tm(2, 7, 1), tm(2, 6, -2)}, -1},
		{"1 + √2 − √3 − √6 < 0", []Term{tm(1, 1, 1), tm(2, 2, 1), tm(2, 3, -1), tm(2, 6, -1)}, -1},
		{"99 − 70√2 > 0", []Term{tm(1, 1, 99), tm(2, 2, -70)}, 1},
		{"−99 + 70√2 < 0", []Term{tm(1, 1, -99), tm(2, 2, 70)}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := mustNew(t, tc.terms, 1)
			if got := mustSign(t, v); got != tc.want {
				t.Errorf("Sign = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestSign_ExactZero builds values that are exactly zero through
// arithmetic cancellation and expects sign 0, the boundary a float
// comparison cannot decide.
func TestSign_ExactZero(t *testing.T) {
	x := mustNew(t, []Term{tm(1, 1, 4), tm(2, 2, -3), tm(2, 27, 2)}, 5)
	if got := mustSign(t, x.Sub(x)); got != 0 {
		t.Errorf("Sign(x − x) = %d, want 0", got)
	}

	// (1+√2)(√2−1) = 1 exactly; subtracting 1 must hit zero.
	p := mustNew(t, []Term{tm(1, 1, 1), tm(2, 2, 1)}, 1)
	q := mustNew(t, []Term{tm(1, 1, -1), tm(2, 2, 1)}, 1)
	if got := mustSign(t, p.Mul(q).SubInt(intOne)); got != 0 {
		t.Errorf("Sign((1+√2)(√2−1) − 1) = %d, want 0", got)
	}
}

func TestSign_UnsupportedIndex(t *testing.T) {
	v := mustNew(t, []Term{tm(3, 2, 1), tm(1, 1, -1)}, 1)
	_, err := v.Sign()
	var unsupported apperrors.UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Sign of a cube-root value: error = %v, want UnsupportedError", err)
	}
	if unsupported.Operation != "Sign" {
		t.Errorf("UnsupportedError.Operation = %q, want %q", unsupported.Operation, "Sign")
	}
}

func TestCompare(t *testing.T) {
	a := mustNew(t, []Term{tm(2, 2, 1)}, 1)  // √2
	b := mustNew(t, []Term{tm(1, 1, 3)}, 2)  // 3/2
	got, err := a.Compare(b)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if got != -1 {
		t.Errorf("Compare(√2, 3/2) = %d, want −1", got)
	}
	if got, _ := b.Compare(a); got != 1 {
		t.Errorf("Compare(3/2, √2) = %d, want 1", got)
	}
	if got, _ := a.Compare(a); got != 0 {
		t.Errorf("Compare(x, x) = %d, want 0", got)
	}
}

func TestAbs(t *testing.T) {
	v := mustNew(t, []Term{tm(1, 1, 7), tm(2, 2, -5)}, 3) // negative
	abs, err := v.Abs()
	if err != nil {
		t.Fatalf("Abs returned error: %v", err)
	}
	if !abs.Equal(v.Neg()) {
		t.Errorf("Abs(%s) = %s, want %s", v, abs, v.Neg())
	}
	pos := v.Neg()
	abs2, _ := pos.Abs()
	if !abs2.Equal(pos) {
		t.Error("Abs of a positive value should be unchanged")
	}
}
