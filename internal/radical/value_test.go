package radical

import (
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

// mustNew builds a Value from int64 shorthand terms, failing the test
// on construction errors.
func mustNew(t *testing.T, terms []Term, den int64) Value {
	t.Helper()
	v, err := New(terms, big.NewInt(den))
	if err != nil {
		t.Fatalf("New(%v, %d) returned error: %v", terms, den, err)
	}
	return v
}

// tm is a test shorthand for a Term literal.
func tm(index int, radicand, coeff int64) Term {
	return Term{Index: index, Radicand: big.NewInt(radicand), Coeff: big.NewInt(coeff)}
}

func TestNew_IntegerRoundTrip(t *testing.T) {
	v := mustNew(t, []Term{tm(1, 1, 5)}, 1)
	got, err := v.BigInt()
	if err != nil {
		t.Fatalf("BigInt() returned error: %v", err)
	}
	if got.Int64() != 5 {
		t.Errorf("BigInt() = %s, want 5", got)
	}
	if !v.IsInteger() || !v.IsRational() {
		t.Error("integer value should report IsInteger and IsRational")
	}
}

func TestNew_DomainErrors(t *testing.T) {
	cases := []struct {
		name  string
		terms []Term
		den   int64
	}{
		{"zero denominator", []Term{tm(1, 1, 1)}, 0},
		{"zero index", []Term{tm(0, 2, 1)}, 1},
		{"negative index", []Term{tm(-2, 2, 1)}, 1},
		{"zero radicand", []Term{tm(2, 0, 1)}, 1},
		{"negative radicand", []Term{tm(2, -3, 1)}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.terms, big.NewInt(tc.den))
			var domainErr apperrors.DomainError
			if !errors.As(err, &domainErr) {
				t.Errorf("New() error = %v, want DomainError", err)
			}
		})
	}
}

// TestNew_NormalizesPerfectPowers covers the construction of a
// degree-2 radicand 4 over denominator −2: the perfect square folds
// into the coefficient and the sign moves into the numerator, leaving
// the canonical −1.
func TestNew_NormalizesPerfectPowers(t *testing.T) {
	v := mustNew(t, []Term{tm(2, 4, 1)}, -2)
	want := FromInt64(-1)
	if !v.Equal(want) {
		t.Errorf("√4/(−2) = %s, want %s", v, want)
	}
}

func TestNew_MergesAndDropsTerms(t *testing.T) {
	// √8 + √2 merges to 3√2; the zero-coefficient entry vanishes.
	v := mustNew(t, []Term{tm(2, 8, 1), tm(2, 2, 1), tm(3, 5, 0)}, 1)
	want := mustNew(t, []Term{tm(2, 2, 3)}, 1)
	if !v.Equal(want) {
		t.Errorf("√8+√2 = %s, want %s", v, want)
	}
}

func TestNew_LowestTerms(t *testing.T) {
	v := mustNew(t, []Term{tm(1, 1, 4), tm(2, 3, 6)}, 10)
	terms := v.Terms()
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if v.Denominator().Int64() != 5 {
		t.Errorf("denominator = %s, want 5", v.Denominator())
	}
	if terms[0].Coeff.Int64() != 2 || terms[1].Coeff.Int64() != 3 {
		t.Errorf("coefficients = %s, %s, want 2, 3", terms[0].Coeff, terms[1].Coeff)
	}
}

// TestNew_Idempotent reconstructs a canonical value from its own parts
// and expects the identical representation back.
func TestNew_Idempotent(t *testing.T) {
	v := mustNew(t, []Term{tm(2, 12, 10), tm(1, 9, -4), tm(3, 54, 2)}, -14)
	again, err := New(v.Terms(), v.Denominator())
	if err != nil {
		t.Fatalf("re-normalizing returned error: %v", err)
	}
	if !v.Equal(again) {
		t.Errorf("normalization not idempotent: %s != %s", v, again)
	}
}

func TestZeroValue(t *testing.T) {
	var v Value // the zero Value is usable as canonical zero
	if !v.IsZero() || v.Len() != 0 {
		t.Error("zero Value should be the canonical zero")
	}
	if v.Denominator().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("zero denominator = %s, want 1", v.Denominator())
	}
	if !v.Equal(Zero()) {
		t.Error("zero Value should equal Zero()")
	}
	got, err := v.BigInt()
	if err != nil || got.Sign() != 0 {
		t.Errorf("BigInt() of zero = (%v, %v), want 0", got, err)
	}
}

// TestNew_CancellationToZero forces full cancellation and expects the
// canonical zero with denominator 1, regardless of the input denominator.
func TestNew_CancellationToZero(t *testing.T) {
	v := mustNew(t, []Term{tm(2, 8, 1), tm(2, 2, -2)}, 7)
	if !v.IsZero() {
		t.Fatalf("√8−2√2 = %s, want 0", v)
	}
	if v.Denominator().Cmp(big.NewInt(1)) != 0 {
		t.Errorf("canonical zero denominator = %s, want 1", v.Denominator())
	}
}

func TestIsRationalAndRat(t *testing.T) {
	v := mustNew(t, []Term{tm(1, 1, 3)}, 6)
	if !v.IsRational() || v.IsInteger() {
		t.Error("1/2 should be rational and not integer")
	}
	r, err := v.Rat()
	if err != nil {
		t.Fatalf("Rat() returned error: %v", err)
	}
	if r.Cmp(big.NewRat(1, 2)) != 0 {
		t.Errorf("Rat() = %s, want 1/2", r)
	}

	irr := mustNew(t, []Term{tm(2, 2, 1)}, 1)
	if _, err := irr.Rat(); err == nil {
		t.Error("Rat() of √2 should fail")
	}
	var nre apperrors.NotRepresentableError
	if _, err := irr.BigInt(); !errors.As(err, &nre) {
		t.Error("BigInt() of √2 should return NotRepresentableError")
	}
}

func TestFromFrac(t *testing.T) {
	v, err := FromFrac(-6, -8)
	if err != nil {
		t.Fatalf("FromFrac returned error: %v", err)
	}
	want, _ := FromFrac(3, 4)
	if !v.Equal(want) {
		t.Errorf("FromFrac(-6, -8) = %s, want %s", v, want)
	}
	if _, err := FromFrac(1, 0); err == nil {
		t.Error("FromFrac with zero denominator should fail")
	}
}

func TestSqrtInt64(t *testing.T) {
	v, err := SqrtInt64(18)
	if err != nil {
		t.Fatalf("SqrtInt64 returned error: %v", err)
	}
	want := mustNew(t, []Term{tm(2, 2, 3)}, 1)
	if !v.Equal(want) {
		t.Errorf("√18 = %s, want %s", v, want)
	}
	if _, err := SqrtInt64(0); err == nil {
		t.Error("SqrtInt64(0) should fail")
	}
}

// TestImmutability verifies that accessors hand out copies and that
// arithmetic leaves its operands untouched.
func TestImmutability(t *testing.T) {
	v := mustNew(t, []Term{tm(2, 3, 5)}, 7)
	v.Terms()[0].Coeff.SetInt64(999)
	v.Denominator().SetInt64(999)
	want := mustNew(t, []Term{tm(2, 3, 5)}, 7)
	if !v.Equal(want) {
		t.Error("mutating accessor results must not affect the value")
	}

	_ = v.Neg()
	_ = v.Add(v)
	_ = v.Mul(v)
	if !v.Equal(want) {
		t.Error("arithmetic must not mutate its operands")
	}
}
