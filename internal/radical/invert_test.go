package radical

import (
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

func TestInvert_Rational(t *testing.T) {
	v, _ := FromFrac(3, 7)
	inv, err := v.Invert()
	if err != nil {
		t.Fatalf("Invert returned error: %v", err)
	}
	want, _ := FromFrac(7, 3)
	if !inv.Equal(want) {
		t.Errorf("1/(3/7) = %s, want %s", inv, want)
	}
}

// TestInvert_GoldenConjugate checks the classic rationalization
// 1/(1+√2) = √2 − 1.
func TestInvert_GoldenConjugate(t *testing.T) {
	v := mustNew(t, []Term{tm(1, 1, 1), tm(2, 2, 1)}, 1)
	inv, err := v.Invert()
	if err != nil {
		t.Fatalf("Invert returned error: %v", err)
	}
	want := mustNew(t, []Term{tm(1, 1, -1), tm(2, 2, 1)}, 1)
	if !inv.Equal(want) {
		t.Errorf("1/(1+√2) = %s, want %s", inv, want)
	}
}

// TestInvert_RoundTrip verifies x·(1/x) = 1 for numerators of up to
// four distinct square roots, covering the multi-conjugate product.
func TestInvert_RoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		terms []Term
		den   int64
	}{
		{"single root", []Term{tm(2, 5, 3)}, 4},
		{"two roots", []Term{tm(2, 2, 1), tm(2, 3, -2)}, 5},
		{"rational plus two roots", []Term{tm(1, 1, 7), tm(2, 2, -4), tm(2, 3, 1)}, 3},
		{"four terms", []Term{tm(1, 1, 1), tm(2, 2, 1), tm(2, 3, 1), tm(2, 5, 1)}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := mustNew(t, tc.terms, tc.den)
			inv, err := v.Invert()
			if err != nil {
				t.Fatalf("Invert returned error: %v", err)
			}
			if got := v.Mul(inv); !got.Equal(One()) {
				t.Errorf("x·(1/x) = %s, want 1", got)
			}
		})
	}
}

func TestInvert_Errors(t *testing.T) {
	var domainErr apperrors.DomainError
	if _, err := Zero().Invert(); !errors.As(err, &domainErr) {
		t.Errorf("Invert(0) error = %v, want DomainError", err)
	}

	cube := mustNew(t, []Term{tm(3, 2, 1)}, 1)
	var unsupported apperrors.UnsupportedError
	if _, err := cube.Invert(); !errors.As(err, &unsupported) {
		t.Errorf("Invert(³√2) error = %v, want UnsupportedError", err)
	}
}

func TestDiv(t *testing.T) {
	a := mustNew(t, []Term{tm(2, 3, 5)}, 7)
	b := mustNew(t, []Term{tm(1, 1, 2)}, 11)
	got, err := a.Div(b)
	if err != nil {
		t.Fatalf("Div returned error: %v", err)
	}
	want := mustNew(t, []Term{tm(2, 3, 55)}, 14)
	if !got.Equal(want) {
		t.Errorf("(5√3/7)/(2/11) = %s, want %s", got, want)
	}

	if _, err := a.Div(Zero()); err == nil {
		t.Error("division by zero should fail")
	}

	// x/x = 1 with an irrational divisor.
	if got, err := a.Div(a); err != nil || !got.Equal(One()) {
		t.Errorf("x/x = (%s, %v), want 1", got, err)
	}

	quot, err := a.Div(mustNew(t, []Term{tm(2, 2, 1), tm(2, 3, 1)}, 1))
	if err != nil {
		t.Fatalf("Div returned error: %v", err)
	}
	if got := quot.Mul(mustNew(t, []Term{tm(2, 2, 1), tm(2, 3, 1)}, 1)); !got.Equal(a) {
		t.Errorf("(x/y)·y = %s, want %s", got, a)
	}
}

// TestDivInt_Sign ensures DivInt by a negative integer keeps the sign
// in the numerator.
func TestDivInt_Sign(t *testing.T) {
	v := mustNew(t, []Term{tm(2, 2, 3)}, 1)
	got, err := v.DivInt(big.NewInt(-3))
	if err != nil {
		t.Fatalf("DivInt returned error: %v", err)
	}
	want := mustNew(t, []Term{tm(2, 2, -1)}, 1)
	if !got.Equal(want) {
		t.Errorf("3√2/(−3) = %s, want %s", got, want)
	}
	if got.Denominator().Sign() != 1 {
		t.Error("denominator must stay positive")
	}
}
