package radical

import (
	"math/big"
	"strconv"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

// Invert returns the multiplicative reciprocal 1/x for a value whose
// terms are all plain square roots (index ≤ 2).
//
// The denominator is rationalized by multiplying numerator and
// denominator with every sign-flipped conjugate of the numerator: the
// product of a k-term numerator with its 2ᵏ−1 conjugates is invariant
// under each automorphism √rᵢ ↦ −√rᵢ and is therefore a plain integer.
// The cost is exponential in the number of numerator terms, which is an
// accepted price of exactness.
//
// Returns a DomainError for x = 0 and an UnsupportedError when any term
// has index greater than 2 (no closed-form rationalization is known for
// general mixed-index radicals).
func (x Value) Invert() (Value, error) {
	if x.IsZero() {
		return Value{}, apperrors.NewDomainError("division by zero")
	}
	if n := x.maxIndex(); n > 2 {
		return Value{}, apperrors.UnsupportedError{
			Operation: "Invert",
			Reason:    "value contains a root of index " + strconv.Itoa(n) + "; only square roots can be rationalized",
		}
	}

	numerator := Value{terms: cloneTerms(x.terms), den: big.NewInt(1)}
	conjugates := One()
	k := len(x.terms)
	for mask := 1; mask < 1<<k; mask++ {
		flipped := cloneTerms(x.terms)
		for i := range flipped {
			if mask>>i&1 == 1 {
				flipped[i].coeff.Neg(flipped[i].coeff)
			}
		}
		// Flipping signs keeps keys, ordering and lowest terms intact.
		conjugates = conjugates.Mul(Value{terms: flipped, den: big.NewInt(1)})
	}

	norm, err := conjugates.Mul(numerator).BigInt()
	if err != nil {
		return Value{}, apperrors.InternalError{
			Message: "conjugate product did not rationalize the denominator",
		}
	}
	// x = numerator/d, so 1/x = d·conjugates/norm.
	return conjugates.MulInt(x.denom()).DivInt(norm)
}

// Div returns the quotient x/y. It is subject to the same restriction
// as Invert: the divisor must contain square roots only.
func (x Value) Div(y Value) (Value, error) {
	inv, err := y.Invert()
	if err != nil {
		return Value{}, err
	}
	return x.Mul(inv), nil
}
