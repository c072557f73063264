package radical

import (
	"math/big"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

// Neg returns the additive negation −x. Negating every coefficient
// preserves every canonical-form invariant, so no reduction pass is
// needed.
func (x Value) Neg() Value {
	if x.IsZero() {
		return Value{}
	}
	ts := cloneTerms(x.terms)
	for i := range ts {
		ts[i].coeff.Neg(ts[i].coeff)
	}
	return Value{terms: ts, den: new(big.Int).Set(x.denom())}
}

// Add returns the sum x + y. The operands are brought over the common
// denominator x.d·y.d, combined term-by-term and reduced.
func (x Value) Add(y Value) Value {
	raw := make([]term, 0, len(x.terms)+len(y.terms))
	for _, t := range x.terms {
		raw = append(raw, term{
			index:    t.index,
			radicand: new(big.Int).Set(t.radicand),
			coeff:    new(big.Int).Mul(t.coeff, y.denom()),
		})
	}
	for _, t := range y.terms {
		raw = append(raw, term{
			index:    t.index,
			radicand: new(big.Int).Set(t.radicand),
			coeff:    new(big.Int).Mul(t.coeff, x.denom()),
		})
	}
	return reduce(raw, new(big.Int).Mul(x.denom(), y.denom()))
}

// Sub returns the difference x − y.
func (x Value) Sub(y Value) Value {
	return x.Add(y.Neg())
}

// AddInt returns x + k for an integer k, folding k into the rational
// slot of the numerator.
func (x Value) AddInt(k *big.Int) Value {
	raw := cloneTerms(x.terms)
	raw = append(raw, rationalTerm(new(big.Int).Mul(k, x.denom())))
	return reduce(raw, x.denom())
}

// SubInt returns x − k for an integer k.
func (x Value) SubInt(k *big.Int) Value {
	return x.AddInt(new(big.Int).Neg(k))
}

// MulInt returns the product x·k for an integer k.
func (x Value) MulInt(k *big.Int) Value {
	raw := make([]term, 0, len(x.terms))
	for _, t := range x.terms {
		raw = append(raw, term{
			index:    t.index,
			radicand: new(big.Int).Set(t.radicand),
			coeff:    new(big.Int).Mul(t.coeff, k),
		})
	}
	return reduce(raw, x.denom())
}

// DivInt returns the quotient x/k for an integer k. Returns a
// DomainError if k is zero.
func (x Value) DivInt(k *big.Int) (Value, error) {
	if k.Sign() == 0 {
		return Value{}, apperrors.NewDomainError("division by zero")
	}
	return reduce(cloneTerms(x.terms), new(big.Int).Mul(x.denom(), k)), nil
}

// Mul returns the product x·y.
//
// Same-index factors combine under a single root, ⁿ√r·ⁿ√s = ⁿ√(r·s).
// Mixed-index factors are first rewritten at the common index
// m = lcm(n₁, n₂) by raising each radicand to the power m/nᵢ; this is
// the only operation that can raise the index of a term. The reduction
// pass then restores minimal indices and power-free radicands.
func (x Value) Mul(y Value) Value {
	raw := make([]term, 0, len(x.terms)*len(y.terms))
	for _, a := range x.terms {
		for _, b := range y.terms {
			m := lcmInt(a.index, b.index)
			r := new(big.Int).Exp(a.radicand, big.NewInt(int64(m/a.index)), nil)
			r.Mul(r, new(big.Int).Exp(b.radicand, big.NewInt(int64(m/b.index)), nil))
			raw = append(raw, term{
				index:    m,
				radicand: r,
				coeff:    new(big.Int).Mul(a.coeff, b.coeff),
			})
		}
	}
	return reduce(raw, new(big.Int).Mul(x.denom(), y.denom()))
}

// Pow returns x raised to a non-negative integer power by repeated
// squaring, using O(log e) multiplications. Pow(x, 0) is 1 for every x,
// including zero. Negative exponents are not part of the general
// contract (see Invert for the square-root-only reciprocal).
func (x Value) Pow(e uint) Value {
	result := One()
	base := x
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		e >>= 1
		if e > 0 {
			base = base.Mul(base)
		}
	}
	return result
}
