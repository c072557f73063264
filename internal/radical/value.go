package radical

import (
	"math/big"
	"sort"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

// Value is an immutable sum of integer radicals over a common positive
// integer denominator. The zero Value is the canonical zero and is
// ready to use.
//
// Invariants held by every Value:
//   - every radicand is power-free for its index and every index is minimal;
//   - terms are sorted by (index, radicand) with unique keys and
//     nonzero coefficients;
//   - the denominator is positive and coprime to the coefficient set;
//   - an empty numerator forces denominator 1.
type Value struct {
	terms []term
	den   *big.Int // nil means 1, so the zero Value is canonical zero
}

// New constructs a canonical Value from raw terms over the given
// denominator. Input terms may repeat keys, carry zero coefficients or
// reducible radicands; they are normalized, merged and reduced to
// lowest terms. A nil denominator counts as 1.
//
// Returns a DomainError if any index or radicand is smaller than 1 or
// the denominator is zero.
func New(terms []Term, den *big.Int) (Value, error) {
	if den != nil && den.Sign() == 0 {
		return Value{}, apperrors.NewDomainError("denominator must be non-zero")
	}
	raw := make([]term, 0, len(terms))
	for _, t := range terms {
		if t.Index < 1 {
			return Value{}, apperrors.NewDomainError("root index must be at least 1, got %d", t.Index)
		}
		if t.Radicand == nil || t.Radicand.Cmp(intOne) < 0 {
			return Value{}, apperrors.NewDomainError("radicand must be a positive integer")
		}
		if t.Coeff == nil {
			return Value{}, apperrors.NewDomainError("coefficient must be an integer")
		}
		raw = append(raw, term{
			index:    t.Index,
			radicand: new(big.Int).Set(t.Radicand),
			coeff:    new(big.Int).Set(t.Coeff),
		})
	}
	d := intOne
	if den != nil {
		d = den
	}
	return reduce(raw, d), nil
}

// FromBigInt returns the Value equal to the integer v.
func FromBigInt(v *big.Int) Value {
	return reduce([]term{rationalTerm(new(big.Int).Set(v))}, intOne)
}

// FromInt64 returns the Value equal to the integer v.
func FromInt64(v int64) Value {
	return FromBigInt(big.NewInt(v))
}

// FromFrac returns the Value equal to the fraction num/den in lowest
// terms. Returns a DomainError if den is zero.
func FromFrac(num, den int64) (Value, error) {
	if den == 0 {
		return Value{}, apperrors.NewDomainError("denominator must be non-zero")
	}
	return reduce([]term{rationalTerm(big.NewInt(num))}, big.NewInt(den)), nil
}

// SqrtInt64 returns the Value √r for a positive integer radicand.
func SqrtInt64(r int64) (Value, error) {
	if r < 1 {
		return Value{}, apperrors.NewDomainError("radicand must be a positive integer")
	}
	return reduce([]term{{index: 2, radicand: big.NewInt(r), coeff: big.NewInt(1)}}, intOne), nil
}

// One returns the Value 1.
func One() Value { return FromInt64(1) }

// Zero returns the canonical zero Value.
func Zero() Value { return Value{} }

// rationalTerm builds the (1,1) rational-slot term carrying v.
func rationalTerm(v *big.Int) term {
	return term{index: 1, radicand: big.NewInt(1), coeff: v}
}

// reduce produces the unique canonical Value for the given raw terms
// and non-zero denominator. It assumes structurally valid input
// (indices >= 1, radicands >= 1, den != 0): arithmetic only ever feeds
// it combinations of already-canonical values, which cannot violate
// those bounds.
func reduce(raw []term, den *big.Int) Value {
	// Normalize every contribution and collect it under its minimal key.
	norm := make([]term, 0, len(raw))
	for _, t := range raw {
		if t.coeff.Sign() == 0 {
			continue
		}
		s, n, r := simplifyRadical(t.index, t.radicand)
		norm = append(norm, term{index: n, radicand: r, coeff: s.Mul(s, t.coeff)})
	}
	sort.Slice(norm, func(i, j int) bool { return compareKey(norm[i], norm[j]) < 0 })

	// Merge equal keys, dropping cancelled terms.
	merged := norm[:0]
	for _, t := range norm {
		if len(merged) > 0 && compareKey(merged[len(merged)-1], t) == 0 {
			merged[len(merged)-1].coeff.Add(merged[len(merged)-1].coeff, t.coeff)
			continue
		}
		merged = append(merged, t)
	}
	kept := make([]term, 0, len(merged))
	for _, t := range merged {
		if t.coeff.Sign() != 0 {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return Value{}
	}

	// The sign lives in the numerator.
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		d.Neg(d)
		for i := range kept {
			kept[i].coeff.Neg(kept[i].coeff)
		}
	}

	// Lowest terms: divide through by gcd(d, coefficients).
	g := new(big.Int).Set(d)
	abs := new(big.Int)
	for _, t := range kept {
		g.GCD(nil, nil, g, abs.Abs(t.coeff))
		if g.Cmp(intOne) == 0 {
			break
		}
	}
	if g.Cmp(intOne) > 0 {
		d.Quo(d, g)
		for i := range kept {
			kept[i].coeff.Quo(kept[i].coeff, g)
		}
	}
	return Value{terms: kept, den: d}
}

// denom returns the denominator without allocating for the zero Value.
func (x Value) denom() *big.Int {
	if x.den == nil {
		return intOne
	}
	return x.den
}

// maxIndex returns the largest root index in the numerator, or 1 for a
// rational value.
func (x Value) maxIndex() int {
	max := 1
	for _, t := range x.terms {
		if t.index > max {
			max = t.index
		}
	}
	return max
}

// Len returns the number of summands in the numerator.
func (x Value) Len() int { return len(x.terms) }

// IsZero reports whether the value is exactly zero.
func (x Value) IsZero() bool { return len(x.terms) == 0 }

// Terms returns a copy of the canonical numerator terms, sorted by
// (index, radicand).
func (x Value) Terms() []Term {
	out := make([]Term, len(x.terms))
	for i, t := range x.terms {
		out[i] = Term{
			Index:    t.index,
			Radicand: new(big.Int).Set(t.radicand),
			Coeff:    new(big.Int).Set(t.coeff),
		}
	}
	return out
}

// Denominator returns a copy of the (always positive) denominator.
func (x Value) Denominator() *big.Int {
	return new(big.Int).Set(x.denom())
}

// Equal reports whether two Values are identical. Canonicalization
// makes this a sound equality test on the represented real numbers.
func (x Value) Equal(y Value) bool {
	if len(x.terms) != len(y.terms) || x.denom().Cmp(y.denom()) != 0 {
		return false
	}
	for i := range x.terms {
		if compareKey(x.terms[i], y.terms[i]) != 0 ||
			x.terms[i].coeff.Cmp(y.terms[i].coeff) != 0 {
			return false
		}
	}
	return true
}

// IsInteger reports whether the value is an exact integer: denominator
// 1 and at most the rational (1,1) term in the numerator.
func (x Value) IsInteger() bool {
	return x.IsRational() && x.denom().Cmp(intOne) == 0
}

// IsRational reports whether the value is an exact rational: every
// numerator term sits in the rational (1,1) slot. Canonicalization
// guarantees at most one such term.
func (x Value) IsRational() bool {
	for _, t := range x.terms {
		if t.index != 1 {
			return false
		}
	}
	return true
}

// BigInt returns the exact integer value. Returns a
// NotRepresentableError if the value is not an integer, which can be
// checked beforehand with IsInteger.
func (x Value) BigInt() (*big.Int, error) {
	if !x.IsInteger() {
		return nil, apperrors.NotRepresentableError{Target: "integer"}
	}
	if x.IsZero() {
		return new(big.Int), nil
	}
	return new(big.Int).Set(x.terms[0].coeff), nil
}

// Rat returns the exact rational value. Returns a
// NotRepresentableError if the value is not rational, which can be
// checked beforehand with IsRational.
func (x Value) Rat() (*big.Rat, error) {
	if !x.IsRational() {
		return nil, apperrors.NotRepresentableError{Target: "rational"}
	}
	num := new(big.Int)
	if !x.IsZero() {
		num.Set(x.terms[0].coeff)
	}
	return new(big.Rat).SetFrac(num, x.denom()), nil
}
