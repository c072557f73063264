package radical

import (
	"math/big"
	"strconv"

	apperrors "github.com/goessl/sumofradicals/internal/errors"
)

// minSignDepth is the floor for the sign-recursion depth bound, so that
// small inputs with heavy cancellation still get room to resolve.
const minSignDepth = 4

// Sign determines the exact sign of the value without any
// floating-point comparison: −1, 0 or +1.
//
// It is only defined when every numerator term is a plain square root
// (index ≤ 2; the rational slot participates as √1). The denominator is
// always positive, so the sign of the value is the sign of its
// numerator, decided by signOfTerms. Any higher root index yields an
// UnsupportedError: deciding the sign of a general sum of radicals
// exactly is an open problem.
func (x Value) Sign() (int, error) {
	if n := x.maxIndex(); n > 2 {
		return 0, apperrors.UnsupportedError{
			Operation: "Sign",
			Reason:    "value contains a root of index " + strconv.Itoa(n) + "; only square-root sums can be ordered exactly",
		}
	}
	depth := len(primeSupport(x.terms)) + 1
	if depth < minSignDepth {
		depth = minSignDepth
	}
	return signOfTerms(x.terms, depth)
}

// primeSupport returns the distinct primes dividing any radicand, in
// ascending order. Radicands are power-free, so exponents are
// irrelevant here.
func primeSupport(ts []term) []*big.Int {
	var primes []*big.Int
	seen := map[string]bool{}
	for _, t := range ts {
		for _, pp := range factorize(t.radicand) {
			k := pp.p.String()
			if !seen[k] {
				seen[k] = true
				primes = append(primes, pp.p)
			}
		}
	}
	return primes
}

// signOfTerms decides the sign of a canonical sum of square-root terms
// by pivot-prime elimination.
//
// The largest prime p dividing any radicand is chosen as pivot and the
// sum is split as s − r, with r collecting the (negated) terms whose
// radicand p divides. Both sides' signs are decided recursively, after
// scaling r by the positive factor √p/p to remove p from its radicands.
// Then the comparison is squared: sign(s − r) equals
// sign(s·|s| − r·|r|), since t·|t| is strictly increasing. Squaring
// folds the pivot out of every remaining radicand, so each level of the
// loop removes one prime from the support and the recursion depth is
// bounded by the number of distinct primes. Exceeding the bound means a
// broken invariant, not a property of well-formed input.
//
// (Splitting by coefficient sign and squaring A − B directly may never
// terminate: for supports like {√2, √3, √6} versus {√30, √35, √42} the
// squared groups reproduce the same radicand sets indefinitely. Pivot
// elimination strictly shrinks the support instead.)
func signOfTerms(ts []term, depth int) (int, error) {
	switch len(ts) {
	case 0:
		return 0, nil
	case 1:
		// A single term v·√r with r > 0 has the sign of v.
		return ts[0].coeff.Sign(), nil
	}

	// A sum of same-signed terms over positive radicals needs no work.
	if uniform := uniformSign(ts); uniform != 0 {
		return uniform, nil
	}

	if depth == 0 {
		return 0, apperrors.InternalError{
			Message: "sign recursion exceeded its prime-support bound",
		}
	}

	support := primeSupport(ts)
	pivot := support[len(support)-1]

	var keep, moved []term
	rem := new(big.Int)
	for _, t := range ts {
		if rem.Mod(t.radicand, pivot).Sign() == 0 {
			moved = append(moved, term{
				index:    t.index,
				radicand: t.radicand,
				coeff:    new(big.Int).Neg(t.coeff),
			})
		} else {
			keep = append(keep, t)
		}
	}

	// Subslices of a canonical numerator are themselves canonical over
	// denominator 1, so the sides can be assembled directly.
	s := Value{terms: cloneTerms(keep), den: big.NewInt(1)}
	r := Value{terms: moved, den: big.NewInt(1)}

	signS, err := signOfTerms(s.terms, depth-1)
	if err != nil {
		return 0, err
	}
	// Scaling r by √p/p > 0 keeps its sign and removes p from every
	// radicand, so the recursion sees a smaller support.
	rScaled := r.Mul(Value{
		terms: []term{{index: 2, radicand: new(big.Int).Set(pivot), coeff: big.NewInt(1)}},
		den:   new(big.Int).Set(pivot),
	})
	signR, err := signOfTerms(rScaled.terms, depth-1)
	if err != nil {
		return 0, err
	}

	// sign(s − r) = sign(s·|s| − r·|r|).
	s2 := s.Mul(s)
	if signS < 0 {
		s2 = s2.Neg()
	}
	r2 := r.Mul(r)
	if signR < 0 {
		r2 = r2.Neg()
	}
	return signOfTerms(s2.Sub(r2).terms, depth-1)
}

// uniformSign returns the shared coefficient sign of the terms, or 0
// when signs are mixed.
func uniformSign(ts []term) int {
	first := ts[0].coeff.Sign()
	for _, t := range ts[1:] {
		if t.coeff.Sign() != first {
			return 0
		}
	}
	return first
}

// Compare orders two values exactly: −1 if x < y, 0 if x == y, +1 if
// x > y. Defined as the sign of x − y, with the same square-root-only
// restriction as Sign.
func (x Value) Compare(y Value) (int, error) {
	return x.Sub(y).Sign()
}

// Abs returns the absolute value, subject to the same square-root-only
// restriction as Sign.
func (x Value) Abs() (Value, error) {
	s, err := x.Sign()
	if err != nil {
		return Value{}, err
	}
	if s < 0 {
		return x.Neg(), nil
	}
	return x, nil
}
