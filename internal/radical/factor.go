package radical

import "math/big"

var (
	intOne = big.NewInt(1)
	intTwo = big.NewInt(2)
)

// primePower is one prime of a factorization together with its exponent.
type primePower struct {
	p *big.Int
	e int
}

// factorize returns the prime factorization of r in ascending prime
// order, using trial division. r must be >= 1; 1 yields an empty slice.
//
// Trial division is quadratic in the magnitude of the largest prime
// factor, which is an accepted cost: radicands grow only through
// multiplication of already power-free radicands, so their factors stay
// small relative to the coefficients.
func factorize(r *big.Int) []primePower {
	rem := new(big.Int).Set(r)
	var factors []primePower
	if e := divideOut(rem, intTwo); e > 0 {
		factors = append(factors, primePower{p: big.NewInt(2), e: e})
	}
	p := big.NewInt(3)
	sq := new(big.Int)
	for sq.Mul(p, p); sq.Cmp(rem) <= 0; sq.Mul(p, p) {
		if e := divideOut(rem, p); e > 0 {
			factors = append(factors, primePower{p: new(big.Int).Set(p), e: e})
		}
		p.Add(p, intTwo)
	}
	if rem.Cmp(intOne) > 0 {
		factors = append(factors, primePower{p: rem, e: 1})
	}
	return factors
}

// divideOut divides p out of rem in place as often as it divides evenly
// and returns the number of divisions.
func divideOut(rem, p *big.Int) int {
	e := 0
	q, m := new(big.Int), new(big.Int)
	for {
		q.QuoRem(rem, p, m)
		if m.Sign() != 0 {
			return e
		}
		rem.Set(q)
		e++
	}
}

// simplifyRadical rewrites ⁿ√r as s·ⁿ'√r' with the smallest possible
// index and radicand: perfect n-th-power factors of r are extracted
// into s, and the index is divided by the gcd of the remaining prime
// exponents (so e.g. ⁶√4 becomes ³√2). The returned radicand is
// power-free for the returned index, and the returned index is 1 with
// radicand 1 whenever the whole root is rational.
//
// n must be >= 1 and r >= 1.
func simplifyRadical(n int, r *big.Int) (s *big.Int, index int, radicand *big.Int) {
	if n == 1 {
		return new(big.Int).Set(r), 1, big.NewInt(1)
	}
	if r.Cmp(intOne) == 0 {
		return big.NewInt(1), 1, big.NewInt(1)
	}

	s = big.NewInt(1)
	var residual []primePower
	for _, pp := range factorize(r) {
		if q := pp.e / n; q > 0 {
			s.Mul(s, new(big.Int).Exp(pp.p, big.NewInt(int64(q)), nil))
		}
		if e := pp.e % n; e > 0 {
			residual = append(residual, primePower{p: pp.p, e: e})
		}
	}
	if len(residual) == 0 {
		return s, 1, big.NewInt(1)
	}

	g := n
	for _, pp := range residual {
		g = gcdInt(g, pp.e)
	}
	radicand = big.NewInt(1)
	for _, pp := range residual {
		radicand.Mul(radicand, new(big.Int).Exp(pp.p, big.NewInt(int64(pp.e/g)), nil))
	}
	return s, n / g, radicand
}

// gcdInt returns the non-negative gcd of two ints.
func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		a = -a
	}
	return a
}

// lcmInt returns the least common multiple of two positive ints.
func lcmInt(a, b int) int {
	return a / gcdInt(a, b) * b
}
