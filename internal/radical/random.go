package radical

import (
	"math/big"
	"math/rand"
)

// Rand returns a random Value for testing and demonstration.
//
// The rational slot and every (index, radicand) pair with index and
// radicand between 2 and n inclusive receive a uniform random
// coefficient in [−precision/2, +precision/2]; the denominator is a
// uniform non-zero integer from the same range. Construction reduces
// the result to canonical form, so zero coefficients simply drop out.
func Rand(rng *rand.Rand, n, precision int) Value {
	if n < 1 {
		n = 1
	}
	if precision < 2 {
		precision = 2
	}
	lo, hi := -precision/2, precision/2

	raw := []term{rationalTerm(big.NewInt(int64(randRange(rng, lo, hi))))}
	for index := 2; index <= n; index++ {
		for radicand := 2; radicand <= n; radicand++ {
			raw = append(raw, term{
				index:    index,
				radicand: big.NewInt(int64(radicand)),
				coeff:    big.NewInt(int64(randRange(rng, lo, hi))),
			})
		}
	}
	d := randRange(rng, lo, hi-1)
	if d == 0 {
		d = hi
	}
	return reduce(raw, big.NewInt(int64(d)))
}

// RandSqrt returns a random square-root-only Value: coefficients for
// √1 through √n plus a non-zero denominator, all in
// [−precision/2, +precision/2]. Suitable for exercising Sign, Compare
// and Invert.
func RandSqrt(rng *rand.Rand, n, precision int) Value {
	if n < 1 {
		n = 1
	}
	if precision < 2 {
		precision = 2
	}
	lo, hi := -precision/2, precision/2

	raw := make([]term, 0, n)
	for radicand := 1; radicand <= n; radicand++ {
		raw = append(raw, term{
			index:    2,
			radicand: big.NewInt(int64(radicand)),
			coeff:    big.NewInt(int64(randRange(rng, lo, hi))),
		})
	}
	d := randRange(rng, lo, hi-1)
	if d == 0 {
		d = hi
	}
	return reduce(raw, big.NewInt(int64(d)))
}

// randRange returns a uniform int in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
