package radical

import "math/big"

// Term is one v·ⁿ√r summand of a numerator, exposed for construction
// and inspection. The canonical form stored inside a Value is reached
// through New; a Term handed in may still carry perfect-power factors,
// a zero coefficient or a reducible index.
type Term struct {
	// Index is the degree n of the root (1 = rational, 2 = square root).
	Index int
	// Radicand is the integer r under the root, at least 1.
	Radicand *big.Int
	// Coeff is the integer factor v in front of the root.
	Coeff *big.Int
}

// term is the internal, owned representation of one canonical summand.
// Within a Value the slice of terms is sorted by (index, radicand),
// keys are unique and no coefficient is zero.
type term struct {
	index    int
	radicand *big.Int
	coeff    *big.Int
}

// compareKey orders terms by index, then by radicand.
func compareKey(a, b term) int {
	if a.index != b.index {
		if a.index < b.index {
			return -1
		}
		return 1
	}
	return a.radicand.Cmp(b.radicand)
}

// cloneTerms deep-copies a canonical term slice.
func cloneTerms(ts []term) []term {
	out := make([]term, len(ts))
	for i, t := range ts {
		out[i] = term{
			index:    t.index,
			radicand: new(big.Int).Set(t.radicand),
			coeff:    new(big.Int).Set(t.coeff),
		}
	}
	return out
}
