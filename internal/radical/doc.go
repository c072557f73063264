// Package radical implements exact arithmetic on finite sums of integer
// radicals over a common integer denominator, i.e. numbers of the form
//
//	(Σ vᵢ·ⁿ√rᵢ) / d
//
// with integer coefficients vᵢ, positive integer indices nᵢ, positive
// integer radicands rᵢ and a positive integer denominator d. All
// quantities are arbitrary precision; no operation ever rounds.
//
// Every Value is kept in a unique canonical form: radicands carry no
// perfect n-th-power factor, the index of each root is minimal, terms
// with equal (index, radicand) keys are merged, the fraction is in
// lowest terms and the sign lives in the numerator. Two Values are
// equal if and only if their canonical representations are identical.
//
// Values are immutable. Every operation returns a new Value, so any
// Value may be shared freely across goroutines without synchronization.
//
// Sign determination, ordering, absolute value and the multiplicative
// inverse are only available for values whose terms are all plain
// square roots (index ≤ 2); for higher indices these operations report
// an unsupported-operation error, since no exact procedure for the
// general sum-of-radicals sign problem is known.
package radical
