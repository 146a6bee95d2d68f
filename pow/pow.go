// Package pow implements fixed-width unsigned exponentiation with wraparound.
package pow

import "golang.org/x/exp/constraints"

// Exp returns base raised to exponent, reduced modulo 2^N where N is the bit
// width of T. It uses binary exponentiation, so it performs at most N squarings.
//
// Exp never panics: overflow in the accumulator or the running square wraps.
func Exp[T constraints.Unsigned](base, exponent T) T {
	result := T(1)
	for exponent != 0 {
		if exponent&1 == 1 {
			result *= base
		}
		exponent >>= 1
		base *= base
	}
	return result
}

// Exponentiate returns base^exponent mod 2^32.
func Exponentiate(base, exponent uint32) uint32 {
	return Exp(base, exponent)
}
