// Package exponentiation proves statements about exponentiation with gnark.
//
// Circuit proves the 32-bit wraparound exponentiation computed by
// pow.Exponentiate. FieldCircuit proves exponentiation inside an emulated
// prime field.
package exponentiation

import "github.com/consensys/gnark/frontend"

const wordBits = 32

// Circuit proves knowledge of an Exponent such that
// Result == Base^Exponent mod 2^32.
type Circuit struct {
	// Inputs (public)
	Base   frontend.Variable `gnark:",public"`
	Result frontend.Variable `gnark:",public"`

	// Inputs (private)
	Exponent frontend.Variable
}

func (c *Circuit) Define(api frontend.API) error {
	// Range checks: both operands are 32-bit words.
	api.ToBinary(c.Base, wordBits)
	exponentBits := api.ToBinary(c.Exponent, wordBits)

	acc := frontend.Variable(1)
	square := c.Base
	for i, bit := range exponentBits {
		acc = api.Select(bit, wrap(api, api.Mul(acc, square)), acc)
		if i < len(exponentBits)-1 {
			square = wrap(api, api.Mul(square, square))
		}
	}

	api.AssertIsEqual(acc, c.Result)

	return nil
}

// wrap reduces a product of two words modulo 2^32 by keeping the low half of
// its 64-bit decomposition.
func wrap(api frontend.API, v frontend.Variable) frontend.Variable {
	bits := api.ToBinary(v, 2*wordBits)
	return api.FromBinary(bits[:wordBits]...)
}
