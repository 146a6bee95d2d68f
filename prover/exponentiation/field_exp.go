package exponentiation

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/emulated"
)

// Exp computes base^exponent in the emulated field by square-and-multiply.
// The exponent is fixed when the circuit is compiled, so only the
// multiplications for its set bits are emitted.
func Exp[T emulated.FieldParams](field *emulated.Field[T], base *emulated.Element[T], exponent uint32) *emulated.Element[T] {
	res := field.One()
	square := base

	for exponent != 0 {
		if exponent&1 == 1 {
			res = field.Mul(res, square)
		}
		exponent >>= 1
		if exponent != 0 {
			square = field.Mul(square, square)
		}
	}

	return res
}

// FieldCircuit proves Result == Base^Exponent in the emulated field T.
type FieldCircuit[T emulated.FieldParams] struct {
	Exponent uint32 `gnark:"-"`
	// BaseBits, when non-zero, restricts Base to that many bits.
	BaseBits int `gnark:"-"`

	// Inputs (private)
	Base frontend.Variable

	// Output
	Result frontend.Variable `gnark:",public"`
}

func (c *FieldCircuit[T]) Define(api frontend.API) error {
	field, err := emulated.NewField[T](api)
	if err != nil {
		return err
	}

	var base emulated.Element[T]
	if c.BaseBits > 0 {
		base = variableToElement(field, api, c.Base, c.BaseBits)
	} else {
		base = variableToElement(field, api, c.Base)
	}
	result := variableToElement(field, api, c.Result)

	field.AssertIsEqual(Exp(field, &base, c.Exponent), &result)

	return nil
}

// variableToElement converts a native variable into an element of the
// emulated field through its bit decomposition. An optional bit width both
// range-checks the variable and shortens the decomposition; without it the
// full native field width is used.
func variableToElement[T emulated.FieldParams](
	field *emulated.Field[T],
	api frontend.API,
	variable frontend.Variable,
	nbBits ...int,
) emulated.Element[T] {
	return *field.FromBits(api.ToBinary(variable, nbBits...)...)
}
