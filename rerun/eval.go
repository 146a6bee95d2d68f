package rerun

import (
	"fmt"

	"reilabs/relib/pow"
)

// Eval interprets the program directly. It agrees with the compiled module
// for every input, except that a trap is reported as ErrDivideByZero. A
// Program that did not come from Parse, such as the zero value, yields
// ErrStackDepth.
func (p *Program) Eval(p1, p2 uint32) (uint32, error) {
	stack := make([]uint32, 0, len(p.instructions))

	for _, ins := range p.instructions {
		switch ins.Op {
		case OpParam1:
			stack = append(stack, p1)
			continue
		case OpParam2:
			stack = append(stack, p2)
			continue
		case OpConst:
			stack = append(stack, ins.Value)
			continue
		}

		n := len(stack)
		if n < 2 {
			return 0, ErrStackUnderflow
		}
		a, b := stack[n-2], stack[n-1]
		stack = stack[:n-2]

		var r uint32
		switch ins.Op {
		case OpAdd:
			r = a + b
		case OpSub:
			r = a - b
		case OpMul:
			r = a * b
		case OpDiv:
			if b == 0 {
				return 0, ErrDivideByZero
			}
			r = a / b
		case OpRem:
			if b == 0 {
				return 0, ErrDivideByZero
			}
			r = a % b
		case OpPow:
			r = pow.Exponentiate(a, b)
		}
		stack = append(stack, r)
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("program leaves %d value(s) on stack: %w", len(stack), ErrStackDepth)
	}
	return stack[0], nil
}
