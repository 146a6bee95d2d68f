// Package rerun implements the rerun stack language. A rerun program is a
// sequence of tokens that maps one-to-one onto WebAssembly instructions of a
// function compute(p1, p2 i32) i32. Programs may call into the relib
// standard library through the cpow token.
package rerun

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidToken   = errors.New("invalid rerun token")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackDepth     = errors.New("program must leave exactly one value on stack")
	ErrDivideByZero   = errors.New("integer divide by zero")
	ErrTrap           = errors.New("wasm trap")
)

type Op uint8

const (
	OpParam1 Op = iota
	OpParam2
	OpConst
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
)

var binaryOps = map[string]Op{
	"add":  OpAdd,
	"sub":  OpSub,
	"mul":  OpMul,
	"div":  OpDiv,
	"rem":  OpRem,
	"cpow": OpPow,
}

// Instruction is a single decoded token. Value is only meaningful for OpConst.
type Instruction struct {
	Op    Op
	Value uint32
	Token string
}

// Program is a validated rerun program. Validation guarantees that every
// binary operation finds two operands and that exactly one value remains.
type Program struct {
	instructions []Instruction
}

func (p *Program) Instructions() []Instruction {
	return append([]Instruction(nil), p.instructions...)
}

// Parse decodes and validates tokens while tracking the stack depth, so that
// malformed programs are rejected before they are ever compiled.
func Parse(tokens []string) (*Program, error) {
	program := &Program{instructions: make([]Instruction, 0, len(tokens))}
	depth := 0

	for i, token := range tokens {
		var ins Instruction
		switch token {
		case "p1":
			ins = Instruction{Op: OpParam1}
			depth++
		case "p2":
			ins = Instruction{Op: OpParam2}
			depth++
		default:
			if op, ok := binaryOps[token]; ok {
				if depth < 2 {
					return nil, underflowError(i, token, depth)
				}
				ins = Instruction{Op: op}
				depth--
				break
			}
			value, err := parseLiteral(token)
			if err != nil {
				return nil, fmt.Errorf("instruction #%d %q: %w", i+1, token, err)
			}
			ins = Instruction{Op: OpConst, Value: value}
			depth++
		}
		ins.Token = token
		program.instructions = append(program.instructions, ins)
	}

	if depth != 1 {
		return nil, fmt.Errorf("program leaves %d value(s) on stack: %w", depth, ErrStackDepth)
	}
	return program, nil
}

func parseLiteral(token string) (uint32, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, ErrInvalidToken
		}
	}
	value, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: literal out of 32-bit range", ErrInvalidToken)
	}
	return uint32(value), nil
}

func underflowError(i int, token string, depth int) error {
	there := "are none"
	if depth == 1 {
		there = "is only one"
	}
	return fmt.Errorf("instruction #%d %q requires two values on stack but there %s: %w",
		i+1, token, there, ErrStackUnderflow)
}
