package rerun

import (
	"strconv"
	"strings"
)

var watMnemonics = map[Op]string{
	OpAdd: "i32.add",
	OpSub: "i32.sub",
	OpMul: "i32.mul",
	OpDiv: "i32.div_u",
	OpRem: "i32.rem_u",
	OpPow: "call $pow",
}

// WAT renders the program as a WebAssembly text module that imports
// stdlib.pow and exports compute.
func (p *Program) WAT() string {
	var b strings.Builder
	b.WriteString("(module\n")
	b.WriteString("  (import \"stdlib\" \"pow\" (func $pow (param i32 i32) (result i32)))\n")
	b.WriteString("  (func $compute (param $p1 i32) (param $p2 i32) (result i32)")
	for _, ins := range p.instructions {
		b.WriteString("\n    ")
		switch ins.Op {
		case OpParam1:
			b.WriteString("local.get $p1")
		case OpParam2:
			b.WriteString("local.get $p2")
		case OpConst:
			b.WriteString("i32.const ")
			b.WriteString(strconv.FormatUint(uint64(ins.Value), 10))
		default:
			b.WriteString(watMnemonics[ins.Op])
		}
	}
	b.WriteString(")\n")
	b.WriteString("  (export \"compute\" (func $compute))\n")
	b.WriteString(")\n")
	return b.String()
}
