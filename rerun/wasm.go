package rerun

import (
	"github.com/tetratelabs/wabin/binary"
	"github.com/tetratelabs/wabin/leb128"
	"github.com/tetratelabs/wabin/wasm"
)

// The module produced by WAT has a fixed shape: one function type shared by
// the import and compute, one import, one function and one export.

const (
	powFuncIndex     wasm.Index = 0
	computeFuncIndex wasm.Index = 1
)

var wasmOpcodes = map[Op]wasm.Opcode{
	OpAdd: wasm.OpcodeI32Add,
	OpSub: wasm.OpcodeI32Sub,
	OpMul: wasm.OpcodeI32Mul,
	OpDiv: wasm.OpcodeI32DivU,
	OpRem: wasm.OpcodeI32RemU,
}

// Wasm encodes the program as a WebAssembly binary module.
func (p *Program) Wasm() []byte {
	return binary.EncodeModule(p.module())
}

func (p *Program) module() *wasm.Module {
	i32 := wasm.ValueTypeI32
	return &wasm.Module{
		TypeSection: []*wasm.FunctionType{
			{Params: []wasm.ValueType{i32, i32}, Results: []wasm.ValueType{i32}},
		},
		ImportSection: []*wasm.Import{
			{Type: wasm.ExternTypeFunc, Module: stdlibModule, Name: powExport, DescFunc: 0},
		},
		FunctionSection: []wasm.Index{0},
		ExportSection: []*wasm.Export{
			{Type: wasm.ExternTypeFunc, Name: computeExport, Index: computeFuncIndex},
		},
		CodeSection: []*wasm.Code{{Body: p.body()}},
	}
}

func (p *Program) body() []byte {
	var body []byte
	for _, ins := range p.instructions {
		switch ins.Op {
		case OpParam1:
			body = append(body, wasm.OpcodeLocalGet, 0)
		case OpParam2:
			body = append(body, wasm.OpcodeLocalGet, 1)
		case OpConst:
			body = append(body, wasm.OpcodeI32Const)
			body = append(body, leb128.EncodeInt32(int32(ins.Value))...)
		case OpPow:
			body = append(body, wasm.OpcodeCall)
			body = append(body, leb128.EncodeUint32(powFuncIndex)...)
		default:
			body = append(body, wasmOpcodes[ins.Op])
		}
	}
	return append(body, wasm.OpcodeEnd)
}
