// Package bytecode implements the stack-based VM described in spec
// §4.9: a compiler lowering the bound, type-checked AST into flat
// instruction streams, and a VM executing them against the same
// value.Value/native.Registry the tree-walking interpreter uses, so
// both engines are required to agree on every observable outcome
// (spec §4.9 parity contract; checked by the go-snaps harness in
// internal/runtime_test/parity_test.go).
//
// Grounded on the teacher's internal/bytecode (OpCode enum + Chunk +
// disassembler) and internal/bytecode/vm (operand-stack VM with a
// call-frame stack), narrowed from DWScript's ~90 opcodes (covering
// objects, records, sets, exceptions) down to Atlas's closed
// instruction set.
package bytecode

// OpCode is a single VM instruction tag.
type OpCode byte

const (
	OpPushConst OpCode = iota
	OpPop
	OpDup
	OpLoadLocal
	OpStoreLocal
	OpLoadGlobal
	OpStoreGlobal
	OpLoadFn
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpNot
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	OpMakeArray
	OpIndexGet
	OpIndexSet
	OpCall
	OpRet
	OpRetVoid
)

var opNames = [...]string{
	OpPushConst: "PUSH_CONST", OpPop: "POP", OpDup: "DUP",
	OpLoadLocal: "LOAD_LOCAL", OpStoreLocal: "STORE_LOCAL",
	OpLoadGlobal: "LOAD_GLOBAL", OpStoreGlobal: "STORE_GLOBAL", OpLoadFn: "LOAD_FN",
	OpAdd: "ADD", OpSub: "SUB", OpMul: "MUL", OpDiv: "DIV", OpMod: "MOD",
	OpNeg: "NEG", OpNot: "NOT",
	OpEq: "EQ", OpNe: "NE", OpLt: "LT", OpLe: "LE", OpGt: "GT", OpGe: "GE",
	OpJump: "JUMP", OpJumpIfFalse: "JUMP_IF_FALSE", OpJumpIfTrue: "JUMP_IF_TRUE",
	OpMakeArray: "MAKE_ARRAY", OpIndexGet: "INDEX_GET", OpIndexSet: "INDEX_SET",
	OpCall: "CALL", OpRet: "RET", OpRetVoid: "RET_VOID",
}

func (op OpCode) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// Instruction is one decoded bytecode entry. Operand's meaning depends
// on Op (constant pool index, jump target, local slot, array length,
// call arity...). Line is recorded per instruction but the VM does not
// read it, so VM diagnostics carry no source position or stack trace.
type Instruction struct {
	Op      OpCode
	Operand int
	Line    int
}
