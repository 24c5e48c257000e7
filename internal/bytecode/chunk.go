package bytecode

import "github.com/atlas-lang/atlas/internal/value"

// Chunk is one compiled function body (or the top-level script body)
// — instructions plus the constant pool they index into, grounded on
// the teacher's internal/bytecode.Chunk.
type Chunk struct {
	Code      []Instruction
	Constants []value.Value
	Names     []string // identifiers addressed by LOAD_GLOBAL/STORE_GLOBAL/LOAD_FN
}

func NewChunk() *Chunk { return &Chunk{} }

func (c *Chunk) Emit(op OpCode, operand, line int) int {
	c.Code = append(c.Code, Instruction{Op: op, Operand: operand, Line: line})
	return len(c.Code) - 1
}

func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// PatchJump backfills a forward jump's operand once the target address
// is known (compiler emits a placeholder, then patches after codegen
// reaches the jump target — spec §4.9 compilation strategy).
func (c *Chunk) PatchJump(at int) { c.Code[at].Operand = len(c.Code) }

// PatchJumpTo backfills the jump at `at` to an explicit target address,
// for break/continue patch lists where the target isn't simply "here"
// (e.g. a continue jumping to a for-loop's step, compiled after the
// jump itself).
func (c *Chunk) PatchJumpTo(at, target int) { c.Code[at].Operand = target }

// CompiledFunction pairs a Chunk with its calling convention metadata
// (spec §4.9: name, arity, local slot count, line map is carried per
// Instruction rather than a parallel array).
type CompiledFunction struct {
	Name        string
	Arity       int
	LocalsCount int
	Chunk       *Chunk
	ParamNames  []string
}
