package bytecode

import (
	"math"

	"github.com/atlas-lang/atlas/internal/native"
	"github.com/atlas-lang/atlas/internal/span"
	"github.com/atlas-lang/atlas/internal/value"
)

// frame is one activation record on the VM's call stack (spec §4.9).
type frame struct {
	fn     *CompiledFunction
	locals []value.Value
	ip     int
}

// VM executes CompiledFunctions against the same value.Value model and
// native.Registry the interpreter uses. JUMP_IF_FALSE/JUMP_IF_TRUE peek
// the stack rather than popping, matching the compiler's short-circuit
// and branch codegen (internal/bytecode/compile_expr.go,
// compile_stmt.go).
type VM struct {
	registry  *native.Registry
	globals   map[string]value.Value
	funcs     map[string]*CompiledFunction
	ctx       *native.Context
	callStack *value.CallStack
	stack     []value.Value
}

func NewVM(registry *native.Registry, ctx *native.Context, maxCallDepth int) *VM {
	vm := &VM{
		registry:  registry,
		globals:   map[string]value.Value{},
		funcs:     map[string]*CompiledFunction{},
		ctx:       ctx,
		callStack: value.NewCallStack(maxCallDepth),
	}
	ctx.Caller = vm
	return vm
}

// DefineGlobal binds name to v in the VM's global table, mirroring
// Interpreter.DefineGlobal so pkg/atlas wires natives identically into
// both engines.
func (vm *VM) DefineGlobal(name string, v value.Value) { vm.globals[name] = v }

// Run executes the already compiled prog.Main, with prog.Functions registered
// as callable globals beforehand (spec §4.9, mirrors interp.Run's
// two-pass hoist-then-execute shape).
func (vm *VM) Run(prog *Program) *span.Diagnostic {
	for name, fn := range prog.Functions {
		vm.funcs[name] = fn
	}
	_, diag := vm.call(prog.Main, nil)
	return diag
}

// CallFunction invokes a top-level compiled function by name (façade
// entry point, spec §4.10).
func (vm *VM) CallFunction(name string, args []value.Value) (value.Value, *span.Diagnostic) {
	fn, ok := vm.funcs[name]
	if !ok {
		return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown function '" + name + "'").Build()
	}
	return vm.call(fn, args)
}

// CallValue implements native.Caller for VM-side intrinsic re-entry.
func (vm *VM) CallValue(fn value.Value, args []value.Value) (value.Value, *span.Diagnostic) {
	switch fn.Kind {
	case value.KindFunction:
		return vm.call(fn.Data.(*value.Function).Body.(*CompiledFunction), args)
	case value.KindNative:
		n := fn.Data.(*value.Native)
		entry, ok := vm.registry.Lookup(n.Name)
		if !ok {
			return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown native '" + n.Name + "'").Build()
		}
		return vm.registry.Call(vm.ctx, entry, args, resourceArg(args))
	default:
		return value.Null, span.New(span.ErrTypeMismatch).Message("value is not callable").Build()
	}
}

func resourceArg(args []value.Value) string {
	if len(args) > 0 && args[0].Kind == value.KindString {
		return args[0].Data.(string)
	}
	return ""
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }
func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}
func (vm *VM) peek() value.Value { return vm.stack[len(vm.stack)-1] }

func (vm *VM) call(fn *CompiledFunction, args []value.Value) (value.Value, *span.Diagnostic) {
	if err := vm.callStack.Push(fn.Name); err != nil {
		return value.Null, span.New(span.ErrStackOverflow).Message(err.Error()).Build()
	}
	defer vm.callStack.Pop()

	locals := make([]value.Value, fn.LocalsCount)
	for i := range locals {
		locals[i] = value.Null
	}
	copy(locals, args)

	f := &frame{fn: fn, locals: locals}
	base := len(vm.stack)
	for {
		if f.ip >= len(f.fn.Chunk.Code) {
			return value.Null, nil
		}
		inst := f.fn.Chunk.Code[f.ip]
		f.ip++
		switch inst.Op {
		case OpPushConst:
			vm.push(f.fn.Chunk.Constants[inst.Operand])
		case OpPop:
			vm.pop()
		case OpDup:
			vm.push(vm.peek())
		case OpLoadLocal:
			vm.push(f.locals[inst.Operand])
		case OpStoreLocal:
			f.locals[inst.Operand] = vm.peek()
		case OpLoadGlobal:
			name := f.fn.Chunk.Names[inst.Operand]
			vm.push(vm.globals[name])
		case OpStoreGlobal:
			name := f.fn.Chunk.Names[inst.Operand]
			vm.globals[name] = vm.peek()
		case OpLoadFn:
			name := f.fn.Chunk.Names[inst.Operand]
			target, ok := vm.funcs[name]
			if !ok {
				return value.Null, span.New(span.ErrUnknownSymbol).Message("unknown function '" + name + "'").Build()
			}
			vm.push(value.NewFunction(&value.Function{Name: name, Params: target.ParamNames, Body: target}))
		case OpNeg:
			v := vm.pop()
			vm.push(value.Number(-v.Data.(float64)))
		case OpNot:
			v := vm.pop()
			vm.push(value.Bool(!value.Truthy(v)))
		case OpAdd:
			r, l := vm.pop(), vm.pop()
			if l.Kind == value.KindString {
				vm.push(value.String(l.Data.(string) + r.Data.(string)))
			} else {
				vm.push(value.Number(l.Data.(float64) + r.Data.(float64)))
			}
		case OpSub:
			r, l := vm.pop(), vm.pop()
			vm.push(value.Number(l.Data.(float64) - r.Data.(float64)))
		case OpMul:
			r, l := vm.pop(), vm.pop()
			vm.push(value.Number(l.Data.(float64) * r.Data.(float64)))
		case OpDiv:
			r, l := vm.pop(), vm.pop()
			vm.push(value.Number(l.Data.(float64) / r.Data.(float64)))
		case OpMod:
			r, l := vm.pop(), vm.pop()
			vm.push(value.Number(math.Mod(l.Data.(float64), r.Data.(float64))))
		case OpEq:
			r, l := vm.pop(), vm.pop()
			vm.push(value.Bool(vmEqual(l, r)))
		case OpNe:
			r, l := vm.pop(), vm.pop()
			vm.push(value.Bool(!vmEqual(l, r)))
		case OpLt, OpLe, OpGt, OpGe:
			r, l := vm.pop(), vm.pop()
			vm.push(vmCompare(inst.Op, l, r))
		case OpJump:
			f.ip = inst.Operand
		case OpJumpIfFalse:
			if !value.Truthy(vm.peek()) {
				f.ip = inst.Operand
			}
		case OpJumpIfTrue:
			if value.Truthy(vm.peek()) {
				f.ip = inst.Operand
			}
		case OpMakeArray:
			n := inst.Operand
			elems := make([]value.Value, n)
			copy(elems, vm.stack[len(vm.stack)-n:])
			vm.stack = vm.stack[:len(vm.stack)-n]
			vm.push(value.NewArray(elems))
		case OpIndexGet:
			idx, target := vm.pop(), vm.pop()
			v, diag := vmIndexGet(target, idx)
			if diag != nil {
				return value.Null, diag
			}
			vm.push(v)
		case OpIndexSet:
			idx, target, v := vm.pop(), vm.pop(), vm.pop()
			if diag := vmIndexSet(target, idx, v); diag != nil {
				return value.Null, diag
			}
			vm.push(v)
		case OpCall:
			argc := inst.Operand
			callArgs := make([]value.Value, argc)
			copy(callArgs, vm.stack[len(vm.stack)-argc:])
			vm.stack = vm.stack[:len(vm.stack)-argc]
			callee := vm.pop()
			result, diag := vm.CallValue(callee, callArgs)
			if diag != nil {
				return value.Null, diag
			}
			vm.push(result)
		case OpRet:
			result := vm.pop()
			vm.stack = vm.stack[:base]
			return result, nil
		case OpRetVoid:
			vm.stack = vm.stack[:base]
			return value.Null, nil
		}
	}
}

func vmEqual(a, b value.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	return a.Data == b.Data
}

func vmCompare(op OpCode, a, b value.Value) value.Value {
	var c int
	if a.Kind == value.KindString {
		as, bs := a.Data.(string), b.Data.(string)
		switch {
		case as < bs:
			c = -1
		case as > bs:
			c = 1
		}
	} else {
		af, bf := a.Data.(float64), b.Data.(float64)
		switch {
		case af < bf:
			c = -1
		case af > bf:
			c = 1
		}
	}
	switch op {
	case OpLt:
		return value.Bool(c < 0)
	case OpLe:
		return value.Bool(c <= 0)
	case OpGt:
		return value.Bool(c > 0)
	default:
		return value.Bool(c >= 0)
	}
}

func vmIndexGet(target, idx value.Value) (value.Value, *span.Diagnostic) {
	switch target.Kind {
	case value.KindArray:
		arr := target.Data.(*value.Array)
		i := int(idx.Data.(float64))
		if i < 0 || i >= len(arr.Elems) {
			return value.Null, span.New(span.ErrIndexOutOfRange).Message("array index out of range").Build()
		}
		return arr.Elems[i], nil
	case value.KindString:
		runes := []rune(target.Data.(string))
		i := int(idx.Data.(float64))
		if i < 0 || i >= len(runes) {
			return value.Null, span.New(span.ErrIndexOutOfRange).Message("string index out of range").Build()
		}
		return value.String(string(runes[i])), nil
	default:
		return value.Null, span.New(span.ErrTypeMismatch).Message("value is not indexable").Build()
	}
}

func vmIndexSet(target, idx, v value.Value) *span.Diagnostic {
	if target.Kind != value.KindArray {
		return span.New(span.ErrTypeMismatch).Message("cannot index-assign a non-array value").Build()
	}
	arr := target.Data.(*value.Array)
	i := int(idx.Data.(float64))
	if i < 0 || i >= len(arr.Elems) {
		return span.New(span.ErrIndexOutOfRange).Message("array index out of range").Build()
	}
	arr.Elems[i] = v
	return nil
}
