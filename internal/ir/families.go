package ir

// This file holds the validating constructors for every instruction family
// named in SPEC_FULL.md §4.3. Each constructor partitions its arguments
// (type parameters, then input values, then branch targets — partitioning
// itself is implicit in Go's typed parameter lists, unlike the teacher's
// JS-style variadic factory) and funnels through Function.newInstr, which
// performs the allocation and use/dest linkage common to every kind.

func require(mnemonic string, cond bool, format string, args ...interface{}) {
	if !cond {
		fail(mnemonic, format, args...)
	}
}

// ---- Arithmetic without overflow -----------------------------------------

func (fn *Function) arith(op Opcode, mnemonic string, a, b Value) *Instruction {
	var outType Type
	switch {
	case a.Type() == b.Type():
		outType = a.Type()
	case mnemonic == "add" && a.Type() == TypeRPtr && b.Type().IsInt():
		outType = TypeRPtr
	case mnemonic == "sub" && a.Type() == TypeRPtr && b.Type().IsInt():
		outType = TypeRPtr
	case mnemonic == "sub" && a.Type() == TypeRPtr && b.Type() == TypeRPtr:
		outType = fn.session.PInt()
	default:
		fail(mnemonic, "operand types %s and %s are not compatible", a.Type(), b.Type())
		return nil
	}
	instr := fn.newInstr(op, "", nil, []Value{a, b}, nil, nil)
	instr.typ = outType
	instr.mnemonic = mnemonicFor(mnemonic, nil, []Value{a, b})
	return instr
}

func (fn *Function) NewAdd(a, b Value) *Instruction { return fn.arith(OpAdd, "add", a, b) }
func (fn *Function) NewSub(a, b Value) *Instruction { return fn.arith(OpSub, "sub", a, b) }
func (fn *Function) NewMul(a, b Value) *Instruction { return fn.arith(OpMul, "mul", a, b) }
func (fn *Function) NewDiv(a, b Value) *Instruction { return fn.arith(OpDiv, "div", a, b) }
func (fn *Function) NewMod(a, b Value) *Instruction { return fn.arith(OpMod, "mod", a, b) }

// ---- Arithmetic with overflow ---------------------------------------------

func (fn *Function) arithOvf(op Opcode, mnemonic string, a, b Value, normal, overflow *Block) *Instruction {
	require(mnemonic, a.Type() == b.Type(), "operands must share a type, got %s and %s", a.Type(), b.Type())
	require(mnemonic, a.Type() == fn.session.PInt() || a.Type() == TypeBox,
		"operands must be pint or box, got %s", a.Type())
	require(mnemonic, normal != nil && overflow != nil, "overflow arithmetic requires both normal and overflow targets")
	instr := fn.newInstr(op, "", nil, []Value{a, b}, []*Block{normal, overflow}, []string{"normal", "overflow"})
	instr.typ = a.Type()
	instr.sideEffects = true
	instr.mnemonic = mnemonicFor(mnemonic, nil, []Value{a, b})
	return instr
}

func (fn *Function) NewAddOvf(a, b Value, normal, overflow *Block) *Instruction {
	return fn.arithOvf(OpAddOvf, "add_ovf", a, b, normal, overflow)
}
func (fn *Function) NewSubOvf(a, b Value, normal, overflow *Block) *Instruction {
	return fn.arithOvf(OpSubOvf, "sub_ovf", a, b, normal, overflow)
}
func (fn *Function) NewMulOvf(a, b Value, normal, overflow *Block) *Instruction {
	return fn.arithOvf(OpMulOvf, "mul_ovf", a, b, normal, overflow)
}

// ---- Bitwise ----------------------------------------------------------------

func (fn *Function) bitwise(op Opcode, mnemonic string, a, b Value) *Instruction {
	ok := (a.Type() == TypeBox && b.Type() == TypeBox) ||
		(a.Type() == TypeBox && b.Type().IsInt()) ||
		(a.Type().IsInt() && a.Type() == b.Type())
	require(mnemonic, ok, "invalid operand combination %s, %s", a.Type(), b.Type())
	instr := fn.newInstr(op, "", nil, []Value{a, b}, nil, nil)
	instr.typ = b.Type()
	instr.mnemonic = mnemonicFor(mnemonic, nil, []Value{a, b})
	return instr
}

func (fn *Function) NewAnd(a, b Value) *Instruction  { return fn.bitwise(OpAnd, "and", a, b) }
func (fn *Function) NewOr(a, b Value) *Instruction   { return fn.bitwise(OpOr, "or", a, b) }
func (fn *Function) NewXor(a, b Value) *Instruction  { return fn.bitwise(OpXor, "xor", a, b) }
func (fn *Function) NewShl(a, b Value) *Instruction  { return fn.bitwise(OpShl, "shl", a, b) }
func (fn *Function) NewShr(a, b Value) *Instruction  { return fn.bitwise(OpShr, "shr", a, b) }
func (fn *Function) NewUshr(a, b Value) *Instruction { return fn.bitwise(OpUshr, "ushr", a, b) }

// NewNot is the unary bitwise complement; it accepts box or any integer
// type and preserves the input type.
func (fn *Function) NewNot(a Value) *Instruction {
	require("not", a.Type() == TypeBox || a.Type().IsInt(), "not requires box or integer input, got %s", a.Type())
	instr := fn.newInstr(OpBitNot, "", nil, []Value{a}, nil, nil)
	instr.typ = a.Type()
	instr.mnemonic = mnemonicFor("not", nil, []Value{a})
	return instr
}

// ---- Comparison -------------------------------------------------------------

func (fn *Function) compare(op Opcode, mnemonic string, a, b Value, strict bool) *Instruction {
	if strict {
		require(mnemonic, a.Type() == TypeBox && b.Type() == TypeBox, "%s requires two box operands", mnemonic)
	} else {
		require(mnemonic, a.Type() == b.Type(), "comparison operands must share a type, got %s and %s", a.Type(), b.Type())
		require(mnemonic, a.Type() == TypeBox || a.Type().IsNumber(), "comparison requires box or numeric operands, got %s", a.Type())
	}
	instr := fn.newInstr(op, "", nil, []Value{a, b}, nil, nil)
	if a.Type() == TypeBox {
		instr.typ = TypeBox
	} else {
		instr.typ = TypeI8
	}
	instr.mnemonic = mnemonicFor(mnemonic, nil, []Value{a, b})
	return instr
}

func (fn *Function) NewLt(a, b Value) *Instruction  { return fn.compare(OpLt, "lt", a, b, false) }
func (fn *Function) NewLte(a, b Value) *Instruction { return fn.compare(OpLte, "lte", a, b, false) }
func (fn *Function) NewGt(a, b Value) *Instruction  { return fn.compare(OpGt, "gt", a, b, false) }
func (fn *Function) NewGte(a, b Value) *Instruction { return fn.compare(OpGte, "gte", a, b, false) }
func (fn *Function) NewEq(a, b Value) *Instruction  { return fn.compare(OpEq, "eq", a, b, false) }
func (fn *Function) NewNeq(a, b Value) *Instruction { return fn.compare(OpNeq, "neq", a, b, false) }
func (fn *Function) NewSeq(a, b Value) *Instruction { return fn.compare(OpSeq, "seq", a, b, true) }
func (fn *Function) NewNseq(a, b Value) *Instruction {
	return fn.compare(OpNseq, "nseq", a, b, true)
}

// ---- Control flow -----------------------------------------------------------

// NewJump constructs an unconditional branch to target.
func (fn *Function) NewJump(target *Block) *Instruction {
	instr := fn.newInstr(OpJump, "jump", nil, nil, []*Block{target}, nil)
	instr.typ = TypeNone
	instr.sideEffects = true
	return instr
}

// NewRet constructs the function return, always a terminator regardless of
// its (empty) targets list.
func (fn *Function) NewRet(v Value) *Instruction {
	instr := fn.newInstr(OpRet, "ret", nil, []Value{v}, nil, nil)
	instr.typ = TypeNone
	return instr
}

// NewIf constructs a conditional branch. cond must be box or i8 (the result
// of a prior comparison); the two targets are recorded in [then, else]
// order.
func (fn *Function) NewIf(cond Value, then, els *Block) *Instruction {
	require("if", cond.Type() == TypeBox || cond.Type() == TypeI8, "if requires a box or i8 condition, got %s", cond.Type())
	instr := fn.newInstr(OpIf, "if", nil, []Value{cond}, []*Block{then, els}, []string{"then", "else"})
	instr.typ = TypeNone
	return instr
}

// NewThrow constructs a throw of v, with an optional in-procedure catch
// target. catch may be nil, meaning the exception propagates out of the
// function.
func (fn *Function) NewThrow(v Value, catch *Block) *Instruction {
	require("throw", v.Type() == TypeBox, "throw requires a box operand, got %s", v.Type())
	var targets []*Block
	var roles []string
	if catch != nil {
		targets = []*Block{catch}
		roles = []string{"catch"}
	}
	instr := fn.newInstr(OpThrow, "throw", nil, []Value{v}, targets, roles)
	instr.typ = TypeNone
	instr.sideEffects = true
	return instr
}

// ---- Call family ------------------------------------------------------------

// callLike builds call/construct/get_prop_val/put_prop_val, all of which
// share the [continue, throw] optional target-role pair and default to
// sideEffects=true, since any of them may invoke arbitrary JS (a callee, or
// a getter/setter).
func (fn *Function) callLike(op Opcode, mnemonic string, inputs []Value, outType Type, cont, thr *Block) *Instruction {
	var targets []*Block
	var roles []string
	if cont != nil {
		targets = append(targets, cont)
		roles = append(roles, "continue")
	}
	if thr != nil {
		targets = append(targets, thr)
		roles = append(roles, "throw")
	}
	instr := fn.newInstr(op, mnemonic, nil, inputs, targets, roles)
	instr.typ = outType
	instr.sideEffects = true
	return instr
}

// NewCall constructs a call to callee with the given this-value and
// arguments (≥0 extra args), all box-typed. retType, if non-empty, is the
// callee's statically known return type; otherwise the output defaults to
// box.
func (fn *Function) NewCall(callee, thisVal Value, args []Value, retType Type, cont, thr *Block) *Instruction {
	require("call", callee.Type() == TypeBox, "call target must be box, got %s", callee.Type())
	require("call", thisVal.Type() == TypeBox, "call this-value must be box, got %s", thisVal.Type())
	for idx, a := range args {
		require("call", a.Type() == TypeBox, "call argument %d must be box, got %s", idx, a.Type())
	}
	inputs := append([]Value{callee, thisVal}, args...)
	out := retType
	if out == TypeNone {
		out = TypeBox
	}
	return fn.callLike(OpCall, "call", inputs, out, cont, thr)
}

// NewConstruct is identical to NewCall but always produces box.
func (fn *Function) NewConstruct(callee, thisVal Value, args []Value, cont, thr *Block) *Instruction {
	require("construct", callee.Type() == TypeBox, "construct target must be box, got %s", callee.Type())
	inputs := append([]Value{callee, thisVal}, args...)
	return fn.callLike(OpConstruct, "construct", inputs, TypeBox, cont, thr)
}

// NewGetPropVal reads obj[key]; it is a call-family instruction because
// property access may invoke a getter.
func (fn *Function) NewGetPropVal(obj, key Value, cont, thr *Block) *Instruction {
	require("get_prop_val", obj.Type() == TypeBox, "get_prop_val object must be box, got %s", obj.Type())
	return fn.callLike(OpGetPropVal, "get_prop_val", []Value{obj, key}, TypeBox, cont, thr)
}

// NewPutPropVal writes obj[key] = val; call-family for the symmetric reason.
func (fn *Function) NewPutPropVal(obj, key, val Value, cont, thr *Block) *Instruction {
	require("put_prop_val", obj.Type() == TypeBox, "put_prop_val object must be box, got %s", obj.Type())
	return fn.callLike(OpPutPropVal, "put_prop_val", []Value{obj, key, val}, TypeNone, cont, thr)
}

// ---- Type conversions --------------------------------------------------------

// NewUnbox unboxes v (which must be box) to target, which must be pint per
// the canonical unbox<pint> form.
func (fn *Function) NewUnbox(target Type, v Value) *Instruction {
	require("unbox", v.Type() == TypeBox, "unbox requires a box input, got %s", v.Type())
	require("unbox", target == fn.session.PInt(), "unbox target must be pint, got %s", target)
	instr := fn.newInstr(OpUnbox, "", []Type{target}, []Value{v}, nil, nil)
	instr.typ = target
	return instr
}

// NewBox is the inverse of NewUnbox: v must be pint, output is box.
func (fn *Function) NewBox(target Type, v Value) *Instruction {
	require("box", v.Type() == fn.session.PInt(), "box requires a pint input, got %s", v.Type())
	instr := fn.newInstr(OpBox, "", []Type{target}, []Value{v}, nil, nil)
	instr.typ = TypeBox
	return instr
}

// NewICast converts between integer widths and box/rptr. target and v's
// type must each be an integer type, box, or rptr.
func (fn *Function) NewICast(target Type, v Value) *Instruction {
	validICastType := func(t Type) bool { return t.IsInt() || t == TypeBox || t == TypeRPtr }
	require("icast", validICastType(target), "icast target must be integer, box, or rptr, got %s", target)
	require("icast", validICastType(v.Type()), "icast input must be integer, box, or rptr, got %s", v.Type())
	instr := fn.newInstr(OpICast, "", []Type{target}, []Value{v}, nil, nil)
	instr.typ = target
	return instr
}

// NewItof converts a pint input to f64. The source this package was
// distilled from validated one input against a type-parameter count
// instead of checking the input's type directly; the corrected rule
// (documented in DESIGN.md) requires exactly one type parameter (f64) and
// one input of type pint.
func (fn *Function) NewItof(v Value) *Instruction {
	require("itof", v.Type() == fn.session.PInt(), "itof requires a pint input, got %s", v.Type())
	instr := fn.newInstr(OpItof, "", []Type{TypeF64}, []Value{v}, nil, nil)
	instr.typ = TypeF64
	return instr
}

// NewFtoi converts an f64 input to pint. The corrected predicate (the
// counterpart bug named for FPToIInstr) checks the input's type directly
// (f64); the type parameter is not supplied by the caller but always set
// to pint, so there is no wrong slot to cross-check.
func (fn *Function) NewFtoi(v Value) *Instruction {
	require("ftoi", v.Type() == TypeF64, "ftoi requires an f64 input, got %s", v.Type())
	instr := fn.newInstr(OpFtoi, "", []Type{fn.session.PInt()}, []Value{v}, nil, nil)
	instr.typ = fn.session.PInt()
	return instr
}

// ---- Memory -------------------------------------------------------------------

// NewLoad reads a value of type target from ptr+offset. ptr must be box or
// rptr; offset must be pint.
func (fn *Function) NewLoad(target Type, ptr, offset Value) *Instruction {
	require("load", ptr.Type().IsPtr(), "load pointer must be box or rptr, got %s", ptr.Type())
	require("load", offset.Type() == fn.session.PInt(), "load offset must be pint, got %s", offset.Type())
	instr := fn.newInstr(OpLoad, "", []Type{target}, []Value{ptr, offset}, nil, nil)
	instr.typ = target
	return instr
}

// NewStore writes value of type value.Type() to ptr+offset. Side-effecting.
func (fn *Function) NewStore(ptr, offset, value Value) *Instruction {
	require("store", ptr.Type().IsPtr(), "store pointer must be box or rptr, got %s", ptr.Type())
	require("store", offset.Type() == fn.session.PInt(), "store offset must be pint, got %s", offset.Type())
	instr := fn.newInstr(OpStore, "", []Type{value.Type()}, []Value{ptr, offset, value}, nil, nil)
	instr.typ = TypeNone
	instr.sideEffects = true
	return instr
}

// NewGetCtx reads the current runtime-context pointer.
func (fn *Function) NewGetCtx() *Instruction {
	instr := fn.newInstr(OpGetCtx, "get_ctx", nil, nil, nil, nil)
	instr.typ = TypeRPtr
	return instr
}

// NewSetCtx writes the current runtime-context pointer. Side-effecting.
func (fn *Function) NewSetCtx(v Value) *Instruction {
	require("set_ctx", v.Type() == TypeRPtr, "set_ctx requires an rptr input, got %s", v.Type())
	instr := fn.newInstr(OpSetCtx, "set_ctx", nil, []Value{v}, nil, nil)
	instr.typ = TypeNone
	instr.sideEffects = true
	return instr
}

// ---- LIR move -----------------------------------------------------------------

// NewMove is generated only by register allocation and edge-transition
// insertion, never by front-end lowering; it carries (source, destination)
// operands with no declared output type of its own.
func (fn *Function) NewMove(src, dst Value) *Instruction {
	instr := fn.newInstr(OpMove, "move", nil, []Value{src, dst}, nil, nil)
	instr.typ = TypeNone
	return instr
}

// ---- HIR family (boxed) -------------------------------------------------------

func (fn *Function) hirUnary(op Opcode, mnemonic string, v Value, sideEffects bool) *Instruction {
	require(mnemonic, v.Type() == TypeBox, "%s requires a box operand, got %s", mnemonic, v.Type())
	instr := fn.newInstr(op, mnemonic, nil, []Value{v}, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = sideEffects
	return instr
}

func (fn *Function) hirBinary(op Opcode, mnemonic string, a, b Value, sideEffects bool) *Instruction {
	require(mnemonic, a.Type() == TypeBox && b.Type() == TypeBox, "%s requires two box operands", mnemonic)
	instr := fn.newInstr(op, mnemonic, nil, []Value{a, b}, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = sideEffects
	return instr
}

// NewLogicalNot implements the JS `!` operator over a boxed value.
func (fn *Function) NewLogicalNot(v Value) *Instruction { return fn.hirUnary(OpNot, "lnot", v, false) }

// NewTypeofOp implements `typeof`.
func (fn *Function) NewTypeofOp(v Value) *Instruction { return fn.hirUnary(OpTypeof, "typeof", v, false) }

// NewInstanceof implements `instanceof`.
func (fn *Function) NewInstanceof(a, b Value) *Instruction {
	return fn.hirBinary(OpInstanceof, "instanceof", a, b, false)
}

// NewCatch reads the in-flight exception value at the head of a catch block.
func (fn *Function) NewCatch() *Instruction {
	instr := fn.newInstr(OpCatch, "catch", nil, nil, nil, nil)
	instr.typ = TypeBox
	return instr
}

// NewHasProp implements the `in` operator.
func (fn *Function) NewHasProp(obj, key Value) *Instruction {
	return fn.hirBinary(OpHasProp, "has_prop", obj, key, false)
}

// NewPropEnum produces the enumerable-key iterator used by for-in loops.
func (fn *Function) NewPropEnum(obj Value) *Instruction {
	return fn.hirUnary(OpPropEnum, "prop_enum", obj, false)
}

// NewDelPropVal implements `delete obj[key]`.
func (fn *Function) NewDelPropVal(obj, key Value) *Instruction {
	return fn.hirBinary(OpDelPropVal, "del_prop_val", obj, key, true)
}

// NewMakeArguments constructs the `arguments` object for the current frame.
func (fn *Function) NewMakeArguments() *Instruction {
	instr := fn.newInstr(OpMakeArguments, "make_arguments", nil, nil, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = true
	return instr
}

// NewCell operations back mutable captured locals (closure cells).
func (fn *Function) NewNewCell(initial Value) *Instruction {
	require("new_cell", initial.Type() == TypeBox, "new_cell requires a box operand, got %s", initial.Type())
	instr := fn.newInstr(OpNewCell, "new_cell", nil, []Value{initial}, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = true
	return instr
}

func (fn *Function) NewGetCell(cell Value) *Instruction {
	return fn.hirUnary(OpGetCell, "get_cell", cell, false)
}

func (fn *Function) NewPutCell(cell, val Value) *Instruction {
	return fn.hirBinary(OpPutCell, "put_cell", cell, val, true)
}

// NewClos operations construct and access closures.
func (fn *Function) NewNewClos(fnRef Value, captures []Value) *Instruction {
	require("new_clos", fnRef.Type() == TypeBox, "new_clos function reference must be box, got %s", fnRef.Type())
	inputs := append([]Value{fnRef}, captures...)
	instr := fn.newInstr(OpNewClos, "new_clos", nil, inputs, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = true
	return instr
}

func (fn *Function) NewGetClos(clos Value, index int) *Instruction {
	require("get_clos", clos.Type() == TypeBox, "get_clos requires a box operand, got %s", clos.Type())
	idxConst := fn.session.IntConst(int64(index), fn.session.PInt())
	instr := fn.newInstr(OpGetClos, "get_clos", nil, []Value{clos, idxConst}, nil, nil)
	instr.typ = TypeBox
	return instr
}

func (fn *Function) NewPutClos(clos Value, index int, val Value) *Instruction {
	require("put_clos", clos.Type() == TypeBox, "put_clos requires a box operand, got %s", clos.Type())
	idxConst := fn.session.IntConst(int64(index), fn.session.PInt())
	instr := fn.newInstr(OpPutClos, "put_clos", nil, []Value{clos, idxConst, val}, nil, nil)
	instr.typ = TypeNone
	instr.sideEffects = true
	return instr
}

// NewNewObject / NewNewArray construct fresh object/array literals.
func (fn *Function) NewNewObject() *Instruction {
	instr := fn.newInstr(OpNewObject, "new_object", nil, nil, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = true
	return instr
}

func (fn *Function) NewNewArray(elements []Value) *Instruction {
	for idx, e := range elements {
		require("new_array", e.Type() == TypeBox, "new_array element %d must be box, got %s", idx, e.Type())
	}
	instr := fn.newInstr(OpNewArray, "new_array", nil, elements, nil, nil)
	instr.typ = TypeBox
	instr.sideEffects = true
	return instr
}
