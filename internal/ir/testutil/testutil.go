// Package testutil assembles small sample IR graphs purely through the
// public ir package constructors, so ir and x86backend tests alike don't
// each hand-roll block/instruction wiring for the same handful of shapes.
package testutil

import "github.com/tachyonjs/corevm/internal/ir"

// Diamond builds a four-block diamond: entry branches on an if into left
// and right, both of which jump to merge, where a phi selects between
// their two pint values. Returns the function and the phi for assertions.
func Diamond(session *ir.Session) (*ir.Function, *ir.Instruction) {
	fn := ir.NewFunction(session, "diamond")
	entry := fn.NewBlock("entry")
	left := fn.NewBlock("left")
	right := fn.NewBlock("right")
	merge := fn.NewBlock("merge")

	cond := fn.NewArg(0, ir.TypeI8)
	entry.Append(cond)
	entry.Append(fn.NewIf(cond, left, right))

	one := session.IntConst(1, session.PInt())
	two := session.IntConst(2, session.PInt())
	left.Append(fn.NewJump(merge))
	right.Append(fn.NewJump(merge))

	phi := fn.NewPhi(merge)
	phi.AddIncoming(one, left)
	phi.AddIncoming(two, right)
	merge.Append(fn.NewRet(phi))

	left.Seal()
	right.Seal()
	merge.Seal()
	entry.Seal()

	return fn, phi
}

// OverflowLoop builds a three-block loop: preheader feeds the initial zero
// into header's phi, header computes i+1 with overflow checking, jumping
// back to itself on the normal edge and out to exit on overflow, exercising
// add_ovf's branch targets and the self-referential CFG edge. The preheader
// incoming value is wired in before add_ovf is constructed, since add_ovf
// requires its operands to already share a type and a still-open phi (no
// AddIncoming calls yet) is TypeNone.
func OverflowLoop(session *ir.Session) (*ir.Function, *ir.Instruction) {
	fn := ir.NewFunction(session, "overflow_loop")
	preheader := fn.NewBlock("preheader")
	header := fn.NewBlock("header")
	exit := fn.NewBlock("exit")

	iv := fn.NewPhi(header)
	iv.AddIncoming(session.IntConst(0, session.PInt()), preheader)
	preheader.Append(fn.NewJump(header))

	one := session.IntConst(1, session.PInt())
	addOvf := fn.NewAddOvf(iv, one, header, exit)
	header.Append(addOvf)
	iv.AddIncoming(addOvf, header)

	exit.Append(fn.NewRet(addOvf))

	preheader.Seal()
	header.Seal()
	exit.Seal()

	return fn, addOvf
}

// BoxedCall builds an entry block performing a boxed get_prop_val (with no
// targets, so it does not end the block) followed by a call whose continue
// and throw targets are the cont and handler blocks, exercising the call
// family's [continue, throw] target roles and box-typed operand
// requirements.
func BoxedCall(session *ir.Session) (*ir.Function, *ir.Instruction) {
	fn := ir.NewFunction(session, "boxed_call")
	entry := fn.NewBlock("entry")
	cont := fn.NewBlock("cont")
	handler := fn.NewBlock("handler")

	obj := fn.NewArg(0, ir.TypeBox)
	key := session.StringConst("method")
	entry.Append(obj)
	callee := fn.NewGetPropVal(obj, key, nil, nil)
	entry.Append(callee)

	thisVal := obj
	call := fn.NewCall(callee, thisVal, nil, ir.TypeNone, cont, handler)
	entry.Append(call)
	cont.Append(fn.NewRet(call))

	catchVal := fn.NewCatch()
	handler.Append(catchVal)
	handler.Append(fn.NewThrow(catchVal, nil))

	entry.Seal()
	cont.Seal()
	handler.Seal()

	return fn, call
}
