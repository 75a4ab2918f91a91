package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// jumpPolicy's GenCode is a deliberate no-op: the emission driver resolves
// every CFG edge to an edge-transition label during label materialisation
// (emit.go), and it is the driver's block loop — not the jump instruction
// itself — that emits the stub's merge moves and the trailing jmp/fallthrough
// to that label. Modelling the jump here would duplicate that jmp.
type jumpPolicy struct{ basePolicy }

func (jumpPolicy) GenCode(*ir.Instruction, AllocationRecord, Assembler, *GenInfo) {}

// retPolicy moves the return value into place and emits the architecture
// return. The stack-pointer part of the epilogue (§4.6 step 5) is emitted
// by the driver just before GenCode runs.
type retPolicy struct{ basePolicy }

func (retPolicy) DestMustBeReg(*ir.Instruction) bool { return false }
func (retPolicy) OpndRegSet(_ *ir.Instruction, idx int) []Reg {
	if idx == 0 {
		return []Reg{RAX}
	}
	return nil
}

// GenCode moves the return value into the calling convention's return
// register and emits the architecture return. The epilogue's stack-pointer
// adjustment (§4.6 step 5) is emitted by the driver just before this call,
// since it needs the AllocationPlan's StackMap, which policies are not
// handed. Neither the driver nor this policy emits callee-save restores of
// its own; any such moves reach the ret as PreMoves of its
// AllocationRecord, which the driver emits before the epilogue.
func (retPolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, gi *GenInfo) {
	if len(rec.Opnds) > 0 && instr.Uses()[0].Type() != ir.TypeNone {
		emitMove(rec.Opnds[0], RegOperand(gi.Conv.RetReg()), asm)
	}
	asm.Ret()
}

// throwPolicy jumps to the in-procedure catch edge when present; with no
// catch target, the exception unwinds out of the function and emission
// here is limited to whatever the Assembler's own unwind hook (outside
// this package's named surface) requires, so GenCode only handles the
// in-procedure case.
type throwPolicy struct{ basePolicy }

func (throwPolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, gi *GenInfo) {
	if len(instr.Targets()) == 0 {
		return
	}
	catch := instr.Targets()[0]
	edge := ir.Edge{Pred: instr.Block(), Succ: catch}
	asm.Jmp(gi.EdgeLabels[edge])
}

// callPolicy models the [continue, throw] dispatch shared by call,
// construct, get_prop_val, and put_prop_val: the actual invocation
// mechanism is outside the Assembler surface named in SPEC_FULL.md §6 (no
// call op is listed), so GenCode only emits the throw-edge dispatch; the
// continue edge is the ordinary fallthrough the driver's block loop
// already handles.
type callPolicy struct{ basePolicy }

func (callPolicy) DestIsOpnd0(*ir.Instruction) bool { return false }

func (callPolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, gi *GenInfo) {
	for idx, role := range instr.TargetRoles() {
		if role != "throw" {
			continue
		}
		edge := ir.Edge{Pred: instr.Block(), Succ: instr.Targets()[idx]}
		asm.Jmp(gi.EdgeLabels[edge])
	}
}
