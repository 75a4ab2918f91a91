package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// ovfPolicy lowers add_ovf/sub_ovf/mul_ovf: a two-address arithmetic op
// that sets the overflow flag, followed by a branch on that flag. Like
// ifPolicy, this instruction always has two successors (normal, overflow),
// so the driver's single-successor fallthrough/fold logic in emit.go never
// applies to it; GenCode must itself dispatch to both edges via
// gi.EdgeLabels, exactly as ifPolicy, throwPolicy, and callPolicy do.
type ovfPolicy struct{ basePolicy }

func (ovfPolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, gi *GenInfo) {
	switch instr.Opcode() {
	case ir.OpAddOvf:
		asm.Add(rec.Dest, rec.Opnds[1])
	case ir.OpSubOvf:
		asm.Sub(rec.Dest, rec.Opnds[1])
	case ir.OpMulOvf:
		asm.IMul2(rec.Dest, rec.Opnds[1])
	}

	normalBlk, overflowBlk := instr.Targets()[0], instr.Targets()[1]
	normalLabel := gi.EdgeLabels[ir.Edge{Pred: instr.Block(), Succ: normalBlk}]
	overflowLabel := gi.EdgeLabels[ir.Edge{Pred: instr.Block(), Succ: overflowBlk}]
	asm.Jcc(CondO, overflowLabel)
	asm.Jmp(normalLabel)
}
