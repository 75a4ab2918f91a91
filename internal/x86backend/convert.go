package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// convertPolicy covers box/unbox/icast/itof/ftoi: all are single-operand,
// single-destination, and never accept an immediate (a conversion of a
// literal is constant-folded by passes above this layer, not lowered here).
type convertPolicy struct{ basePolicy }

func (convertPolicy) OpndCanBeImm(*ir.Instruction, int, int) bool { return false }
func (convertPolicy) DestIsOpnd0(*ir.Instruction) bool            { return false }

func (convertPolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, _ *GenInfo) {
	switch instr.Opcode() {
	case ir.OpItof:
		asm.CvtI2F(rec.Dest, rec.Opnds[0])
	case ir.OpFtoi:
		asm.CvtF2I(rec.Dest, rec.Opnds[0])
	case ir.OpBox, ir.OpUnbox, ir.OpICast:
		// box/unbox/icast at equal widths degrade to a plain move; a
		// width-changing icast additionally needs a sign/zero extension,
		// which the Assembler's Mov is expected to select based on the
		// source/dest operand widths it was constructed with.
		emitMove(rec.Opnds[0], rec.Dest, asm)
	}
}
