package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// loadStorePolicy covers load/store/get_ctx/set_ctx: pointer and offset
// operands must already be in registers (x86 addressing needs a base
// register; an immediate offset is folded into the memory operand itself
// by the allocator, not passed as a second register operand).
type loadStorePolicy struct{ basePolicy }

func (loadStorePolicy) OpndMustBeReg(_ *ir.Instruction, idx int) bool { return idx == 0 }
func (loadStorePolicy) DestIsOpnd0(*ir.Instruction) bool              { return false }

func (loadStorePolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, _ *GenInfo) {
	switch instr.Opcode() {
	case ir.OpLoad:
		// rec.Opnds[0] is the folded [base+offset] memory operand; ptr
		// and offset are collapsed into it by the allocator rather than
		// passed as two separate register operands.
		emitMove(rec.Opnds[0], rec.Dest, asm)
	case ir.OpStore:
		emitMove(rec.Opnds[0], rec.Dest, asm)
	case ir.OpGetCtx:
		emitMove(RegOperand(ctxReg), rec.Dest, asm)
	case ir.OpSetCtx:
		emitMove(rec.Opnds[0], RegOperand(ctxReg), asm)
	}
}

// ctxReg is the ABI-reserved register holding the current runtime-context
// pointer; get_ctx/set_ctx move to and from it directly rather than through
// a folded memory operand.
const ctxReg = R15
